// Package api provides typed service wrappers over the authenticated CRM
// client for every backend resource: clients, appointments, users, and the
// public chat agent. All calls go through the client's request pipeline, so
// expired access tokens are refreshed and replayed transparently.
package api
