// Package crmtest provides an in-process fake of the CRM backend for tests
// and runnable examples. It issues real HS256 tokens, implements the login
// and refresh endpoints, and exposes knobs to force authorization failures
// and to gate the refresh handler for concurrency tests.
package crmtest
