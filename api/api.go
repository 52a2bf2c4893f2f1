package api

import (
	"context"
	"net/url"
)

// Doer is the slice of the authenticated client the services need. It is
// satisfied by *iacrm.Client.
type Doer interface {
	DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error
}

// API defines a public type used by ia-crm APIs.
//
// API instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type API struct {
	Clients      *ClientsService
	Appointments *AppointmentsService
	Users        *UsersService
	Chat         *ChatService
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(d Doer) *API {
	return &API{
		Clients:      &ClientsService{doer: d},
		Appointments: &AppointmentsService{doer: d},
		Users:        &UsersService{doer: d},
		Chat:         &ChatService{doer: d},
	}
}
