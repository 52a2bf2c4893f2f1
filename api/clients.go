package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientsService defines a public type used by ia-crm APIs.
//
// ClientsService instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClientsService struct {
	doer Doer
}

// List describes the list operation and its observable behavior.
//
// List may return an error when input validation, dependency calls, or security checks fail.
// List does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ClientsService) List(ctx context.Context) ([]ClientRecord, error) {
	var out []ClientRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/clients/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ClientsService) Create(ctx context.Context, in ClientCreate) (ClientRecord, error) {
	var out ClientRecord
	if err := s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/clients/", nil, in, &out); err != nil {
		return ClientRecord{}, err
	}
	return out, nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ClientsService) Get(ctx context.Context, id uuid.UUID) (ClientRecord, error) {
	var out ClientRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/clients/"+id.String(), nil, nil, &out); err != nil {
		return ClientRecord{}, err
	}
	return out, nil
}

// Update describes the update operation and its observable behavior.
//
// Update may return an error when input validation, dependency calls, or security checks fail.
// Update does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ClientsService) Update(ctx context.Context, id uuid.UUID, in ClientUpdate) (ClientRecord, error) {
	var out ClientRecord
	if err := s.doer.DoJSON(ctx, http.MethodPut, "/api/v1/clients/"+id.String(), nil, in, &out); err != nil {
		return ClientRecord{}, err
	}
	return out, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ClientsService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doer.DoJSON(ctx, http.MethodDelete, "/api/v1/clients/"+id.String(), nil, nil, nil)
}
