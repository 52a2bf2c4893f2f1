package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// UsersService defines a public type used by ia-crm APIs.
//
// UsersService instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UsersService struct {
	doer Doer
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *UsersService) Create(ctx context.Context, in UserCreate) (UserRecord, error) {
	var out UserRecord
	if err := s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/users/", nil, in, &out); err != nil {
		return UserRecord{}, err
	}
	return out, nil
}

// List describes the list operation and its observable behavior.
//
// List may return an error when input validation, dependency calls, or security checks fail.
// List does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *UsersService) List(ctx context.Context) ([]UserRecord, error) {
	var out []UserRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/users/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *UsersService) Get(ctx context.Context, id uuid.UUID) (UserRecord, error) {
	var out UserRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/users/"+id.String(), nil, nil, &out); err != nil {
		return UserRecord{}, err
	}
	return out, nil
}

// Update describes the update operation and its observable behavior.
//
// Update may return an error when input validation, dependency calls, or security checks fail.
// Update does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *UsersService) Update(ctx context.Context, id uuid.UUID, in UserUpdate) (UserRecord, error) {
	var out UserRecord
	if err := s.doer.DoJSON(ctx, http.MethodPut, "/api/v1/users/"+id.String(), nil, in, &out); err != nil {
		return UserRecord{}, err
	}
	return out, nil
}

// Delete describes the delete operation and its observable behavior.
//
// Delete may return an error when input validation, dependency calls, or security checks fail.
// Delete does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *UsersService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doer.DoJSON(ctx, http.MethodDelete, "/api/v1/users/"+id.String(), nil, nil, nil)
}
