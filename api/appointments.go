package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// AppointmentsService defines a public type used by ia-crm APIs.
//
// AppointmentsService instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppointmentsService struct {
	doer Doer
}

// List describes the list operation and its observable behavior.
//
// List may return an error when input validation, dependency calls, or security checks fail.
// List does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A nil clientID lists every appointment; otherwise the result is filtered
// to that client.
func (s *AppointmentsService) List(ctx context.Context, clientID *uuid.UUID) ([]AppointmentRecord, error) {
	var query url.Values
	if clientID != nil {
		query = url.Values{"client_id": []string{clientID.String()}}
	}

	var out []AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/appointments/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create describes the create operation and its observable behavior.
//
// Create may return an error when input validation, dependency calls, or security checks fail.
// Create does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) Create(ctx context.Context, in AppointmentCreate) (AppointmentRecord, error) {
	var out AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/appointments/", nil, in, &out); err != nil {
		return AppointmentRecord{}, err
	}
	return out, nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) Get(ctx context.Context, id uuid.UUID) (AppointmentRecord, error) {
	var out AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodGet, "/api/v1/appointments/"+id.String(), nil, nil, &out); err != nil {
		return AppointmentRecord{}, err
	}
	return out, nil
}

// Update describes the update operation and its observable behavior.
//
// Update may return an error when input validation, dependency calls, or security checks fail.
// Update does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) Update(ctx context.Context, id uuid.UUID, in AppointmentUpdate) (AppointmentRecord, error) {
	var out AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodPut, "/api/v1/appointments/"+id.String(), nil, in, &out); err != nil {
		return AppointmentRecord{}, err
	}
	return out, nil
}

// Cancel describes the cancel operation and its observable behavior.
//
// Cancel may return an error when input validation, dependency calls, or security checks fail.
// Cancel does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) Cancel(ctx context.Context, id uuid.UUID, reason string) (AppointmentRecord, error) {
	in := struct {
		CancellationReason string `json:"cancellation_reason,omitempty"`
	}{CancellationReason: reason}

	var out AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodPatch, "/api/v1/appointments/"+id.String()+"/cancel", nil, in, &out); err != nil {
		return AppointmentRecord{}, err
	}
	return out, nil
}

// SetStatus describes the setstatus operation and its observable behavior.
//
// SetStatus may return an error when input validation, dependency calls, or security checks fail.
// SetStatus does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) SetStatus(ctx context.Context, id uuid.UUID, status AppointmentStatus) (AppointmentRecord, error) {
	in := struct {
		Status AppointmentStatus `json:"status"`
	}{Status: status}

	var out AppointmentRecord
	if err := s.doer.DoJSON(ctx, http.MethodPatch, "/api/v1/appointments/"+id.String()+"/status", nil, in, &out); err != nil {
		return AppointmentRecord{}, err
	}
	return out, nil
}

// BlockFullDay describes the blockfullday operation and its observable behavior.
//
// BlockFullDay may return an error when input validation, dependency calls, or security checks fail.
// BlockFullDay does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) BlockFullDay(ctx context.Context, day time.Time) error {
	in := struct {
		Date string `json:"date"`
	}{Date: day.Format("2006-01-02")}

	return s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/appointments/block/full-day", nil, in, nil)
}

// BlockShift describes the blockshift operation and its observable behavior.
//
// BlockShift may return an error when input validation, dependency calls, or security checks fail.
// BlockShift does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) BlockShift(ctx context.Context, day time.Time, shift Shift) error {
	in := struct {
		Date  string `json:"date"`
		Shift Shift  `json:"shift"`
	}{Date: day.Format("2006-01-02"), Shift: shift}

	return s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/appointments/block/shift", nil, in, nil)
}

// UnblockDate describes the unblockdate operation and its observable behavior.
//
// UnblockDate may return an error when input validation, dependency calls, or security checks fail.
// UnblockDate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *AppointmentsService) UnblockDate(ctx context.Context, day time.Time) error {
	return s.doer.DoJSON(ctx, http.MethodDelete, "/api/v1/appointments/block/"+day.Format("2006-01-02"), nil, nil, nil)
}
