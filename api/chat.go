package api

import (
	"context"
	"net/http"
)

// ChatService talks to the public chat agent. The backend exposes it
// without authentication, but routing it through the client keeps one
// transport and one base URL for the whole SDK.
type ChatService struct {
	doer Doer
}

// SendMessage describes the sendmessage operation and its observable behavior.
//
// SendMessage may return an error when input validation, dependency calls, or security checks fail.
// SendMessage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ChatService) SendMessage(ctx context.Context, sessionID, message string) (ChatReply, error) {
	in := struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
	}{SessionID: sessionID, Message: message}

	var out ChatReply
	if err := s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/chat/message", nil, in, &out); err != nil {
		return ChatReply{}, err
	}
	return out, nil
}

// ResetSession describes the resetsession operation and its observable behavior.
//
// ResetSession may return an error when input validation, dependency calls, or security checks fail.
// ResetSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *ChatService) ResetSession(ctx context.Context, sessionID string) (ChatResetResult, error) {
	in := struct {
		SessionID string `json:"session_id"`
	}{SessionID: sessionID}

	var out ChatResetResult
	if err := s.doer.DoJSON(ctx, http.MethodPost, "/api/v1/chat/reset", nil, in, &out); err != nil {
		return ChatResetResult{}, err
	}
	return out, nil
}
