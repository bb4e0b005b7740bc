package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported audit event identifiers.
type EventType string

const (
	EventLoginSucceeded    EventType = "login_succeeded"
	EventLoginFailed       EventType = "login_failed"
	EventUserRegistered    EventType = "user_registered"
	EventTokenRevoked      EventType = "token_revoked"
	EventAdmissionRejected EventType = "admission_rejected"
)

// Event represents a security-relevant occurrence emitted by the auth core.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event stamped with a fresh ID and the current time.
func New(eventType EventType, subject string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// LoginPayload accompanies login outcomes.
type LoginPayload struct {
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// RevocationPayload accompanies token revocations.
type RevocationPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AdmissionRejectedPayload accompanies rate-limit rejections.
type AdmissionRejectedPayload struct {
	Identity          string `json:"identity"`
	Path              string `json:"path"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}
