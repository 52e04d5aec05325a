package ports

import "context"

// AuditEvent is an auth outcome reported to external systems.
type AuditEvent struct {
	Event   string `json:"event"`
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	IP      string `json:"ip"`
	Success bool   `json:"success"`
	Err     string `json:"error,omitempty"`
}

// WebhookEmitter delivers audit events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
