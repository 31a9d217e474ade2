package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records decision-grade events (logsheet approvals, server
// shutdown) outside the regular request log stream.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
