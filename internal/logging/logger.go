// Package logging defines the structured-logging interface used across the
// dashboard client. The only implementation wraps log/slog.
package logging

import "context"

// Logger takes key/value pairs after the message:
//
//	log.Info(ctx, "request finished", "path", "/admin/users", "status", 200)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying args on every record.
	With(args ...any) Logger
}
