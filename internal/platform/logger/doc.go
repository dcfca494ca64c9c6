// Package logger configures the application's log/slog JSON logger and carries
// request-scoped loggers through context.Context.
package logger
