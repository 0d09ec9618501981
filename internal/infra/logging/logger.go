package logging

import "context"

// Logger takes a message, the tag of the emitting component and structured
// fields. Implementations attach the correlation id found on ctx.
type Logger interface {
	Debug(ctx context.Context, msg, tag string, fields map[string]any)
	Info(ctx context.Context, msg, tag string, fields map[string]any)
	Warn(ctx context.Context, msg, tag string, fields map[string]any)
	Error(ctx context.Context, msg, tag string, fields map[string]any)
}

var sensitiveFields = []string{"cardToken", "password", "token", "secret"}

const redacted = "***REDACTED***"

// Redact returns a copy of fields with sensitive values replaced.
func Redact(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	for _, k := range sensitiveFields {
		if v, ok := out[k]; ok && v != nil && v != "" {
			out[k] = redacted
		}
	}
	return out
}
