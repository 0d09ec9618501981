// Package correlation carries the per-request correlation id on a
// context.Context. The context must be threaded through every call made on
// behalf of a request, including the outbound issuer call, for the id to be
// visible there.
package correlation

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

const Header = "X-Correlation-Id"

type ctxKey struct{}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored on ctx. Code running outside a request
// gets ("", false).
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func NewID() string {
	return uuid.NewString()
}

// Resolve adopts a non-empty inbound header value or generates a new id.
func Resolve(inbound string) string {
	if id := strings.TrimSpace(inbound); id != "" {
		return id
	}
	return NewID()
}
