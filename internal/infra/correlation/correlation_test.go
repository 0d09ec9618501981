package correlation_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/correlation"
)

func TestFromContext_WithoutID_ShouldReportAbsence(t *testing.T) {
	id, ok := correlation.FromContext(context.Background())
	require.False(t, ok)
	require.Empty(t, id)
}

func TestResolve(t *testing.T) {
	require.Equal(t, "abc-123", correlation.Resolve("abc-123"))
	require.Equal(t, "abc-123", correlation.Resolve("  abc-123 "))

	generated := correlation.Resolve("   ")
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	require.NotEqual(t, generated, correlation.Resolve(""))
}

func TestWithID_ShouldPropagateAcrossGoroutines(t *testing.T) {
	ctx := correlation.WithID(context.Background(), "req-1")
	other := correlation.WithID(context.Background(), "req-2")

	var wg sync.WaitGroup
	seen := make([]string, 2)
	for i, c := range []context.Context{ctx, other} {
		wg.Add(1)
		go func(i int, c context.Context) {
			defer wg.Done()
			child, cancel := context.WithCancel(c)
			defer cancel()
			seen[i], _ = correlation.FromContext(child)
		}(i, c)
	}
	wg.Wait()

	require.Equal(t, []string{"req-1", "req-2"}, seen)
}
