package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/correlation"
	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/logging"
)

func newObserved(level zapcore.Level) (*logging.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logging.NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_ShouldAttachCorrelationIDAndTag(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)
	ctx := correlation.WithID(context.Background(), "corr-42")

	logger.Info(ctx, "payment processed", "PaymentService", map[string]any{
		"transactionId": "txn_1",
		"cause":         errors.New("boom"),
	})

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "corr-42", fields["correlationId"])
	require.Equal(t, "PaymentService", fields["context"])
	require.Equal(t, "txn_1", fields["transactionId"])
	require.Equal(t, "boom", fields["cause"])
}

func TestZapLogger_WithoutCorrelation_ShouldOmitField(t *testing.T) {
	logger, logs := newObserved(zapcore.DebugLevel)

	logger.Warn(context.Background(), "outside request", "Main", nil)

	require.Len(t, logs.All(), 1)
	_, present := logs.All()[0].ContextMap()["correlationId"]
	require.False(t, present)
}

func TestZapLogger_ShouldRespectLevel(t *testing.T) {
	logger, logs := newObserved(zapcore.InfoLevel)

	logger.Debug(context.Background(), "hidden", "X", nil)
	logger.Error(context.Background(), "shown", "X", nil)

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown", logs.All()[0].Message)
}

func TestNew_ShouldRejectUnknownLevel(t *testing.T) {
	_, err := logging.New("loud", "json", "production")
	require.Error(t, err)

	logger, err := logging.New("", "", "development")
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestRedact(t *testing.T) {
	in := map[string]any{"cardToken": "tok_abc123xyz", "amount": 10, "secret": ""}
	out := logging.Redact(in)

	require.Equal(t, "***REDACTED***", out["cardToken"])
	require.Equal(t, 10, out["amount"])
	require.Equal(t, "", out["secret"])
	require.Equal(t, "tok_abc123xyz", in["cardToken"], "input must not be mutated")
}
