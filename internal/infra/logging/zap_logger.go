package logging

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcarvalho-pb/payment_acquirer-go/internal/infra/correlation"
)

const ServiceName = "payment-acquirer-service"

type ZapLogger struct {
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

// New builds a logger for the given environment. An empty level means debug in
// development and info elsewhere; an empty format means console in
// development and json elsewhere.
func New(level, format, env string) (*ZapLogger, error) {
	dev := env == "" || env == "development"

	if level == "" {
		level = "info"
		if dev {
			level = "debug"
		}
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = "json"
		if dev {
			format = "console"
		}
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = format
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.InitialFields = map[string]any{
		"service":     ServiceName,
		"environment": env,
	}

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{z: z}, nil
}

func Nop() *ZapLogger {
	return &ZapLogger{z: zap.NewNop()}
}

func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func (l *ZapLogger) Debug(ctx context.Context, msg, tag string, fields map[string]any) {
	l.log(ctx, zapcore.DebugLevel, msg, tag, fields)
}

func (l *ZapLogger) Info(ctx context.Context, msg, tag string, fields map[string]any) {
	l.log(ctx, zapcore.InfoLevel, msg, tag, fields)
}

func (l *ZapLogger) Warn(ctx context.Context, msg, tag string, fields map[string]any) {
	l.log(ctx, zapcore.WarnLevel, msg, tag, fields)
}

func (l *ZapLogger) Error(ctx context.Context, msg, tag string, fields map[string]any) {
	l.log(ctx, zapcore.ErrorLevel, msg, tag, fields)
}

func (l *ZapLogger) log(ctx context.Context, lvl zapcore.Level, msg, tag string, fields map[string]any) {
	ce := l.z.Check(lvl, msg)
	if ce == nil {
		return
	}

	zf := make([]zap.Field, 0, len(fields)+2)
	if tag != "" {
		zf = append(zf, zap.String("context", tag))
	}
	if id, ok := correlation.FromContext(ctx); ok {
		zf = append(zf, zap.String("correlationId", id))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err, ok := fields[k].(error); ok {
			zf = append(zf, zap.NamedError(k, err))
			continue
		}
		zf = append(zf, zap.Any(k, fields[k]))
	}

	ce.Write(zf...)
}
