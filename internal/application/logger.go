package application

import (
	"io"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dealflow/internal/config"
	"dealflow/pkg/contextx"
	"dealflow/pkg/logx"
)

const logFormatJSON = "json"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// NewLogger builds the process logger: colored text for local runs, JSON
// otherwise.
func NewLogger(cfg config.App, w io.Writer) *slog.Logger {
	var handler slog.Handler

	if cfg.LogFormat == logFormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel})
	} else {
		handler = tint.NewHandler(w, &tint.Options{Level: cfg.LogLevel})
	}

	return slog.New(handler).With(
		slog.String(logx.FieldAppName, cfg.Name),
		slog.String(logx.FieldAppVersion, cfg.Version),
	)
}

// newAsynqLogger adapts zap to asynq's logger; the sugared logger already
// has the method set asynq expects.
func newAsynqLogger(cfg config.App) (*zap.SugaredLogger, asynq.LogLevel) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.LogFormat == logFormatJSON {
		zapCfg = zap.NewProductionConfig()
	}

	level := asynq.InfoLevel
	zapLevel := zapcore.InfoLevel

	switch {
	case cfg.LogLevel <= slog.LevelDebug:
		level, zapLevel = asynq.DebugLevel, zapcore.DebugLevel
	case cfg.LogLevel >= slog.LevelError:
		level, zapLevel = asynq.ErrorLevel, zapcore.ErrorLevel
	case cfg.LogLevel >= slog.LevelWarn:
		level, zapLevel = asynq.WarnLevel, zapcore.WarnLevel
	}

	zapCfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := zapCfg.Build(zap.Fields(
		zap.String(logx.FieldAppName, cfg.Name),
		zap.String("component", "asynq"),
	))
	if err != nil {
		return zap.NewNop().Sugar(), level
	}

	return log.Sugar(), level
}
