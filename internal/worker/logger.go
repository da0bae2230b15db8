package worker

import (
	"context"

	"dealflow/pkg/contextx"
	"dealflow/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// cronLogger routes robfig/cron messages into the context logger.
type cronLogger struct {
	ctx context.Context //nolint:containedctx
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	logger(l.ctx).Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	logger(l.ctx).Error("cron: "+msg, append([]any{logx.Error(err)}, keysAndValues...)...)
}
