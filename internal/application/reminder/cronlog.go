package reminder

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
)

type cronLogger struct {
	logger logging.Logger
}

// CronLogger adapts a Logger to cron's key/value logger.
func CronLogger(l logging.Logger) cron.Logger {
	return cronLogger{logger: l}
}

// Info is demoted to debug; cron logs every wake-up at info.
func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug("cron: "+msg, fields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error("cron: "+msg, append(fields(keysAndValues), logging.Err(err))...)
}

func fields(kv []interface{}) []logging.Field {
	out := make([]logging.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logging.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
