package app

import (
	"context"
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
)

// NotificationEventHandler consumes notification.recorded events into
// metrics and the log. Undecodable messages are dropped rather than retried.
func NotificationEventHandler(m *prometheus.AppMetrics, log logging.Logger) kafka.MessageHandler {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return func(_ context.Context, msg *kafka.Message) error {
		start := time.Now()
		ev, err := kafka.DecodeNotificationEvent(msg)
		if err != nil {
			log.Warn("dropping undecodable notification event",
				logging.String("topic", msg.Topic),
				logging.Int64("offset", msg.Offset),
				logging.Err(err))
			return nil
		}

		fields := []logging.Field{
			logging.Int64("notification_id", ev.NotificationID),
			logging.Int64("user_id", ev.UserID),
			logging.Int64("product_id", ev.ProductID),
			logging.String("type", string(ev.Type)),
		}
		if ev.Status == warranty.NotificationFailed {
			log.Warn("notification delivery failed", append(fields, logging.String("error", ev.Error))...)
		} else {
			log.Debug("notification delivered", fields...)
		}
		prometheus.RecordNotificationEvent(m, msg.Topic, string(ev.Type), string(ev.Status), time.Since(start))
		return nil
	}
}
