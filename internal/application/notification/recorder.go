// Package notification records the notification log and sends the emails a
// user asks for directly: test reminders and warranty claim emails.
package notification

import (
	"context"
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
)

// EventPublisher forwards recorded notifications to the event stream.
type EventPublisher interface {
	PublishNotification(ctx context.Context, ev kafka.NotificationEvent) error
}

// Recorder appends to the notification log and announces each entry.
// Publishing is best effort: a failed publish is logged and never undoes
// the log entry.
type Recorder struct {
	repo      warranty.NotificationRepository
	publisher EventPublisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	now       func() time.Time
}

// NewRecorder builds a Recorder. publisher and metrics may be nil.
func NewRecorder(repo warranty.NotificationRepository, publisher EventPublisher, metrics *prometheus.AppMetrics, log logging.Logger) *Recorder {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Recorder{repo: repo, publisher: publisher, metrics: metrics, logger: log, now: time.Now}
}

// Record stores n and publishes it. recipient is the address the message
// went to, or "" when nothing was sent.
func (r *Recorder) Record(ctx context.Context, n *warranty.Notification, recipient string) error {
	if err := r.repo.Record(ctx, n); err != nil {
		return err
	}
	prometheus.RecordNotification(r.metrics, string(n.Type), string(n.Status))

	if r.publisher == nil {
		return nil
	}
	if err := r.publisher.PublishNotification(ctx, kafka.NotificationEventFrom(n, recipient, r.now())); err != nil {
		r.logger.Warn("notification event not published",
			logging.Int64("notification_id", n.ID),
			logging.String("type", string(n.Type)),
			logging.Err(err))
	}
	return nil
}
