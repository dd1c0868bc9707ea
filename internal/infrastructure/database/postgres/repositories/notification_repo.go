package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/database/postgres"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// DefaultNotificationLimit caps the notification history listing.
const DefaultNotificationLimit = 50

const notificationColumns = `n.id, n.user_id, n.product_id, COALESCE(p.product_name, ''), n.type, n.status,
	n.scheduled_for, n.sent_at, n.error_message`

type postgresNotificationRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresNotificationRepo returns a NotificationRepository backed by conn.
func NewPostgresNotificationRepo(conn *postgres.Connection, log logging.Logger) warranty.NotificationRepository {
	return &postgresNotificationRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresNotificationRepo) Record(ctx context.Context, n *warranty.Notification) error {
	query := `
		INSERT INTO notifications (user_id, product_id, type, status, scheduled_for, sent_at, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var productID sql.NullInt64
	if n.ProductID != 0 {
		productID = sql.NullInt64{Int64: n.ProductID, Valid: true}
	}
	err := r.executor.QueryRowContext(ctx, query,
		n.UserID, productID, string(n.Type), string(n.Status), n.ScheduledFor, n.SentAt, n.ErrorMessage,
	).Scan(&n.ID)
	if err != nil {
		if isUniqueViolation(err, postgres.ReminderUniqueIndex) {
			return errors.Wrap(err, errors.ErrCodeNotificationDuplicate, "reminder already sent").
				WithDetail(string(n.Type))
		}
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to record notification")
	}
	r.log.Debug("Notification recorded",
		logging.Int64("notification_id", n.ID),
		logging.Int64("product_id", n.ProductID),
		logging.String("type", string(n.Type)),
		logging.String("status", string(n.Status)),
	)
	return nil
}

func (r *postgresNotificationRepo) Find(ctx context.Context, productID int64, t warranty.NotificationType, status warranty.NotificationStatus) (*warranty.Notification, error) {
	query := `SELECT ` + notificationColumns + `
		FROM notifications n LEFT JOIN products p ON p.id = n.product_id
		WHERE n.product_id = $1 AND n.type = $2 AND n.status = $3
		ORDER BY n.id LIMIT 1`
	n, err := scanNotification(r.executor.QueryRowContext(ctx, query, productID, string(t), string(status)))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to find notification")
	}
	return n, nil
}

// ListByUser returns the newest entries first. Entries whose product has been
// deleted are gone with it.
func (r *postgresNotificationRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*warranty.Notification, error) {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	query := `SELECT ` + notificationColumns + `
		FROM notifications n JOIN products p ON p.id = n.product_id
		WHERE n.user_id = $1
		ORDER BY n.sent_at DESC NULLS LAST, n.id DESC
		LIMIT $2`
	rows, err := r.executor.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list notifications")
	}
	defer rows.Close()

	out := make([]*warranty.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan notification")
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate notifications")
	}
	return out, nil
}

func (r *postgresNotificationRepo) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.executor, `SELECT COUNT(*) FROM notifications`)
}

func (r *postgresNotificationRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.executor, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID)
}

func scanNotification(row scanner) (*warranty.Notification, error) {
	n := &warranty.Notification{}
	var productID sql.NullInt64
	var typ, status string
	var scheduled, sent sql.NullTime
	if err := row.Scan(&n.ID, &n.UserID, &productID, &n.ProductName, &typ, &status, &scheduled, &sent, &n.ErrorMessage); err != nil {
		return nil, err
	}
	n.ProductID = productID.Int64
	n.Type = warranty.NotificationType(typ)
	n.Status = warranty.NotificationStatus(status)
	if scheduled.Valid {
		t := scheduled.Time
		n.ScheduledFor = &t
	}
	if sent.Valid {
		t := sent.Time
		n.SentAt = &t
	}
	return n, nil
}
