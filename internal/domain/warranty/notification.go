package warranty

import "time"

// NotificationType classifies a notification log entry.
type NotificationType string

const (
	NotificationProductAdded NotificationType = "PRODUCT_ADDED"
	NotificationReminder30   NotificationType = "30_DAY"
	NotificationReminder7    NotificationType = "7_DAY"
	NotificationTest         NotificationType = "TEST"
	NotificationClaimEmail   NotificationType = "CLAIM_EMAIL"
)

// ReminderDays returns the horizon a reminder type fires at, or 0 for
// non-reminder types.
func (t NotificationType) ReminderDays() int {
	switch t {
	case NotificationReminder30:
		return 30
	case NotificationReminder7:
		return 7
	}
	return 0
}

// NotificationStatus is the terminal outcome of a dispatch attempt.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "SENT"
	NotificationFailed NotificationStatus = "FAILED"
)

// Notification is an append-only log entry about a product.
type Notification struct {
	ID           int64              `json:"id"`
	UserID       int64              `json:"user_id"`
	ProductID    int64              `json:"product_id"`
	ProductName  string             `json:"product_name,omitempty"`
	Type         NotificationType   `json:"type"`
	Status       NotificationStatus `json:"status"`
	ScheduledFor *time.Time         `json:"scheduled_for,omitempty"`
	SentAt       *time.Time         `json:"sent_at,omitempty"`
	ErrorMessage string             `json:"error_message,omitempty"`
}

// NewSent builds a SENT entry stamped at now.
func NewSent(userID, productID int64, t NotificationType, now time.Time) *Notification {
	sentAt := now.UTC()
	return &Notification{
		UserID:    userID,
		ProductID: productID,
		Type:      t,
		Status:    NotificationSent,
		SentAt:    &sentAt,
	}
}

// NewFailed builds a FAILED entry carrying the dispatch error.
func NewFailed(userID, productID int64, t NotificationType, cause error) *Notification {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Notification{
		UserID:       userID,
		ProductID:    productID,
		Type:         t,
		Status:       NotificationFailed,
		ErrorMessage: msg,
	}
}
