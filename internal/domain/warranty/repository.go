package warranty

import "context"

// ProductRepository persists products. Every method except ListExpiringOn and
// CategoryCounts is scoped to the owning user.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id, userID int64) (*Product, error)
	List(ctx context.Context, userID int64, filter ProductFilter) ([]*Product, error)
	ListAll(ctx context.Context, userID int64) ([]*Product, error)
	Update(ctx context.Context, id, userID int64, patch ProductPatch) (*Product, error)
	// Delete removes the product and its notification log atomically.
	Delete(ctx context.Context, id, userID int64) error
	FindByInvoiceNumber(ctx context.Context, userID int64, invoiceNumber string) (*Product, error)
	ListExpiringBetween(ctx context.Context, userID int64, from, to Date) ([]*Product, error)
	// ListExpiringOn is cross-user and used only by the reminder scheduler.
	ListExpiringOn(ctx context.Context, date Date) ([]*Product, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CategoryCounts(ctx context.Context) (map[Category]int64, error)
}

// NotificationRepository persists the notification log.
type NotificationRepository interface {
	// Record appends n and fills its ID. A second SENT reminder of the same
	// type for a product fails with ErrCodeNotificationDuplicate.
	Record(ctx context.Context, n *Notification) error
	// Find returns the first entry matching the triple, or nil when none exists.
	Find(ctx context.Context, productID int64, t NotificationType, status NotificationStatus) (*Notification, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*Notification, error)
	Count(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id int64, patch ProfilePatch) (*User, error)
	Count(ctx context.Context) (int64, error)
}
