package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/messaging/kafka"
)

// MockUserRepository is a testify mock of warranty.UserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, u *warranty.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*warranty.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*warranty.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*warranty.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*warranty.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int64, patch warranty.ProfilePatch) (*warranty.User, error) {
	args := m.Called(ctx, id, patch)
	u, _ := args.Get(0).(*warranty.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a testify mock of warranty.ProductRepository.
type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Create(ctx context.Context, p *warranty.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id, userID int64) (*warranty.Product, error) {
	args := m.Called(ctx, id, userID)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, userID int64, filter warranty.ProductFilter) ([]*warranty.Product, error) {
	args := m.Called(ctx, userID, filter)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) ListAll(ctx context.Context, userID int64) ([]*warranty.Product, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id, userID int64, patch warranty.ProductPatch) (*warranty.Product, error) {
	args := m.Called(ctx, id, userID, patch)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockProductRepository) FindByInvoiceNumber(ctx context.Context, userID int64, invoiceNumber string) (*warranty.Product, error) {
	args := m.Called(ctx, userID, invoiceNumber)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) ListExpiringBetween(ctx context.Context, userID int64, from, to warranty.Date) ([]*warranty.Product, error) {
	args := m.Called(ctx, userID, from, to)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) ListExpiringOn(ctx context.Context, date warranty.Date) ([]*warranty.Product, error) {
	args := m.Called(ctx, date)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CategoryCounts(ctx context.Context) (map[warranty.Category]int64, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).(map[warranty.Category]int64)
	return c, args.Error(1)
}

// MockNotificationRepository is a testify mock of warranty.NotificationRepository.
type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Record(ctx context.Context, n *warranty.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) Find(ctx context.Context, productID int64, t warranty.NotificationType, status warranty.NotificationStatus) (*warranty.Notification, error) {
	args := m.Called(ctx, productID, t, status)
	n, _ := args.Get(0).(*warranty.Notification)
	return n, args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*warranty.Notification, error) {
	args := m.Called(ctx, userID, limit)
	ns, _ := args.Get(0).([]*warranty.Notification)
	return ns, args.Error(1)
}

func (m *MockNotificationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDispatcher is a testify mock of email.Dispatcher.
type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

// MockEventPublisher captures notification events.
type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishNotification(ctx context.Context, ev kafka.NotificationEvent) error {
	return m.Called(ctx, ev).Error(0)
}
