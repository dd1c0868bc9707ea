package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/warrify/internal/application/account"
	"github.com/turtacn/warrify/internal/application/assistant"
	"github.com/turtacn/warrify/internal/application/auth"
	"github.com/turtacn/warrify/internal/application/insights"
	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/application/product"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/intelligence/risk"
)

type mockProductService struct{ mock.Mock }

func (m *mockProductService) List(ctx context.Context, userID int64, filter warranty.ProductFilter) ([]*warranty.Product, error) {
	args := m.Called(ctx, userID, filter)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *mockProductService) Create(ctx context.Context, userID int64, req product.CreateRequest) (*warranty.Product, error) {
	args := m.Called(ctx, userID, req)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *mockProductService) Get(ctx context.Context, userID, id int64) (*warranty.Product, error) {
	args := m.Called(ctx, userID, id)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *mockProductService) Update(ctx context.Context, userID, id int64, patch warranty.ProductPatch) (*warranty.Product, error) {
	args := m.Called(ctx, userID, id, patch)
	p, _ := args.Get(0).(*warranty.Product)
	return p, args.Error(1)
}

func (m *mockProductService) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockProductService) CheckInvoice(ctx context.Context, userID int64, invoiceNumber string) (*product.InvoiceCheck, error) {
	args := m.Called(ctx, userID, invoiceNumber)
	r, _ := args.Get(0).(*product.InvoiceCheck)
	return r, args.Error(1)
}

func (m *mockProductService) UpcomingExpiring(ctx context.Context, userID int64) ([]*warranty.Product, error) {
	args := m.Called(ctx, userID)
	ps, _ := args.Get(0).([]*warranty.Product)
	return ps, args.Error(1)
}

func (m *mockProductService) RiskAssessment(ctx context.Context, userID, id int64) (*risk.Assessment, error) {
	args := m.Called(ctx, userID, id)
	a, _ := args.Get(0).(*risk.Assessment)
	return a, args.Error(1)
}

func (m *mockProductService) UploadInvoice(ctx context.Context, userID int64, up product.Upload) (*product.UploadResult, error) {
	args := m.Called(ctx, userID, up)
	r, _ := args.Get(0).(*product.UploadResult)
	return r, args.Error(1)
}

func (m *mockProductService) InvoiceURL(ctx context.Context, userID int64, path string) (string, error) {
	args := m.Called(ctx, userID, path)
	return args.String(0), args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, req auth.SignupRequest) (*auth.SignupResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*auth.SignupResult)
	return r, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*auth.LoginResult)
	return r, args.Error(1)
}

func (m *mockAuthService) Authenticate(token string) (*auth.Claims, error) {
	args := m.Called(token)
	c, _ := args.Get(0).(*auth.Claims)
	return c, args.Error(1)
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) SendTestReminder(ctx context.Context, caller notification.Caller, productID int64) (*notification.SendResult, error) {
	args := m.Called(ctx, caller, productID)
	r, _ := args.Get(0).(*notification.SendResult)
	return r, args.Error(1)
}

func (m *mockNotificationService) SendClaimEmail(ctx context.Context, caller notification.Caller, req notification.ClaimEmailRequest) (*notification.SendResult, error) {
	args := m.Called(ctx, caller, req)
	r, _ := args.Get(0).(*notification.SendResult)
	return r, args.Error(1)
}

func (m *mockNotificationService) List(ctx context.Context, userID int64) ([]*warranty.Notification, error) {
	args := m.Called(ctx, userID)
	ns, _ := args.Get(0).([]*warranty.Notification)
	return ns, args.Error(1)
}

type mockAccountService struct{ mock.Mock }

func (m *mockAccountService) Profile(ctx context.Context, userID int64) (*warranty.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*warranty.Profile)
	return p, args.Error(1)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, userID int64, patch warranty.ProfilePatch) (*warranty.User, error) {
	args := m.Called(ctx, userID, patch)
	u, _ := args.Get(0).(*warranty.User)
	return u, args.Error(1)
}

func (m *mockAccountService) Stats(ctx context.Context) (*account.Stats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*account.Stats)
	return s, args.Error(1)
}

type mockAssistantService struct{ mock.Mock }

func (m *mockAssistantService) Chat(ctx context.Context, caller assistant.Caller, message string) (*assistant.Reply, error) {
	args := m.Called(ctx, caller, message)
	r, _ := args.Get(0).(*assistant.Reply)
	return r, args.Error(1)
}

type mockInsightsService struct{ mock.Mock }

func (m *mockInsightsService) Generate(ctx context.Context, userID int64) (*insights.Report, error) {
	args := m.Called(ctx, userID)
	r, _ := args.Get(0).(*insights.Report)
	return r, args.Error(1)
}
