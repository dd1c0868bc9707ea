package notification

import (
	"context"
	"strings"
	"time"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/notification/email"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/internal/intelligence/servicedir"
	"github.com/turtacn/warrify/pkg/errors"
)

// ListLimit caps the notification history returned to a user.
const ListLimit = 50

// Caller is the authenticated user making a request.
type Caller struct {
	ID    int64
	Name  string
	Email string
}

type SendResult struct {
	Message string `json:"message"`
	To      string `json:"to,omitempty"`
}

type ClaimEmailRequest struct {
	ProductID      int64  `json:"productId"`
	EmailBody      string `json:"emailBody"`
	RecipientEmail string `json:"recipientEmail"`
}

type Service interface {
	SendTestReminder(ctx context.Context, caller Caller, productID int64) (*SendResult, error)
	// SendClaimEmail mails a claim to the override address, else the brand's
	// support address, else the caller.
	SendClaimEmail(ctx context.Context, caller Caller, req ClaimEmailRequest) (*SendResult, error)
	List(ctx context.Context, userID int64) ([]*warranty.Notification, error)
}

type serviceImpl struct {
	products   warranty.ProductRepository
	users      warranty.UserRepository
	recorder   *Recorder
	dispatcher email.Dispatcher
	directory  *servicedir.Directory
	clock      risk.Clock
	logger     logging.Logger
}

func NewService(
	products warranty.ProductRepository,
	users warranty.UserRepository,
	recorder *Recorder,
	dispatcher email.Dispatcher,
	directory *servicedir.Directory,
	clock risk.Clock,
	log logging.Logger,
) Service {
	if clock == nil {
		clock = risk.SystemClock{}
	}
	if directory == nil {
		directory = servicedir.Default()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &serviceImpl{
		products:   products,
		users:      users,
		recorder:   recorder,
		dispatcher: dispatcher,
		directory:  directory,
		clock:      clock,
		logger:     log,
	}
}

func (s *serviceImpl) SendTestReminder(ctx context.Context, caller Caller, productID int64) (*SendResult, error) {
	p, err := s.products.GetByID(ctx, productID, caller.ID)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	name := caller.Name
	if name == "" {
		name = u.Name
	}
	body := TestReminderBody(name, p, p.DaysLeft(s.clock.Today()))
	if err := s.send(ctx, u.Email, TestReminderSubject(p), body, p, warranty.NotificationTest); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDispatchFailed, "Failed to send test email")
	}
	return &SendResult{Message: "Reminder sent to " + u.Email}, nil
}

func (s *serviceImpl) SendClaimEmail(ctx context.Context, caller Caller, req ClaimEmailRequest) (*SendResult, error) {
	p, err := s.products.GetByID(ctx, req.ProductID, caller.ID)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(req.RecipientEmail)
	if to == "" {
		to = s.directory.EmailFor(p.Brand)
	}
	if to == "" {
		u, err := s.users.GetByID(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		to = u.Email
	}

	body := req.EmailBody
	if strings.TrimSpace(body) == "" {
		body = defaultClaimMsg
	}
	if err := s.send(ctx, to, ClaimSubject(p), body, p, warranty.NotificationClaimEmail); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDispatchFailed, "Failed to send claim email")
	}
	return &SendResult{Message: "Claim email sent to " + to, To: to}, nil
}

// send dispatches and logs the outcome. A failed send is logged as FAILED
// and its error returned; a failure to write the log entry is only logged
// since the message itself went out.
func (s *serviceImpl) send(ctx context.Context, to, subject, body string, p *warranty.Product, t warranty.NotificationType) error {
	sendErr := s.dispatcher.Send(ctx, to, subject, body)

	n := warranty.NewSent(p.UserID, p.ID, t, time.Now())
	if sendErr != nil {
		s.logger.Warn("email dispatch failed",
			logging.Int64("product_id", p.ID),
			logging.String("type", string(t)),
			logging.Err(sendErr))
		n = warranty.NewFailed(p.UserID, p.ID, t, sendErr)
	}
	if err := s.recorder.Record(ctx, n, to); err != nil {
		s.logger.Error("notification not recorded",
			logging.Int64("product_id", p.ID),
			logging.String("type", string(t)),
			logging.Err(err))
	}
	return sendErr
}

func (s *serviceImpl) List(ctx context.Context, userID int64) ([]*warranty.Notification, error) {
	return s.recorder.repo.ListByUser(ctx, userID, ListLimit)
}
