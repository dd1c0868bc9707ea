// Package auth handles account signup, login and bearer tokens.
package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/pkg/errors"
)

const minPasswordLength = 6

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupResult mirrors the created account id.
type SignupResult struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type UserView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

// Service is the account entry point used by the HTTP layer.
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	// Authenticate verifies a bearer token.
	Authenticate(token string) (*Claims, error)
}

type serviceImpl struct {
	users      warranty.UserRepository
	tokens     *TokenManager
	bcryptCost int
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
}

// NewService builds the auth service. metrics may be nil.
func NewService(users warranty.UserRepository, tokens *TokenManager, bcryptCost int, metrics *prometheus.AppMetrics, log logging.Logger) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &serviceImpl{users: users, tokens: tokens, bcryptCost: bcryptCost, metrics: metrics, logger: log}
}

func (s *serviceImpl) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, errors.InvalidParam("Missing fields")
	}
	if len(req.Password) < minPasswordLength {
		return nil, errors.New(errors.ErrCodeValidation, "Password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to hash password")
	}

	u := &warranty.User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		prometheus.RecordAuthAttempt(s.metrics, "signup", false)
		if errors.IsCode(err, errors.ErrCodeUserEmailTaken) {
			return nil, errors.New(errors.ErrCodeUserEmailTaken, "Email already exists")
		}
		return nil, err
	}

	prometheus.RecordAuthAttempt(s.metrics, "signup", true)
	s.logger.Info("user signed up", logging.Int64("user_id", u.ID))
	return &SignupResult{Message: "User created", UserID: u.ID}, nil
}

func (s *serviceImpl) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		prometheus.RecordAuthAttempt(s.metrics, "login", false)
		if errors.IsCode(err, errors.ErrCodeUserNotFound) {
			return nil, errors.InvalidParam("User not found")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		prometheus.RecordAuthAttempt(s.metrics, "login", false)
		s.logger.Debug("password mismatch", logging.Int64("user_id", u.ID))
		return nil, errors.New(errors.ErrCodeAuthInvalidCredentials, "Invalid credentials")
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	prometheus.RecordAuthAttempt(s.metrics, "login", true)
	return &LoginResult{Token: token, User: UserView{ID: u.ID, Name: u.Name, Email: u.Email}}, nil
}

func (s *serviceImpl) Authenticate(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}
