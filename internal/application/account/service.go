// Package account serves the caller's profile and the platform-wide counters.
package account

import (
	"context"
	"strconv"
	"strings"

	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

// PlatformVersion is reported by the stats endpoint.
const PlatformVersion = "2.0.0"

const co2PerKgEWaste = 3.4

var techStack = []string{
	"Go", "Gin", "PostgreSQL", "Redis", "Kafka", "MinIO",
	"Gemini AI 2.0", "go-mail", "JWT Auth", "Prometheus", "Rate Limiting",
}

// eWasteKg is the mass kept out of landfill per tracked product.
var eWasteKg = map[warranty.Category]float64{
	warranty.CategoryElectronics: 8,
	warranty.CategoryAppliances:  24,
	warranty.CategoryVehicle:     120,
	warranty.CategoryFurniture:   15,
}

const eWasteDefaultKg = 0.5

// Stats is the platform summary. The kg figures are strings with one decimal.
type Stats struct {
	TotalUsers         int64    `json:"totalUsers"`
	TotalProducts      int64    `json:"totalProducts"`
	TotalNotifications int64    `json:"totalNotifications"`
	EWasteSavedKg      string   `json:"eWasteSavedKg"`
	CO2SavedKg         string   `json:"co2SavedKg"`
	PlatformVersion    string   `json:"platformVersion"`
	TechStack          []string `json:"techStack"`
}

type Service interface {
	Profile(ctx context.Context, userID int64) (*warranty.Profile, error)
	// UpdateProfile changes only the fields present in patch.
	UpdateProfile(ctx context.Context, userID int64, patch warranty.ProfilePatch) (*warranty.User, error)
	Stats(ctx context.Context) (*Stats, error)
}

type serviceImpl struct {
	users         warranty.UserRepository
	products      warranty.ProductRepository
	notifications warranty.NotificationRepository
	logger        logging.Logger
}

func NewService(users warranty.UserRepository, products warranty.ProductRepository, notifications warranty.NotificationRepository, log logging.Logger) Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &serviceImpl{users: users, products: products, notifications: notifications, logger: log}
}

func (s *serviceImpl) Profile(ctx context.Context, userID int64) (*warranty.Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.New(errors.ErrCodeUserNotFound, "User not found")
		}
		return nil, err
	}
	products, err := s.products.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &warranty.Profile{User: *u, ProductCount: products, NotificationCount: notifications}, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, userID int64, patch warranty.ProfilePatch) (*warranty.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, errors.InvalidParam("name must not be empty")
		}
		patch.Name = &name
	}
	u, err := s.users.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", logging.Int64("user_id", userID))
	return u, nil
}

func (s *serviceImpl) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.products.CategoryCounts(ctx)
	if err != nil {
		return nil, err
	}

	kg := EWasteKg(counts)
	return &Stats{
		TotalUsers:         users,
		TotalProducts:      products,
		TotalNotifications: notifications,
		EWasteSavedKg:      oneDecimal(kg),
		CO2SavedKg:         oneDecimal(kg * co2PerKgEWaste),
		PlatformVersion:    PlatformVersion,
		TechStack:          append([]string(nil), techStack...),
	}, nil
}

// EWasteKg totals the per-category e-waste weights over counts.
func EWasteKg(counts map[warranty.Category]int64) float64 {
	var total float64
	for c, n := range counts {
		w, ok := eWasteKg[c]
		if !ok {
			w = eWasteDefaultKg
		}
		total += w * float64(n)
	}
	return total
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
