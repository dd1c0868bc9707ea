// Package product manages a user's registered products: CRUD, duplicate
// invoice checks, upcoming expiries, claim risk and invoice files.
package product

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/turtacn/warrify/internal/application/notification"
	"github.com/turtacn/warrify/internal/domain/warranty"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/intelligence/risk"
	"github.com/turtacn/warrify/pkg/errors"
)

// ExpiringWindowDays is how far ahead "expiring soon" looks.
const ExpiringWindowDays = 30

// CreateRequest is the payload for registering a product.
type CreateRequest struct {
	ProductName    string            `json:"productName"`
	Brand          string            `json:"brand"`
	Category       warranty.Category `json:"category"`
	PurchaseDate   warranty.Date     `json:"purchaseDate"`
	WarrantyMonths int               `json:"warrantyMonths"`
	ExpiryDate     warranty.Date     `json:"expiryDate"`
	PurchasePrice  float64           `json:"purchasePrice"`
	InvoiceFileURL string            `json:"invoiceFileUrl"`
	InvoiceText    string            `json:"invoiceText"`
	InvoiceNumber  string            `json:"invoiceNumber"`
	Notes          string            `json:"notes"`
}

// InvoiceCheck reports whether an invoice number is already registered.
type InvoiceCheck struct {
	Exists      bool   `json:"exists"`
	ProductName string `json:"productName,omitempty"`
}

// Upload is one invoice file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	URL string `json:"url"`
}

type Service interface {
	List(ctx context.Context, userID int64, filter warranty.ProductFilter) ([]*warranty.Product, error)
	Create(ctx context.Context, userID int64, req CreateRequest) (*warranty.Product, error)
	Get(ctx context.Context, userID, id int64) (*warranty.Product, error)
	Update(ctx context.Context, userID, id int64, patch warranty.ProductPatch) (*warranty.Product, error)
	Delete(ctx context.Context, userID, id int64) error
	CheckInvoice(ctx context.Context, userID int64, invoiceNumber string) (*InvoiceCheck, error)
	UpcomingExpiring(ctx context.Context, userID int64) ([]*warranty.Product, error)
	RiskAssessment(ctx context.Context, userID, id int64) (*risk.Assessment, error)
	UploadInvoice(ctx context.Context, userID int64, up Upload) (*UploadResult, error)
	// InvoiceURL resolves an invoice path owned by userID to a short-lived
	// download URL.
	InvoiceURL(ctx context.Context, userID int64, path string) (string, error)
}

// Deps bundles the collaborators of the product service. RiskCache,
// Invoices and Metrics are optional.
type Deps struct {
	Products      warranty.ProductRepository
	Recorder      *notification.Recorder
	Scorer        *risk.Scorer
	RiskCache     RiskCache
	Invoices      InvoiceStore
	MaxUploadSize int64
	Metrics       *prometheus.AppMetrics
	Logger        logging.Logger
}

type serviceImpl struct {
	products      warranty.ProductRepository
	recorder      *notification.Recorder
	scorer        *risk.Scorer
	riskCache     RiskCache
	invoices      InvoiceStore
	maxUploadSize int64
	metrics       *prometheus.AppMetrics
	logger        logging.Logger
}

func NewService(d Deps) Service {
	if d.Scorer == nil {
		d.Scorer = risk.NewScorer(nil)
	}
	if d.MaxUploadSize <= 0 {
		d.MaxUploadSize = DefaultMaxUploadSize
	}
	if d.Logger == nil {
		d.Logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		products:      d.Products,
		recorder:      d.Recorder,
		scorer:        d.Scorer,
		riskCache:     d.RiskCache,
		invoices:      d.Invoices,
		maxUploadSize: d.MaxUploadSize,
		metrics:       d.Metrics,
		logger:        d.Logger,
	}
}

func (s *serviceImpl) List(ctx context.Context, userID int64, filter warranty.ProductFilter) ([]*warranty.Product, error) {
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	if filter.ExpiringSoon && filter.Today.IsZero() {
		filter.Today = s.scorer.Today()
	}
	return s.products.List(ctx, userID, filter)
}

func (s *serviceImpl) Create(ctx context.Context, userID int64, req CreateRequest) (*warranty.Product, error) {
	p := &warranty.Product{
		UserID:         userID,
		Name:           strings.TrimSpace(req.ProductName),
		Brand:          strings.TrimSpace(req.Brand),
		Category:       req.Category,
		PurchaseDate:   req.PurchaseDate,
		WarrantyMonths: req.WarrantyMonths,
		ExpiryDate:     req.ExpiryDate,
		PurchasePrice:  req.PurchasePrice,
		InvoiceFileURL: req.InvoiceFileURL,
		InvoiceText:    req.InvoiceText,
		InvoiceNumber:  strings.TrimSpace(req.InvoiceNumber),
		Notes:          req.Notes,
		ClaimStatus:    warranty.ClaimNone,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created", logging.Int64("product_id", p.ID), logging.Int64("user_id", userID))

	if s.recorder != nil {
		n := warranty.NewSent(userID, p.ID, warranty.NotificationProductAdded, time.Now())
		if err := s.recorder.Record(ctx, n, ""); err != nil {
			s.logger.Warn("product added notification not recorded", logging.Int64("product_id", p.ID), logging.Err(err))
		}
	}
	return p, nil
}

func (s *serviceImpl) Get(ctx context.Context, userID, id int64) (*warranty.Product, error) {
	return s.products.GetByID(ctx, id, userID)
}

func (s *serviceImpl) Update(ctx context.Context, userID, id int64, patch warranty.ProductPatch) (*warranty.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	p, err := s.products.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.invalidateRisk(ctx, id)
	return p, nil
}

func (s *serviceImpl) Delete(ctx context.Context, userID, id int64) error {
	if err := s.products.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidateRisk(ctx, id)
	s.logger.Info("product deleted", logging.Int64("product_id", id), logging.Int64("user_id", userID))
	return nil
}

func (s *serviceImpl) CheckInvoice(ctx context.Context, userID int64, invoiceNumber string) (*InvoiceCheck, error) {
	if strings.TrimSpace(invoiceNumber) == "" {
		return &InvoiceCheck{Exists: false}, nil
	}
	p, err := s.products.FindByInvoiceNumber(ctx, userID, invoiceNumber)
	if err != nil {
		if errors.IsNotFound(err) {
			return &InvoiceCheck{Exists: false}, nil
		}
		return nil, err
	}
	if p == nil {
		return &InvoiceCheck{Exists: false}, nil
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "Unknown"
	}
	return &InvoiceCheck{Exists: true, ProductName: name}, nil
}

func (s *serviceImpl) UpcomingExpiring(ctx context.Context, userID int64) ([]*warranty.Product, error) {
	today := s.scorer.Today()
	return s.products.ListExpiringBetween(ctx, userID, today, today.AddDays(ExpiringWindowDays))
}
