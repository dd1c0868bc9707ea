package product

import (
	"context"

	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/warrify/internal/intelligence/risk"
)

// RiskCache is satisfied by *redis.RiskCache.
type RiskCache interface {
	GetOrCompute(ctx context.Context, productID int64, day string, dest interface{}, compute func(ctx context.Context) (interface{}, error)) (bool, error)
	Invalidate(ctx context.Context, productID int64) error
}

const riskCacheName = "risk"

func (s *serviceImpl) RiskAssessment(ctx context.Context, userID, id int64) (*risk.Assessment, error) {
	p, err := s.products.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	today := s.scorer.Today()
	in := risk.InputFor(p)
	prometheus.RecordRiskAssessment(s.metrics, string(p.Category))

	if s.riskCache == nil {
		a := risk.AssessOn(today, in)
		return &a, nil
	}

	var a risk.Assessment
	hit, err := s.riskCache.GetOrCompute(ctx, id, today.String(), &a, func(context.Context) (interface{}, error) {
		return risk.AssessOn(today, in), nil
	})
	if err != nil {
		s.logger.Warn("risk cache unavailable", logging.Int64("product_id", id), logging.Err(err))
		a = risk.AssessOn(today, in)
		return &a, nil
	}
	prometheus.RecordCacheAccess(s.metrics, riskCacheName, hit)
	return &a, nil
}

func (s *serviceImpl) invalidateRisk(ctx context.Context, id int64) {
	if s.riskCache == nil {
		return
	}
	if err := s.riskCache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("risk cache invalidation failed", logging.Int64("product_id", id), logging.Err(err))
	}
}
