// internal/service/insurance/insurance_service.go
package insurance

import (
	"context"
	"time"

	"alamin-service/internal/domain/insurance"
	"alamin-service/internal/pkg/cache"
	"alamin-service/internal/pkg/idgen"
	"alamin-service/internal/repository/postgres"
	ws "alamin-service/internal/websocket"

	"go.uber.org/zap"
)

// Insurance companies are shared state: every authenticated user sees and
// edits the same list, so no ownership filter applies here.
type InsuranceService struct {
	repo      *postgres.InsuranceRepository
	cache     *cache.Cache[[]insurance.Company]
	idgen     *idgen.Generator
	publisher ws.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewInsuranceService(
	repo *postgres.InsuranceRepository,
	cache *cache.Cache[[]insurance.Company],
	gen *idgen.Generator,
	publisher ws.Publisher,
	logger *zap.Logger,
) *InsuranceService {
	return &InsuranceService{
		repo:      repo,
		cache:     cache,
		idgen:     gen,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every insurance company, via the snapshot cache.
func (s *InsuranceService) List(ctx context.Context) ([]insurance.Company, error) {
	if cached, ok := s.cache.Get(); ok {
		return cached, nil
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(all)
	return all, nil
}

func (s *InsuranceService) Get(ctx context.Context, id int64) (*insurance.Company, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InsuranceService) Create(ctx context.Context, req *insurance.CreateCompanyRequest) (*insurance.Company, error) {
	now := s.now()

	c := &insurance.Company{
		ID:          s.idgen.NextID(),
		Name:        req.Name,
		Phone:       req.Phone,
		Status:      req.Status,
		Due:         req.Due,
		Paid:        req.Paid,
		Currency:    req.Currency,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if c.Status == "" {
		c.Status = insurance.StatusTrial
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.InsuranceAdded(c.ID)

	s.logger.Info("insurance company created",
		zap.Int64("company_id", c.ID),
		zap.String("name", c.Name),
	)
	return c, nil
}

func (s *InsuranceService) Update(ctx context.Context, id int64, req *insurance.UpdateCompanyRequest) (*insurance.Company, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Due != nil {
		c.Due = *req.Due
	}
	if req.Paid != nil {
		c.Paid = *req.Paid
	}
	if req.Currency != nil {
		c.Currency = *req.Currency
	}
	c.LastUpdated = s.now()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.publisher.InsuranceUpdated(c.ID)
	return c, nil
}

func (s *InsuranceService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate()
	s.publisher.InsuranceDeleted(id)

	s.logger.Info("insurance company deleted", zap.Int64("company_id", id))
	return nil
}

// AllUnfiltered returns every company for snapshot export.
func (s *InsuranceService) AllUnfiltered(ctx context.Context) ([]insurance.Company, error) {
	return s.List(ctx)
}
