package org

import (
	"context"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SchemeService provides application-level scheme and penalty-tier
// operations. Scheme rates are read live by the accrual calculator, so a
// rate change applies from the next accrual onward.
type SchemeService struct {
	schemeRepo  org.SchemeRepository
	penaltyRepo org.PenaltyRepository
	companyRepo org.CompanyRepository
	logger      *zap.Logger
}

func NewSchemeService(
	schemeRepo org.SchemeRepository,
	penaltyRepo org.PenaltyRepository,
	companyRepo org.CompanyRepository,
	logger *zap.Logger,
) *SchemeService {
	return &SchemeService{
		schemeRepo:  schemeRepo,
		penaltyRepo: penaltyRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

type CreateSchemeRequest struct {
	Name           string          `json:"name" binding:"required"`
	InterestRate   decimal.Decimal `json:"interest_rate" binding:"required"`
	InterestPeriod int             `json:"interest_period"`
	Valuation      string          `json:"valuation" binding:"omitempty,oneof=Weight Piece"`
	RatePerGram    decimal.Decimal `json:"rate_per_gram"`
}

type UpdateSchemeRequest struct {
	InterestRate   decimal.Decimal `json:"interest_rate" binding:"required"`
	InterestPeriod int             `json:"interest_period"`
}

type SchemeResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	InterestPeriod int             `json:"interest_period"`
	Valuation      string          `json:"valuation"`
	RatePerGram    decimal.Decimal `json:"rate_per_gram"`
}

func toSchemeResponse(s *org.Scheme) *SchemeResponse {
	return &SchemeResponse{
		ID:             s.ID,
		Name:           s.Name,
		InterestRate:   s.InterestRate,
		InterestPeriod: s.InterestPeriod,
		Valuation:      string(s.Valuation),
		RatePerGram:    s.RatePerGram,
	}
}

func (s *SchemeService) CreateScheme(ctx context.Context, companyID uuid.UUID, req CreateSchemeRequest) (*SchemeResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}

	valuation := org.ValuationByWeight
	if req.Valuation != "" {
		valuation = org.ValuationMethod(req.Valuation)
	}
	scheme, err := org.NewScheme(company, req.Name, req.InterestRate, req.InterestPeriod, valuation)
	if err != nil {
		return nil, err
	}
	scheme.RatePerGram = req.RatePerGram

	if err := s.schemeRepo.Save(ctx, scheme); err != nil {
		return nil, err
	}
	s.logger.Info("scheme created",
		zap.String("company_id", companyID.String()),
		zap.String("name", scheme.Name),
		zap.String("interest_rate", scheme.InterestRate.String()))
	return toSchemeResponse(scheme), nil
}

func (s *SchemeService) GetScheme(ctx context.Context, companyID, schemeID uuid.UUID) (*SchemeResponse, error) {
	scheme, err := s.schemeRepo.FindByIDForCompany(ctx, companyID, schemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, shared.ErrNotFound
	}
	return toSchemeResponse(scheme), nil
}

func (s *SchemeService) ListSchemes(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]SchemeResponse, error) {
	schemes, err := s.schemeRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]SchemeResponse, 0, len(schemes))
	for i := range schemes {
		out = append(out, *toSchemeResponse(&schemes[i]))
	}
	return out, nil
}

func (s *SchemeService) UpdateScheme(ctx context.Context, companyID, schemeID uuid.UUID, req UpdateSchemeRequest) (*SchemeResponse, error) {
	scheme, err := s.schemeRepo.FindByIDForCompany(ctx, companyID, schemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, shared.ErrNotFound
	}
	if err := scheme.UpdateTerms(req.InterestRate, req.InterestPeriod); err != nil {
		return nil, err
	}
	if err := s.schemeRepo.Save(ctx, scheme); err != nil {
		return nil, err
	}
	return toSchemeResponse(scheme), nil
}

// DeleteSchemes bulk soft-deletes schemes by id
func (s *SchemeService) DeleteSchemes(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.schemeRepo.SoftDeleteMany(ctx, companyID, ids)
}

// ===================== Penalty Tiers =====================

type PenaltyTierRequest struct {
	FromDay     int             `json:"from_day" binding:"min=0"`
	ToDay       int             `json:"to_day" binding:"required"`
	RatePercent decimal.Decimal `json:"rate_percent" binding:"required"`
}

type PenaltyTierResponse struct {
	ID          uuid.UUID       `json:"id"`
	FromDay     int             `json:"from_day"`
	ToDay       int             `json:"to_day"`
	RatePercent decimal.Decimal `json:"rate_percent"`
}

func toPenaltyTierResponse(t *org.PenaltyTier) *PenaltyTierResponse {
	return &PenaltyTierResponse{
		ID:          t.ID,
		FromDay:     t.FromDay,
		ToDay:       t.ToDay,
		RatePercent: t.RatePercent,
	}
}

func (s *SchemeService) CreatePenaltyTier(ctx context.Context, companyID uuid.UUID, req PenaltyTierRequest) (*PenaltyTierResponse, error) {
	tier, err := org.NewPenaltyTier(companyID, req.FromDay, req.ToDay, req.RatePercent)
	if err != nil {
		return nil, err
	}
	if err := s.penaltyRepo.Save(ctx, tier); err != nil {
		return nil, err
	}
	return toPenaltyTierResponse(tier), nil
}

func (s *SchemeService) ListPenaltyTiers(ctx context.Context, companyID uuid.UUID) ([]PenaltyTierResponse, error) {
	tiers, err := s.penaltyRepo.FindAllOrdered(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]PenaltyTierResponse, 0, len(tiers))
	for i := range tiers {
		out = append(out, *toPenaltyTierResponse(&tiers[i]))
	}
	return out, nil
}

func (s *SchemeService) UpdatePenaltyTier(ctx context.Context, companyID, tierID uuid.UUID, req PenaltyTierRequest) (*PenaltyTierResponse, error) {
	tier, err := s.penaltyRepo.FindByIDForCompany(ctx, companyID, tierID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, shared.ErrNotFound
	}
	if err := tier.Update(req.FromDay, req.ToDay, req.RatePercent); err != nil {
		return nil, err
	}
	if err := s.penaltyRepo.Save(ctx, tier); err != nil {
		return nil, err
	}
	return toPenaltyTierResponse(tier), nil
}

// DeletePenaltyTiers bulk soft-deletes tiers by id
func (s *SchemeService) DeletePenaltyTiers(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.penaltyRepo.SoftDeleteMany(ctx, companyID, ids)
}
