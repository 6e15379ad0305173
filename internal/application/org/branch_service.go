package org

import (
	"context"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BranchService provides application-level branch operations
type BranchService struct {
	branchRepo  org.BranchRepository
	companyRepo org.CompanyRepository
	sequences   lending.SequenceAllocator
	logger      *zap.Logger
}

func NewBranchService(
	branchRepo org.BranchRepository,
	companyRepo org.CompanyRepository,
	sequences lending.SequenceAllocator,
	logger *zap.Logger,
) *BranchService {
	return &BranchService{
		branchRepo:  branchRepo,
		companyRepo: companyRepo,
		sequences:   sequences,
		logger:      logger,
	}
}

type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type BranchResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Code    string    `json:"code"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`
}

func toBranchResponse(b *org.Branch) *BranchResponse {
	return &BranchResponse{
		ID:      b.ID,
		Name:    b.Name,
		Code:    b.Code,
		Address: b.Address,
		Phone:   b.Phone,
	}
}

// CreateBranch allocates the next branch code for the company and
// creates the branch. Branch codes never reset, so no financial year is
// attached to the sequence.
func (s *BranchService) CreateBranch(ctx context.Context, companyID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}

	seq, err := s.sequences.Next(ctx, companyID, lending.SeqBranchCode, "")
	if err != nil {
		return nil, err
	}
	branch, err := org.NewBranch(company, req.Name, org.FormatBranchCode(seq), req.Address, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	s.logger.Info("branch created",
		zap.String("company_id", companyID.String()),
		zap.String("branch_code", branch.Code))
	return toBranchResponse(branch), nil
}

func (s *BranchService) GetBranch(ctx context.Context, companyID, branchID uuid.UUID) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, shared.ErrNotFound
	}
	return toBranchResponse(branch), nil
}

func (s *BranchService) ListBranches(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]BranchResponse, error) {
	branches, err := s.branchRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]BranchResponse, 0, len(branches))
	for i := range branches {
		out = append(out, *toBranchResponse(&branches[i]))
	}
	return out, nil
}

func (s *BranchService) UpdateBranch(ctx context.Context, companyID, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, shared.ErrNotFound
	}
	if err := branch.Update(req.Name, req.Address, req.Phone); err != nil {
		return nil, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// DeleteBranches bulk soft-deletes branches by id
func (s *BranchService) DeleteBranches(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.branchRepo.SoftDeleteMany(ctx, companyID, ids)
}
