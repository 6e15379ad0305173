// Package org holds the application services for master data: companies,
// branches, customers, schemes and penalty tiers.
package org

import (
	"context"
	"fmt"
	"time"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorageService abstracts the S3-compatible store used for logos,
// avatars and collateral photos.
type ObjectStorageService interface {
	// Upload writes an object directly
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

// CompanyService provides application-level company operations
type CompanyService struct {
	companyRepo org.CompanyRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

func NewCompanyService(companyRepo org.CompanyRepository, storage ObjectStorageService, logger *zap.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, storage: storage, logger: logger}
}

// BankAccountRequest describes one configured account
type BankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required"`
	HolderName    string `json:"holder_name" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	IFSCCode      string `json:"ifsc_code"`
}

// CreateCompanyRequest creates a tenant
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CompanyResponse is the company DTO
type CompanyResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Address      string                `json:"address,omitempty"`
	LogoURL      string                `json:"logo_url,omitempty"`
	BankAccounts []BankAccountResponse `json:"bank_accounts"`
	CreatedAt    time.Time             `json:"created_at"`
}

type BankAccountResponse struct {
	BankName      string `json:"bank_name"`
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
}

func toCompanyResponse(c *org.Company) *CompanyResponse {
	accounts := make([]BankAccountResponse, 0, len(c.BankAccounts))
	for _, a := range c.BankAccounts {
		accounts = append(accounts, BankAccountResponse{
			BankName:      a.BankName,
			HolderName:    a.HolderName,
			AccountNumber: a.AccountNumber,
			IFSCCode:      a.IFSCCode,
		})
	}
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		LogoURL:      c.LogoURL,
		BankAccounts: accounts,
		CreatedAt:    c.CreatedAt,
	}
}

func (s *CompanyService) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	company, err := org.NewCompany(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("name", company.Name))
	return toCompanyResponse(company), nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	if err := company.UpdateProfile(req.Name, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// AddBankAccount registers an account the bank-view feed reports on
func (s *CompanyService) AddBankAccount(ctx context.Context, id uuid.UUID, req BankAccountRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	account := org.BankAccount{
		BankName:      req.BankName,
		HolderName:    req.HolderName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	}
	if err := company.AddBankAccount(account); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

func (s *CompanyService) RemoveBankAccount(ctx context.Context, id uuid.UUID, bankName, accountNumber string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	if err := company.RemoveBankAccount(bankName, accountNumber); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// UploadLogo stores the company logo and records its key. A storage
// failure surfaces to the caller but the company row stays untouched.
func (s *CompanyService) UploadLogo(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}

	key := fmt.Sprintf("companies/%s/logo", id)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("logo upload failed",
			zap.String("company_id", id.String()), zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	company.SetLogo(key)
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}
