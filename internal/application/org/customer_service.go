package org

import (
	"context"
	"fmt"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo org.CustomerRepository
	branchRepo   org.BranchRepository
	sequences    lending.SequenceAllocator
	storage      ObjectStorageService
	logger       *zap.Logger
}

func NewCustomerService(
	customerRepo org.CustomerRepository,
	branchRepo org.BranchRepository,
	sequences lending.SequenceAllocator,
	storage ObjectStorageService,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		sequences:    sequences,
		storage:      storage,
		logger:       logger,
	}
}

type CreateCustomerRequest struct {
	BranchID  uuid.UUID `json:"branch_id" binding:"required"`
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email" binding:"omitempty,email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pincode   string    `json:"pincode"`
	Aadhaar   string    `json:"aadhaar"`
	PAN       string    `json:"pan"`
}

type UpdateCustomerRequest struct {
	FirstName     string `json:"first_name" binding:"required"`
	LastName      string `json:"last_name"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
	Aadhaar       string `json:"aadhaar"`
	PAN           string `json:"pan"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	IFSCCode      string `json:"ifsc_code"`
}

type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	Code      string    `json:"code"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Pincode   string    `json:"pincode,omitempty"`
	Aadhaar   string    `json:"aadhaar,omitempty"`
	PAN       string    `json:"pan,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

func toCustomerResponse(c *org.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Code:      c.Code,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Pincode:   c.Pincode,
		Aadhaar:   c.AadhaarNumber,
		PAN:       c.PANNumber,
		AvatarURL: c.AvatarURL,
	}
}

// CreateCustomer allocates the company's next customer code, prefixed
// with the branch code, and creates the customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, companyID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	branch, err := s.branchRepo.FindByIDForCompany(ctx, companyID, req.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, shared.ErrNotFound
	}

	seq, err := s.sequences.Next(ctx, companyID, lending.SeqCustomerCode, "")
	if err != nil {
		return nil, err
	}
	code := org.FormatCustomerCode(branch.Code, seq)

	customer, err := org.NewCustomer(companyID, branch.ID, code, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	customer.UpdateContact(req.Email, req.Phone, req.Address, req.City, req.State, req.Pincode)
	customer.UpdateKYC(req.Aadhaar, req.PAN)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("customer created",
		zap.String("company_id", companyID.String()),
		zap.String("customer_code", customer.Code))
	return toCustomerResponse(customer), nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, companyID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForCompany(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]CustomerResponse, error) {
	var customers []org.Customer
	var err error
	if filter.BranchID != nil {
		customers, err = s.customerRepo.FindByBranch(ctx, companyID, *filter.BranchID, filter)
	} else {
		customers, err = s.customerRepo.FindAllForCompany(ctx, companyID, filter)
	}
	if err != nil {
		return nil, err
	}
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *toCustomerResponse(&customers[i]))
	}
	return out, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, companyID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForCompany(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	customer.FirstName = req.FirstName
	customer.LastName = req.LastName
	customer.UpdateContact(req.Email, req.Phone, req.Address, req.City, req.State, req.Pincode)
	customer.UpdateKYC(req.Aadhaar, req.PAN)
	customer.UpdateBankDetails(req.BankName, req.AccountNumber, req.IFSCCode)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// UploadAvatar stores the customer photo and records its key
func (s *CustomerService) UploadAvatar(ctx context.Context, companyID, customerID uuid.UUID, data []byte, contentType string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForCompany(ctx, companyID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}

	key := fmt.Sprintf("companies/%s/customers/%s/avatar", companyID, customerID)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("avatar upload failed",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return nil, shared.ErrStorageFailure
	}
	customer.SetAvatar(key)
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// DeleteCustomers bulk soft-deletes customers by id
func (s *CustomerService) DeleteCustomers(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return shared.ErrInvalidInput
	}
	return s.customerRepo.SoftDeleteMany(ctx, companyID, ids)
}
