package org

import (
	"fmt"
	"strings"

	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer belongs to a company and a branch. The customer code embeds the
// branch code followed by a 5-digit per-company sequence, e.g. "C00100001".
type Customer struct {
	shared.CompanyAggregateRoot
	BranchID  uuid.UUID
	Code      string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	Pincode   string

	// KYC
	AadhaarNumber string
	PANNumber     string
	AvatarURL     string

	// Customer's own bank details, used for payouts
	BankName      string
	AccountNumber string
	IFSCCode      string
}

// FormatCustomerCode renders a customer code from the branch code and the
// allocated per-company sequence number.
func FormatCustomerCode(branchCode string, seq int64) string {
	return fmt.Sprintf("C%s%05d", branchCode, seq)
}

// NewCustomer creates a customer under a branch with an allocated code
func NewCustomer(companyID, branchID uuid.UUID, code, firstName, lastName string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer first name is required")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer branch is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Customer code is required")
	}
	return &Customer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		BranchID:             branchID,
		Code:                 code,
		FirstName:            firstName,
		LastName:             strings.TrimSpace(lastName),
	}, nil
}

// FullName returns the display name
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// UpdateContact updates contact and address fields
func (c *Customer) UpdateContact(email, phone, address, city, state, pincode string) {
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.City = city
	c.State = state
	c.Pincode = pincode
}

// UpdateKYC records identity document numbers
func (c *Customer) UpdateKYC(aadhaar, pan string) {
	c.AadhaarNumber = aadhaar
	c.PANNumber = pan
}

// UpdateBankDetails records the customer's payout account
func (c *Customer) UpdateBankDetails(bankName, accountNumber, ifsc string) {
	c.BankName = bankName
	c.AccountNumber = accountNumber
	c.IFSCCode = ifsc
}

// SetAvatar stores the uploaded avatar location. Avatar upload is
// best-effort; customer creation never depends on it.
func (c *Customer) SetAvatar(url string) {
	c.AvatarURL = url
}
