package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLoanRepository implements LoanRepository using GORM
type GormLoanRepository struct {
	companyScoped[lending.IssuedLoan, models.IssuedLoanModel, *models.IssuedLoanModel]
}

// NewGormLoanRepository creates a new GormLoanRepository
func NewGormLoanRepository(db *gorm.DB) *GormLoanRepository {
	return &GormLoanRepository{
		companyScoped: companyScoped[lending.IssuedLoan, models.IssuedLoanModel, *models.IssuedLoanModel]{
			db:         db,
			fromDomain: models.IssuedLoanModelFromDomain,
			sortFields: LoanSortFields,
			searchCols: []string{"loan_number", "transaction_number"},
			dateColumn: "issue_date",
			hasBranch:  true,
		},
	}
}

// preloaded returns a query with all sub-ledger associations loaded
func (r *GormLoanRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Interests").
		Preload("PartPayments").
		Preload("PartReleases").
		Preload("Closure")
}

// FindByID finds a loan with its sub-ledgers by ID
func (r *GormLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.IssuedLoan, error) {
	var model models.IssuedLoanModel
	if err := r.preloaded(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a loan with its sub-ledgers by ID within a company
func (r *GormLoanRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*lending.IssuedLoan, error) {
	var model models.IssuedLoanModel
	if err := r.preloaded(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany finds all loans of a company with their sub-ledgers
func (r *GormLoanRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]lending.IssuedLoan, error) {
	var loanModels []models.IssuedLoanModel
	query := r.applyFilter(
		r.preloaded(ctx).Model(&models.IssuedLoanModel{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoans(loanModels), nil
}

// FindByCustomer finds all loans of one customer
func (r *GormLoanRepository) FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID) ([]lending.IssuedLoan, error) {
	var loanModels []models.IssuedLoanModel
	if err := r.preloaded(ctx).
		Where("company_id = ? AND customer_id = ?", companyID, customerID).
		Order("issue_date DESC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoans(loanModels), nil
}

// FindOpenByCustomerAndScheme returns the open loan matching the
// duplicate-issuance guard triple, or nil when the customer has no open
// loan under the scheme. Closed and soft-deleted loans do not count.
func (r *GormLoanRepository) FindOpenByCustomerAndScheme(ctx context.Context, companyID, customerID, schemeID uuid.UUID) (*lending.IssuedLoan, error) {
	var model models.IssuedLoanModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND customer_id = ? AND scheme_id = ? AND status <> ?",
			companyID, customerID, schemeID, string(lending.StatusClosed)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenLoans returns all non-closed loans of a company for the overdue sweep
func (r *GormLoanRepository) FindOpenLoans(ctx context.Context, companyID uuid.UUID) ([]lending.IssuedLoan, error) {
	var loanModels []models.IssuedLoanModel
	if err := r.preloaded(ctx).
		Where("company_id = ? AND status <> ?", companyID, string(lending.StatusClosed)).
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainLoans(loanModels), nil
}

// IssueAtomically creates a loan inside one transaction: duplicate guard,
// number allocation and the insert all commit or roll back together.
func (r *GormLoanRepository) IssueAtomically(
	ctx context.Context,
	companyID, customerID, schemeID uuid.UUID,
	issueDate time.Time,
	build func(loanNumber, transactionNumber string) (*lending.IssuedLoan, error),
) (*lending.IssuedLoan, error) {
	var issued *lending.IssuedLoan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.IssuedLoanModel
		err := tx.
			Where("company_id = ? AND customer_id = ? AND scheme_id = ? AND status <> ?",
				companyID, customerID, schemeID, string(lending.StatusClosed)).
			First(&existing).Error
		if err == nil {
			return shared.ErrDuplicateLoan
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		financialYear := lending.FinancialYearLabel(issueDate)
		loanSeq, err := nextSequenceInTx(tx, companyID, lending.SeqLoanNumber, financialYear)
		if err != nil {
			return err
		}
		trxnSeq, err := nextSequenceInTx(tx, companyID, lending.SeqTransactionNumber, "")
		if err != nil {
			return err
		}

		loan, err := build(
			lending.FormatLoanNumber(financialYear, loanSeq),
			lending.FormatTransactionNumber(trxnSeq),
		)
		if err != nil {
			return err
		}

		if err := tx.Create(models.IssuedLoanModelFromDomain(loan)).Error; err != nil {
			return err
		}
		issued = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

// Save persists the aggregate and appends any new sub-ledger rows.
// Sub-ledger rows are immutable once written, so existing rows are only
// ever updated in place, never removed.
func (r *GormLoanRepository) Save(ctx context.Context, loan *lending.IssuedLoan) error {
	model := models.IssuedLoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveLoanModel(tx, model)
	})
}

// SaveWithLock persists the aggregate with an optimistic version check.
// The domain increments Version before saving; the write only lands when
// the stored row still carries the previous version.
func (r *GormLoanRepository) SaveWithLock(ctx context.Context, loan *lending.IssuedLoan) error {
	model := models.IssuedLoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.IssuedLoanModel{}).
			Where("id = ? AND version = ?", loan.ID, loan.Version-1).
			Select("*").Omit("Interests", "PartPayments", "PartReleases", "Closure", "created_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return saveLoanChildren(tx, model)
	})
}

// BulkUpdateStatus sets the status of the given loans in one write
func (r *GormLoanRepository) BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status lending.LoanStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.IssuedLoanModel{}).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Update("status", string(status)).Error
}

func saveLoanModel(tx *gorm.DB, model *models.IssuedLoanModel) error {
	if err := tx.Omit("Interests", "PartPayments", "PartReleases", "Closure").Save(model).Error; err != nil {
		return err
	}
	return saveLoanChildren(tx, model)
}

func saveLoanChildren(tx *gorm.DB, model *models.IssuedLoanModel) error {
	for i := range model.Interests {
		model.Interests[i].LoanID = model.ID
		if err := tx.Save(&model.Interests[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.PartPayments {
		model.PartPayments[i].LoanID = model.ID
		if err := tx.Save(&model.PartPayments[i]).Error; err != nil {
			return err
		}
	}
	for i := range model.PartReleases {
		model.PartReleases[i].LoanID = model.ID
		if err := tx.Save(&model.PartReleases[i]).Error; err != nil {
			return err
		}
	}
	if model.Closure != nil {
		model.Closure.LoanID = model.ID
		if err := tx.Save(model.Closure).Error; err != nil {
			return err
		}
	}
	return nil
}

func toDomainLoans(loanModels []models.IssuedLoanModel) []lending.IssuedLoan {
	loans := make([]lending.IssuedLoan, len(loanModels))
	for i := range loanModels {
		loans[i] = *loanModels[i].ToDomain()
	}
	return loans
}

// Ensure GormLoanRepository implements LoanRepository
var _ lending.LoanRepository = (*GormLoanRepository)(nil)
