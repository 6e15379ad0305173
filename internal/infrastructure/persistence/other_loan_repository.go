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

// GormOtherLoanRepository implements OtherLoanRepository using GORM
type GormOtherLoanRepository struct {
	companyScoped[lending.OtherIssuedLoan, models.OtherIssuedLoanModel, *models.OtherIssuedLoanModel]
}

// NewGormOtherLoanRepository creates a new GormOtherLoanRepository
func NewGormOtherLoanRepository(db *gorm.DB) *GormOtherLoanRepository {
	return &GormOtherLoanRepository{
		companyScoped: companyScoped[lending.OtherIssuedLoan, models.OtherIssuedLoanModel, *models.OtherIssuedLoanModel]{
			db:         db,
			fromDomain: models.OtherIssuedLoanModelFromDomain,
			sortFields: OtherLoanSortFields,
			searchCols: []string{"other_number", "lender_name"},
			dateColumn: "issue_date",
		},
	}
}

func (r *GormOtherLoanRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Interests").
		Preload("Closure")
}

// FindByID finds a third-party loan with its sub-ledgers by ID
func (r *GormOtherLoanRepository) FindByID(ctx context.Context, id uuid.UUID) (*lending.OtherIssuedLoan, error) {
	var model models.OtherIssuedLoanModel
	if err := r.preloaded(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForCompany finds a third-party loan by ID within a company
func (r *GormOtherLoanRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*lending.OtherIssuedLoan, error) {
	var model models.OtherIssuedLoanModel
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

// FindAllForCompany finds all third-party loans of a company
func (r *GormOtherLoanRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]lending.OtherIssuedLoan, error) {
	var loanModels []models.OtherIssuedLoanModel
	query := r.applyFilter(
		r.preloaded(ctx).Model(&models.OtherIssuedLoanModel{}).Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainOtherLoans(loanModels), nil
}

// FindByBackingLoan returns the third-party loans taken against one issued
// loan's collateral.
func (r *GormOtherLoanRepository) FindByBackingLoan(ctx context.Context, companyID, loanID uuid.UUID) ([]lending.OtherIssuedLoan, error) {
	var loanModels []models.OtherIssuedLoanModel
	if err := r.preloaded(ctx).
		Where("company_id = ? AND loan_id = ?", companyID, loanID).
		Order("issue_date DESC").
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainOtherLoans(loanModels), nil
}

// FindIssuedBefore returns Issued loans whose renewal date is before the
// cutoff, for the overdue sweep.
func (r *GormOtherLoanRepository) FindIssuedBefore(ctx context.Context, companyID uuid.UUID, renewalBefore time.Time) ([]lending.OtherIssuedLoan, error) {
	var loanModels []models.OtherIssuedLoanModel
	if err := r.preloaded(ctx).
		Where("company_id = ? AND status = ? AND renewal_date < ?",
			companyID, string(lending.OtherStatusIssued), renewalBefore).
		Find(&loanModels).Error; err != nil {
		return nil, err
	}
	return toDomainOtherLoans(loanModels), nil
}

// IssueAtomically allocates the other-loan number and inserts the built
// aggregate in one transaction.
func (r *GormOtherLoanRepository) IssueAtomically(
	ctx context.Context,
	companyID uuid.UUID,
	issueDate time.Time,
	build func(otherNumber string) (*lending.OtherIssuedLoan, error),
) (*lending.OtherIssuedLoan, error) {
	var issued *lending.OtherIssuedLoan
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		financialYear := lending.FinancialYearLabel(issueDate)
		seq, err := nextSequenceInTx(tx, companyID, lending.SeqOtherLoanNumber, financialYear)
		if err != nil {
			return err
		}

		loan, err := build(lending.FormatLoanNumber(financialYear, seq))
		if err != nil {
			return err
		}

		if err := tx.Create(models.OtherIssuedLoanModelFromDomain(loan)).Error; err != nil {
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

// Save persists the aggregate and appends any new sub-ledger rows
func (r *GormOtherLoanRepository) Save(ctx context.Context, loan *lending.OtherIssuedLoan) error {
	model := models.OtherIssuedLoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Interests", "Closure").Save(model).Error; err != nil {
			return err
		}
		return saveOtherLoanChildren(tx, model)
	})
}

// SaveWithLock persists the aggregate with an optimistic version check
func (r *GormOtherLoanRepository) SaveWithLock(ctx context.Context, loan *lending.OtherIssuedLoan) error {
	model := models.OtherIssuedLoanModelFromDomain(loan)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OtherIssuedLoanModel{}).
			Where("id = ? AND version = ?", loan.ID, loan.Version-1).
			Select("*").Omit("Interests", "Closure", "created_at").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return saveOtherLoanChildren(tx, model)
	})
}

// BulkUpdateStatus sets the status of the given loans in one write
func (r *GormOtherLoanRepository) BulkUpdateStatus(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID, status lending.OtherLoanStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.OtherIssuedLoanModel{}).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Update("status", string(status)).Error
}

func saveOtherLoanChildren(tx *gorm.DB, model *models.OtherIssuedLoanModel) error {
	for i := range model.Interests {
		model.Interests[i].OtherLoanID = model.ID
		if err := tx.Save(&model.Interests[i]).Error; err != nil {
			return err
		}
	}
	if model.Closure != nil {
		model.Closure.OtherLoanID = model.ID
		if err := tx.Save(model.Closure).Error; err != nil {
			return err
		}
	}
	return nil
}

func toDomainOtherLoans(loanModels []models.OtherIssuedLoanModel) []lending.OtherIssuedLoan {
	loans := make([]lending.OtherIssuedLoan, len(loanModels))
	for i := range loanModels {
		loans[i] = *loanModels[i].ToDomain()
	}
	return loans
}

// Ensure GormOtherLoanRepository implements OtherLoanRepository
var _ lending.OtherLoanRepository = (*GormOtherLoanRepository)(nil)
