package persistence

import (
	"context"
	"testing"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSequenceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.SequenceCounterModel{})
	require.NoError(t, err)

	return db
}

func TestSequenceRepository_Next(t *testing.T) {
	db := setupSequenceTestDB(t)
	repo := NewGormSequenceRepository(db)
	ctx := context.Background()

	companyID := uuid.New()

	t.Run("allocates consecutive values starting at one", func(t *testing.T) {
		for want := int64(1); want <= 5; want++ {
			got, err := repo.Next(ctx, companyID, lending.SeqLoanNumber, "24_25")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("counters are independent per financial year", func(t *testing.T) {
		got, err := repo.Next(ctx, companyID, lending.SeqLoanNumber, "25_26")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("counters are independent per name", func(t *testing.T) {
		got, err := repo.Next(ctx, companyID, lending.SeqTransactionNumber, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("counters are independent per company", func(t *testing.T) {
		got, err := repo.Next(ctx, uuid.New(), lending.SeqLoanNumber, "24_25")
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})
}

func TestSequenceRepository_RollsBackWithEnclosingTransaction(t *testing.T) {
	db := setupSequenceTestDB(t)
	ctx := context.Background()

	companyID := uuid.New()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := nextSequenceInTx(tx, companyID, lending.SeqLoanNumber, "24_25")
		require.NoError(t, err)
		assert.Equal(t, int64(1), v)
		return assert.AnError
	})
	require.Error(t, err)

	// The aborted allocation left no trace.
	repo := NewGormSequenceRepository(db)
	got, err := repo.Next(ctx, companyID, lending.SeqLoanNumber, "24_25")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
