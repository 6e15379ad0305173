package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
)

type fakeCompanyProvider struct {
	mu        sync.Mutex
	companies []org.Company
	calls     int
}

func (f *fakeCompanyProvider) FindAll(_ context.Context, _ shared.Filter) ([]org.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.companies, nil
}

func (f *fakeCompanyProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testCompany(t *testing.T, name string) org.Company {
	t.Helper()
	company, err := org.NewCompany(name, "", "", "")
	require.NoError(t, err)
	return *company
}

func newTestScheduler(config OverdueSchedulerConfig, companies CompanyProvider) *OverdueScheduler {
	sweeper := NewOverdueSweeper(&fakeLoanStore{}, &fakeOtherLoanStore{}, zap.NewNop())
	return NewOverdueScheduler(config, sweeper, companies, nil, zap.NewNop())
}

func TestOverdueSchedulerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "default 1am", hour: 1, minute: 0},
		{name: "midnight", hour: 0, minute: 0},
		{name: "end of day", hour: 23, minute: 59},
		{name: "hour too large", hour: 24, minute: 0, wantErr: true},
		{name: "negative hour", hour: -1, minute: 0, wantErr: true},
		{name: "minute too large", hour: 1, minute: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := OverdueSchedulerConfig{SweepHour: tt.hour, SweepMinute: tt.minute}
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultOverdueSchedulerConfig(t *testing.T) {
	cfg := DefaultOverdueSchedulerConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.SweepHour)
	assert.Equal(t, 0, cfg.SweepMinute)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Equal(t, 30*time.Minute, cfg.JobTimeout)
}

func TestOverdueScheduler_ShouldRun(t *testing.T) {
	cfg := DefaultOverdueSchedulerConfig()
	s := newTestScheduler(cfg, &fakeCompanyProvider{})

	sweepTime := time.Date(2025, 6, 15, 1, 0, 30, 0, time.UTC)

	assert.True(t, s.shouldRun(sweepTime), "due at the configured minute")
	assert.True(t, s.shouldRun(sweepTime.Add(5*time.Minute)), "still due later in the hour when missed")
	assert.False(t, s.shouldRun(sweepTime.Add(-1*time.Hour)), "not due the hour before")
	assert.False(t, s.shouldRun(sweepTime.Add(2*time.Hour)), "not due after the hour has passed")

	// Once a run is recorded for the day the window closes until tomorrow.
	s.mu.Lock()
	s.lastRunDate = sweepTime.Format("2006-01-02")
	s.mu.Unlock()
	assert.False(t, s.shouldRun(sweepTime.Add(5*time.Minute)))
	assert.True(t, s.shouldRun(sweepTime.AddDate(0, 0, 1)))
}

func TestOverdueScheduler_StartStop(t *testing.T) {
	cfg := DefaultOverdueSchedulerConfig()
	cfg.CheckInterval = 10 * time.Millisecond
	s := newTestScheduler(cfg, &fakeCompanyProvider{})

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "second start is a no-op")
	assert.NotNil(t, s.GetStatus()["next_run_at"])

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx), "second stop is a no-op")
}

func TestOverdueScheduler_StartRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultOverdueSchedulerConfig()
	cfg.SweepHour = 99
	s := newTestScheduler(cfg, &fakeCompanyProvider{})

	assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidConfig)
}

func TestOverdueScheduler_TriggerManualRun(t *testing.T) {
	provider := &fakeCompanyProvider{companies: []org.Company{
		testCompany(t, "Everest Gold Finance"),
		testCompany(t, "Summit Gold Loans"),
	}}
	cfg := DefaultOverdueSchedulerConfig()
	s := newTestScheduler(cfg, provider)

	t.Run("rejected while stopped", func(t *testing.T) {
		assert.ErrorIs(t, s.TriggerManualRun(context.Background()), ErrSchedulerNotRunning)
	})

	t.Run("runs the sweep while started", func(t *testing.T) {
		require.NoError(t, s.Start(context.Background()))
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, s.Stop(stopCtx))
		}()

		require.NoError(t, s.TriggerManualRun(context.Background()))

		assert.Eventually(t, func() bool {
			return provider.callCount() >= 1
		}, time.Second, 10*time.Millisecond)
	})
}

func TestJobRunRepository(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&JobRunRecord{}))

	repo := NewJobRunRepository(db)
	companyID := uuid.New()
	ctx := context.Background()

	t.Run("no runs yet returns nil", func(t *testing.T) {
		record, err := repo.LastRun(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("records start and completion", func(t *testing.T) {
		jobID, err := repo.RecordStart(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, jobID)

		record, err := repo.LastRun(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, JobStatusRunning, record.Status)
		assert.NotNil(t, record.StartedAt)
		assert.Nil(t, record.CompletedAt)

		require.NoError(t, repo.RecordComplete(ctx, jobID, true, ""))

		record, err = repo.LastRun(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		assert.Equal(t, JobStatusSuccess, record.Status)
		assert.NotNil(t, record.CompletedAt)
	})

	t.Run("records failures with the error message", func(t *testing.T) {
		jobID, err := repo.RecordStart(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		require.NoError(t, repo.RecordComplete(ctx, jobID, false, "company sweep timed out"))

		record, err := repo.LastRun(ctx, &companyID, JobOverdueSweep)
		require.NoError(t, err)
		assert.Equal(t, JobStatusFailed, record.Status)
		assert.Equal(t, "company sweep timed out", record.Error)
	})

	t.Run("runs are scoped per company", func(t *testing.T) {
		otherCompany := uuid.New()
		record, err := repo.LastRun(ctx, &otherCompany, JobOverdueSweep)
		require.NoError(t, err)
		assert.Nil(t, record)
	})
}
