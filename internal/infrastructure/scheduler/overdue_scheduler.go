package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
)

// CompanyProvider lists the companies the sweep fans out over.
type CompanyProvider interface {
	FindAll(ctx context.Context, filter shared.Filter) ([]org.Company, error)
}

// OverdueSchedulerConfig holds configuration for the daily overdue sweep.
type OverdueSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// SweepHour is the hour (0-23) to run the daily sweep
	SweepHour int
	// SweepMinute is the minute (0-59) to run the daily sweep
	SweepMinute int
	// CheckInterval is how often the loop checks whether the sweep is due
	CheckInterval time.Duration
	// JobTimeout is the maximum time one full sweep can run
	JobTimeout time.Duration
}

// Validate checks the sweep time is a real wall-clock time.
func (c OverdueSchedulerConfig) Validate() error {
	if c.SweepHour < 0 || c.SweepHour > 23 {
		return ErrInvalidConfig
	}
	if c.SweepMinute < 0 || c.SweepMinute > 59 {
		return ErrInvalidConfig
	}
	return nil
}

// DefaultOverdueSchedulerConfig returns defaults: daily at 1:00 AM.
func DefaultOverdueSchedulerConfig() OverdueSchedulerConfig {
	return OverdueSchedulerConfig{
		Enabled:       true,
		SweepHour:     1,
		SweepMinute:   0,
		CheckInterval: 1 * time.Minute,
		JobTimeout:    30 * time.Minute,
	}
}

// OverdueScheduler runs the overdue sweep once a day across all
// companies. It ticks every CheckInterval and fires when the wall clock
// passes SweepHour:SweepMinute; lastRunDate guards against double runs
// inside the same day.
type OverdueScheduler struct {
	config    OverdueSchedulerConfig
	sweeper   *OverdueSweeper
	companies CompanyProvider
	jobRuns   *JobRunRepository
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunDate string
	lastRunAt   *time.Time
	nextRunAt   *time.Time
}

// NewOverdueScheduler creates the daily sweep scheduler. jobRuns may be
// nil, in which case runs are not persisted.
func NewOverdueScheduler(
	config OverdueSchedulerConfig,
	sweeper *OverdueSweeper,
	companies CompanyProvider,
	jobRuns *JobRunRepository,
	logger *zap.Logger,
) *OverdueScheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 1 * time.Minute
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = 30 * time.Minute
	}
	return &OverdueScheduler{
		config:    config,
		sweeper:   sweeper,
		companies: companies,
		jobRuns:   jobRuns,
		logger:    logger,
	}
}

// Start starts the scheduler loop.
func (s *OverdueScheduler) Start(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	if !s.config.Enabled {
		s.logger.Info("Overdue scheduler disabled, not starting")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Overdue scheduler started",
		zap.Int("sweep_hour", s.config.SweepHour),
		zap.Int("sweep_minute", s.config.SweepMinute),
		zap.Duration("check_interval", s.config.CheckInterval),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight sweep to finish,
// bounded by ctx.
func (s *OverdueScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *OverdueScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runSweep(ctx, now)
				s.calculateNextRunTime()
			}
		}
	}
}

// shouldRun reports whether the sweep is due and has not yet run today.
func (s *OverdueScheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Hour() != s.config.SweepHour {
		return false
	}
	if now.Minute() < s.config.SweepMinute {
		return false
	}
	return s.lastRunDate != now.Format("2006-01-02")
}

func (s *OverdueScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.SweepHour, s.config.SweepMinute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}
	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runSweep fans the sweep out over every company. One company failing
// does not stop the others; each company's run is recorded separately.
func (s *OverdueScheduler) runSweep(ctx context.Context, now time.Time) {
	s.mu.Lock()
	s.lastRunDate = now.Format("2006-01-02")
	s.lastRunAt = &now
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	s.logger.Info("Starting overdue sweep")

	companies, err := s.companies.FindAll(ctx, shared.Unpaged())
	if err != nil {
		s.logger.Error("Failed to list companies for overdue sweep", zap.Error(err))
		return
	}

	var swept, failed int
	for i := range companies {
		companyID := companies[i].ID
		if err := s.sweepCompany(ctx, companyID, now); err != nil {
			failed++
			s.logger.Error("Overdue sweep failed for company",
				zap.String("company_id", companyID.String()),
				zap.Error(err),
			)
			continue
		}
		swept++
	}

	s.logger.Info("Overdue sweep finished",
		zap.Int("companies_swept", swept),
		zap.Int("companies_failed", failed),
	)
}

func (s *OverdueScheduler) sweepCompany(ctx context.Context, companyID uuid.UUID, now time.Time) error {
	var jobID uuid.UUID
	if s.jobRuns != nil {
		var recordErr error
		jobID, recordErr = s.jobRuns.RecordStart(ctx, &companyID, JobOverdueSweep)
		if recordErr != nil {
			s.logger.Warn("Failed to record sweep start",
				zap.String("company_id", companyID.String()),
				zap.Error(recordErr),
			)
		}
	}

	result, err := s.sweeper.SweepCompany(ctx, companyID, now)
	if s.jobRuns != nil && jobID != uuid.Nil {
		errMsg := ""
		if err != nil {
			errMsg = err.Error()
		}
		if completeErr := s.jobRuns.RecordComplete(ctx, jobID, err == nil, errMsg); completeErr != nil {
			s.logger.Warn("Failed to record sweep completion",
				zap.String("company_id", companyID.String()),
				zap.Error(completeErr),
			)
		}
	}
	if err != nil {
		return err
	}

	s.logger.Debug("Company sweep complete",
		zap.String("company_id", companyID.String()),
		zap.Int("loans_overdue", result.LoansMarkedOverdue),
		zap.Int("loans_regular", result.LoansMarkedRegular),
		zap.Int("other_loans_overdue", result.OtherLoansMarkedOverdue),
	)
	return nil
}

// TriggerManualRun runs the sweep immediately, outside the daily window.
// It uses a background context so an HTTP caller disconnecting does not
// abort the sweep.
func (s *OverdueScheduler) TriggerManualRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runSweep(context.Background(), time.Now())
	return nil
}

// GetStatus returns the current scheduler state for the system endpoint.
func (s *OverdueScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":      s.config.Enabled,
		"is_running":   s.isRunning,
		"sweep_hour":   s.config.SweepHour,
		"sweep_minute": s.config.SweepMinute,
		"last_run_at":  s.lastRunAt,
		"next_run_at":  s.nextRunAt,
	}
}
