package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobOverdueSweep is the job name recorded for the daily status sweep.
const JobOverdueSweep = "overdue_sweep"

// Job run statuses persisted to scheduler_job_runs.
const (
	JobStatusRunning = "running"
	JobStatusSuccess = "success"
	JobStatusFailed  = "failed"
)

// JobRunRecord is one execution of a scheduled job for one company.
type JobRunRecord struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID   *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	JobName     string     `gorm:"column:job_name;size:50;not null;index"`
	Status      string     `gorm:"column:status;size:20"`
	Error       string     `gorm:"column:error;type:text"`
	StartedAt   *time.Time `gorm:"column:started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (JobRunRecord) TableName() string {
	return "scheduler_job_runs"
}

// JobRunRepository persists job run records.
type JobRunRepository struct {
	db *gorm.DB
}

// NewJobRunRepository creates a new JobRunRepository
func NewJobRunRepository(db *gorm.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

// RecordStart inserts a running record and returns its ID.
func (r *JobRunRepository) RecordStart(ctx context.Context, companyID *uuid.UUID, jobName string) (uuid.UUID, error) {
	now := time.Now()
	record := &JobRunRecord{
		ID:        uuid.New(),
		CompanyID: companyID,
		JobName:   jobName,
		Status:    JobStatusRunning,
		StartedAt: &now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return uuid.Nil, err
	}
	return record.ID, nil
}

// RecordComplete marks a run finished with its final status.
func (r *JobRunRepository) RecordComplete(ctx context.Context, jobID uuid.UUID, success bool, errMsg string) error {
	now := time.Now()
	status := JobStatusSuccess
	if !success {
		status = JobStatusFailed
	}
	return r.db.WithContext(ctx).
		Model(&JobRunRecord{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":       status,
			"error":        errMsg,
			"completed_at": now,
			"updated_at":   now,
		}).Error
}

// LastRun returns the most recent run of the named job for a company,
// or nil when the job has never run.
func (r *JobRunRepository) LastRun(ctx context.Context, companyID *uuid.UUID, jobName string) (*JobRunRecord, error) {
	var record JobRunRecord
	query := r.db.WithContext(ctx).Where("job_name = ?", jobName)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	} else {
		query = query.Where("company_id IS NULL")
	}
	err := query.Order("started_at DESC").First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
