package repository

import (
	"context"
	"database/sql"

	"jobledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobListFilter narrows a job listing. Zero values mean "no filter".
type JobListFilter struct {
	Status     string
	CustomerID uuid.UUID
	Search     string // matched against title and description
	Page       int
	Limit      int
}

// JobRepository is the narrow store interface for jobs. FindByIDWithCustomer
// performs the eager join document generation relies on.
type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Job, error)
	FindByIDWithCustomer(ctx context.Context, userID, id uuid.UUID) (*model.Job, error)
	List(ctx context.Context, userID uuid.UUID, filter JobListFilter) ([]model.Job, int64, error)
	NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return GetDB(ctx, r.db).Create(job).Error
}

func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return GetDB(ctx, r.db).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("user_id = ? AND id = ?", userID, id).Delete(&model.Job{}).Error
}

func (r *jobRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := GetDB(ctx, r.db).First(&job, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindByIDWithCustomer(ctx context.Context, userID, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := GetDB(ctx, r.db).Preload("Customer").First(&job, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, userID uuid.UUID, filter JobListFilter) ([]model.Job, int64, error) {
	var jobs []model.Job
	var total int64

	db := GetDB(ctx, r.db)
	query := db.Model(&model.Job{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != uuid.Nil {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := query.Preload("Customer").Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// NextInvoiceNumber returns one more than the highest invoice number the
// user has assigned so far, starting at 1.
func (r *jobRepository) NextInvoiceNumber(ctx context.Context, userID uuid.UUID) (int, error) {
	var max sql.NullInt64
	err := GetDB(ctx, r.db).Model(&model.Job{}).
		Where("user_id = ? AND invoice_number IS NOT NULL", userID).
		Select("MAX(invoice_number)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}
