package service

import (
	"context"
	"fmt"
	"time"

	"jobledger/internal/costing"
	"jobledger/internal/model"
	"jobledger/internal/repository"
	ws "jobledger/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

// JobRequest is the edit form's payload. Cost inputs arrive as the raw form
// strings and run through the lossy parse-or-zero primitive; everything that
// fails to parse becomes zero, never an error. A save replaces all computed
// fields wholesale.
type JobRequest struct {
	CustomerID  string `json:"customer_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	JobAddress  string `json:"job_address"`
	Status      string `json:"status"`

	MaterialsCost  string `json:"materials_cost"`
	MaterialsNotes string `json:"materials_notes"`

	LabourMode      string `json:"labour_mode" binding:"omitempty,oneof=DAYS FIXED"`
	LabourDays      string `json:"labour_days"`
	LabourDayRate   string `json:"labour_day_rate"`
	LabourFixedCost string `json:"labour_fixed_cost"`

	OtherCosts      string `json:"other_costs"`
	OtherCostsNotes string `json:"other_costs_notes"`

	// Dates: "2006-01-02", empty means unset
	QuoteDate       string `json:"quote_date"`
	QuoteValidUntil string `json:"quote_valid_until"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	InvoiceDate     string `json:"invoice_date"`
	PaidDate        string `json:"paid_date"`

	InvoiceNumber    *int   `json:"invoice_number"`
	PaymentReference string `json:"payment_reference"`
}

type JobFilter struct {
	Status     string
	CustomerID string
	Search     string
	Page       int
	Limit      int
}

// JobDefaults pre-populates the job form for a not-yet-saved job. One-time
// defaults, not recomputation rules.
type JobDefaults struct {
	DefaultDayRate    *float64 `json:"default_day_rate"`
	QuoteValidityDays int      `json:"quote_validity_days"`
}

// --- Interface ---

type JobService interface {
	CreateJob(ctx context.Context, userID string, req JobRequest) (*model.Job, error)
	GetJob(ctx context.Context, userID, id string) (*model.Job, error)
	ListJobs(ctx context.Context, userID string, filter JobFilter) ([]model.Job, int64, error)
	UpdateJob(ctx context.Context, userID, id string, req JobRequest) (*model.Job, error)
	UpdateStatus(ctx context.Context, userID, id, status string) (*model.Job, error)
	DeleteJob(ctx context.Context, userID, id string) error
	Defaults(ctx context.Context, userID string) (JobDefaults, error)
	AssignInvoiceNumber(ctx context.Context, userID, id string) (*model.Job, error)
}

type jobService struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewJobService(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) JobService {
	return &jobService{
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

func (s *jobService) CreateJob(ctx context.Context, userID string, req JobRequest) (*model.Job, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	// A job always belongs to exactly one customer.
	if _, err := s.customerRepo.FindByID(ctx, uid, customerID); err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	job := &model.Job{UserID: uid, CustomerID: customerID, Status: model.StatusDraft}
	if err := s.applyRequest(ctx, job, req); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.notify("job.created", job)
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, userID, id string) (*model.Job, error) {
	uid, jid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByIDWithCustomer(ctx, uid, jid)
	if err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, userID string, filter JobFilter) ([]model.Job, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid user id: %w", err)
	}

	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("unknown status %q", filter.Status)
	}

	repoFilter := repository.JobListFilter{
		Status: filter.Status,
		Search: filter.Search,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	if repoFilter.Page <= 0 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit <= 0 {
		repoFilter.Limit = 20
	}
	if filter.CustomerID != "" {
		cid, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid customer id: %w", err)
		}
		repoFilter.CustomerID = cid
	}

	jobs, total, err := s.jobRepo.List(ctx, uid, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch jobs: %w", err)
	}
	return jobs, total, nil
}

func (s *jobService) UpdateJob(ctx context.Context, userID, id string, req JobRequest) (*model.Job, error) {
	uid, jid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, uid, jid)
	if err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}
	if customerID != job.CustomerID {
		if _, err := s.customerRepo.FindByID(ctx, uid, customerID); err != nil {
			return nil, fmt.Errorf("customer not found: %w", err)
		}
		job.CustomerID = customerID
	}

	if err := s.applyRequest(ctx, job, req); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.notify("job.updated", job)
	return job, nil
}

// UpdateStatus moves a job to any status. There is no transition graph; the
// business sets it manually.
func (s *jobService) UpdateStatus(ctx context.Context, userID, id, status string) (*model.Job, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	uid, jid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByID(ctx, uid, jid)
	if err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}

	job.Status = status
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.notify("job.status_changed", job)
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, userID, id string) error {
	uid, jid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return err
	}

	job, err := s.jobRepo.FindByID(ctx, uid, jid)
	if err != nil {
		return fmt.Errorf("job not found: %w", err)
	}

	if err := s.jobRepo.Delete(ctx, uid, jid); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.notify("job.deleted", job)
	return nil
}

func (s *jobService) Defaults(ctx context.Context, userID string) (JobDefaults, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return JobDefaults{}, fmt.Errorf("invalid user id: %w", err)
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, uid)
	if err != nil {
		// No settings yet: sensible blanks.
		return JobDefaults{QuoteValidityDays: 30}, nil
	}

	return JobDefaults{
		DefaultDayRate:    settings.DefaultDayRate,
		QuoteValidityDays: settings.QuoteValidityDays(),
	}, nil
}

// AssignInvoiceNumber gives the job the next sequential invoice number and
// stamps the invoice date, if it has neither yet.
func (s *jobService) AssignInvoiceNumber(ctx context.Context, userID, id string) (*model.Job, error) {
	uid, jid, err := parseOwnerAndID(userID, id)
	if err != nil {
		return nil, err
	}

	var job *model.Job
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		job, findErr = s.jobRepo.FindByID(txCtx, uid, jid)
		if findErr != nil {
			return fmt.Errorf("job not found: %w", findErr)
		}
		if job.InvoiceNumber != nil {
			return nil
		}

		next, numErr := s.jobRepo.NextInvoiceNumber(txCtx, uid)
		if numErr != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", numErr)
		}
		job.InvoiceNumber = &next
		if job.InvoiceDate == nil {
			now := time.Now()
			job.InvoiceDate = &now
		}
		return s.jobRepo.Update(txCtx, job)
	})
	if err != nil {
		return nil, err
	}

	s.notify("job.updated", job)
	return job, nil
}

// applyRequest replaces the job's form-backed fields and recomputes the
// persisted totals. Switching labour mode clears the other mode's fields.
func (s *jobService) applyRequest(ctx context.Context, job *model.Job, req JobRequest) error {
	job.Title = req.Title
	job.Description = req.Description
	job.Notes = req.Notes
	job.JobAddress = req.JobAddress

	if req.Status != "" {
		if !model.ValidStatus(req.Status) {
			return fmt.Errorf("unknown status %q", req.Status)
		}
		job.Status = req.Status
	}

	materials := costing.ParseAmount(req.MaterialsCost)
	labourDays := costing.ParseAmount(req.LabourDays)
	labourRate := costing.ParseAmount(req.LabourDayRate)
	labourFixed := costing.ParseAmount(req.LabourFixedCost)
	other := costing.ParseAmount(req.OtherCosts)

	mode := req.LabourMode
	if mode == "" {
		mode = model.LabourModeDays
	}

	breakdown := costing.ComputeBreakdown(costing.Input{
		MaterialsCost: &materials,
		LabourMode:    mode,
		LabourDays:    &labourDays,
		LabourDayRate: &labourRate,
		LabourFixed:   &labourFixed,
		OtherCosts:    &other,
		VATRegistered: s.vatRegistered(ctx, job.UserID),
	})

	job.MaterialsCost = nonZero(materials)
	job.MaterialsNotes = req.MaterialsNotes
	job.LabourMode = mode
	if mode == model.LabourModeDays {
		job.LabourDays = nonZero(labourDays)
		job.LabourDayRate = nonZero(labourRate)
	} else {
		job.LabourDays = nil
		job.LabourDayRate = nil
	}
	job.LabourCost = nonZero(breakdown.LabourTotal)
	job.OtherCosts = nonZero(other)
	job.OtherCostsNotes = req.OtherCostsNotes

	job.Subtotal = breakdown.Subtotal
	job.VATAmount = breakdown.VATAmount
	job.Total = breakdown.Total

	var err error
	if job.QuoteDate, err = parseDate(req.QuoteDate); err != nil {
		return fmt.Errorf("invalid quote_date: %w", err)
	}
	if job.QuoteValidUntil, err = parseDate(req.QuoteValidUntil); err != nil {
		return fmt.Errorf("invalid quote_valid_until: %w", err)
	}
	if job.StartDate, err = parseDate(req.StartDate); err != nil {
		return fmt.Errorf("invalid start_date: %w", err)
	}
	if job.EndDate, err = parseDate(req.EndDate); err != nil {
		return fmt.Errorf("invalid end_date: %w", err)
	}
	if job.InvoiceDate, err = parseDate(req.InvoiceDate); err != nil {
		return fmt.Errorf("invalid invoice_date: %w", err)
	}
	if job.PaidDate, err = parseDate(req.PaidDate); err != nil {
		return fmt.Errorf("invalid paid_date: %w", err)
	}

	// Auto-derive the validity date once per quote date change; an explicit
	// valid-until value is never overwritten.
	if job.QuoteDate != nil && job.QuoteValidUntil == nil {
		settings, _ := s.settingsRepo.GetByUserID(ctx, job.UserID)
		until := costing.ValidUntil(*job.QuoteDate, settings.QuoteValidityDays())
		job.QuoteValidUntil = &until
	}

	job.InvoiceNumber = req.InvoiceNumber
	job.PaymentReference = req.PaymentReference
	return nil
}

func (s *jobService) vatRegistered(ctx context.Context, userID uuid.UUID) bool {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false
	}
	return settings.VATRegistered
}

func (s *jobService) notify(event string, job *model.Job) {
	if s.hub != nil {
		s.hub.Notify(event, map[string]interface{}{
			"id":     job.ID.String(),
			"status": job.Status,
		})
	}
}

// --- Helpers ---

func nonZero(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	// Accept both the form's date-only value and a full timestamp.
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
