package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus enum constants. Ordered by convention only — the business moves
// a job to any status manually; the single automatic transition is
// draft/quoting -> quoted on first quote generation.
const (
	StatusDraft      = "draft"
	StatusQuoting    = "quoting"
	StatusQuoted     = "quoted"
	StatusAccepted   = "accepted"
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
	StatusInvoiced   = "invoiced"
	StatusPaid       = "paid"
)

// LabourMode enum constants
const (
	LabourModeDays  = "DAYS"  // labour_days x labour_day_rate
	LabourModeFixed = "FIXED" // single flat amount
)

// JobStatuses lists every valid status value.
var JobStatuses = []string{
	StatusDraft, StatusQuoting, StatusQuoted, StatusAccepted,
	StatusInProgress, StatusComplete, StatusInvoiced, StatusPaid,
}

// ValidStatus reports whether s is a known job status.
func ValidStatus(s string) bool {
	for _, v := range JobStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Job is a unit of work for a customer, carrying cost inputs, dates, and a
// status. The computed money fields (LabourCost, Subtotal, VATAmount, Total)
// are persisted as of the last save, never recomputed on read.
type Job struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"` // customer-visible
	Notes       string `gorm:"type:text" json:"notes"`       // internal, never rendered
	JobAddress  string `gorm:"type:text" json:"job_address"`
	Status      string `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`

	// Materials
	MaterialsCost  *float64 `json:"materials_cost"`
	MaterialsNotes string   `gorm:"type:text" json:"materials_notes"`

	// Labour. LabourMode is persisted explicitly; exactly one mode's input
	// fields are populated at any time (the editor clears the other on save).
	LabourMode    string   `gorm:"type:varchar(10);not null;default:'DAYS'" json:"labour_mode"`
	LabourDays    *float64 `json:"labour_days"`
	LabourDayRate *float64 `json:"labour_day_rate"`
	LabourCost    *float64 `json:"labour_cost"` // resolved amount regardless of mode

	// Other
	OtherCosts      *float64 `json:"other_costs"`
	OtherCostsNotes string   `gorm:"type:text" json:"other_costs_notes"`

	// Persisted totals
	Subtotal  float64 `gorm:"not null;default:0" json:"subtotal"`
	VATAmount float64 `gorm:"not null;default:0" json:"vat_amount"`
	Total     float64 `gorm:"not null;default:0" json:"total"`

	// Dates — all optional, independently settable
	QuoteDate       *time.Time `json:"quote_date"`
	QuoteValidUntil *time.Time `json:"quote_valid_until"`
	StartDate       *time.Time `gorm:"type:date" json:"start_date"`
	EndDate         *time.Time `gorm:"type:date" json:"end_date"`
	InvoiceDate     *time.Time `gorm:"type:date" json:"invoice_date"`
	PaidDate        *time.Time `gorm:"type:date" json:"paid_date"`

	// Invoice identity
	InvoiceNumber    *int   `json:"invoice_number"`
	PaymentReference string `gorm:"type:varchar(100)" json:"payment_reference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
