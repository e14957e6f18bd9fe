package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Settings is the single business-level configuration record, one per user.
// BankDetails and Address are free text; documents split them on newlines.
type Settings struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	// Business details
	BusinessName string `gorm:"type:varchar(255)" json:"business_name"`
	ContactName  string `gorm:"type:varchar(255)" json:"contact_name"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Email        string `gorm:"type:varchar(255)" json:"email"`
	Address      string `gorm:"type:text" json:"address"`
	LogoURL      string `gorm:"type:varchar(500)" json:"logo_url"`

	// Financial
	DefaultDayRate *float64 `json:"default_day_rate"`
	VATRegistered  bool     `gorm:"not null;default:false" json:"vat_registered"`
	VATNumber      string   `gorm:"type:varchar(50)" json:"vat_number"`
	BankDetails    string   `gorm:"type:text" json:"bank_details"`

	// Message templates with placeholder variables
	QuoteMessageTemplate   string `gorm:"type:text" json:"quote_message_template"`
	InvoiceMessageTemplate string `gorm:"type:text" json:"invoice_message_template"`

	// Quote settings
	DefaultQuoteValidityDays int `gorm:"not null;default:30" json:"default_quote_validity_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// QuoteValidityDays returns the configured validity window, defaulting to 30.
func (s *Settings) QuoteValidityDays() int {
	if s == nil || s.DefaultQuoteValidityDays <= 0 {
		return 30
	}
	return s.DefaultQuoteValidityDays
}
