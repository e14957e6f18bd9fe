package service

import (
	"context"
	"fmt"

	"jobledger/internal/costing"
	"jobledger/internal/model"
	"jobledger/internal/repository"

	"github.com/google/uuid"
)

// SettingsRequest replaces the whole settings record on each save, the same
// full-replace policy the job form uses.
type SettingsRequest struct {
	BusinessName string `json:"business_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address"`
	LogoURL      string `json:"logo_url"`

	DefaultDayRate string `json:"default_day_rate"`
	VATRegistered  bool   `json:"vat_registered"`
	VATNumber      string `json:"vat_number"`
	BankDetails    string `json:"bank_details"`

	QuoteMessageTemplate   string `json:"quote_message_template"`
	InvoiceMessageTemplate string `json:"invoice_message_template"`

	DefaultQuoteValidityDays int `json:"default_quote_validity_days"`
}

type SettingsService interface {
	GetSettings(ctx context.Context, userID string) (*model.Settings, error)
	SaveSettings(ctx context.Context, userID string, req SettingsRequest) (*model.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// GetSettings returns the user's settings, or a fresh default record when
// none has been saved yet.
func (s *settingsService) GetSettings(ctx context.Context, userID string) (*model.Settings, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	settings, err := s.repo.GetByUserID(ctx, uid)
	if err != nil {
		return &model.Settings{UserID: uid, DefaultQuoteValidityDays: 30}, nil
	}
	return settings, nil
}

func (s *settingsService) SaveSettings(ctx context.Context, userID string, req SettingsRequest) (*model.Settings, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	validity := req.DefaultQuoteValidityDays
	if validity <= 0 {
		validity = 30
	}

	settings := &model.Settings{
		UserID:                   uid,
		BusinessName:             req.BusinessName,
		ContactName:              req.ContactName,
		Phone:                    req.Phone,
		Email:                    req.Email,
		Address:                  req.Address,
		LogoURL:                  req.LogoURL,
		DefaultDayRate:           nonZero(costing.ParseAmount(req.DefaultDayRate)),
		VATRegistered:            req.VATRegistered,
		VATNumber:                req.VATNumber,
		BankDetails:              req.BankDetails,
		QuoteMessageTemplate:     req.QuoteMessageTemplate,
		InvoiceMessageTemplate:   req.InvoiceMessageTemplate,
		DefaultQuoteValidityDays: validity,
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
