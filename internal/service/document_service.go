package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"jobledger/internal/costing"
	"jobledger/internal/document"
	"jobledger/internal/model"
	"jobledger/internal/repository"
	ws "jobledger/internal/websocket"

	"github.com/google/uuid"
)

// Document is a composed, downloadable artifact.
type Document struct {
	Filename string
	Data     []byte
}

// DocumentService generates quote and invoice PDFs for a job. Quote
// generation mutates the job first (dates, status) and composes from the
// fresh snapshot; invoice generation reads the job exactly as stored.
type DocumentService interface {
	GenerateQuote(ctx context.Context, userID, jobID string) (*Document, error)
	GenerateInvoice(ctx context.Context, userID, jobID string) (*Document, error)
}

type documentService struct {
	jobRepo      repository.JobRepository
	settingsRepo repository.SettingsRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
	logoPath     string
	httpClient   *http.Client
}

func NewDocumentService(
	jobRepo repository.JobRepository,
	settingsRepo repository.SettingsRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
	logoPath string,
) DocumentService {
	return &documentService{
		jobRepo:      jobRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		hub:          hub,
		logoPath:     logoPath,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *documentService) GenerateQuote(ctx context.Context, userID, jobID string) (*Document, error) {
	uid, jid, err := parseOwnerAndID(userID, jobID)
	if err != nil {
		return nil, err
	}

	settings := s.settings(ctx, userID)

	// Stamp quote dates and advance the status before composing, so the
	// document reflects the just-assigned values.
	var job *model.Job
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		job, findErr = s.jobRepo.FindByIDWithCustomer(txCtx, uid, jid)
		if findErr != nil {
			return fmt.Errorf("job not found: %w", findErr)
		}

		firstQuote := job.Status == model.StatusDraft || job.Status == model.StatusQuoting
		if job.QuoteDate == nil || firstQuote {
			if job.QuoteDate == nil {
				now := time.Now()
				job.QuoteDate = &now
			}
			until := costing.ValidUntil(*job.QuoteDate, settings.QuoteValidityDays())
			job.QuoteValidUntil = &until
			if firstQuote {
				job.Status = model.StatusQuoted
			}
			if updateErr := s.jobRepo.Update(txCtx, job); updateErr != nil {
				return fmt.Errorf("failed to update job: %w", updateErr)
			}
			if s.hub != nil {
				s.hub.Notify("job.status_changed", map[string]interface{}{
					"id":     job.ID.String(),
					"status": job.Status,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if job.Customer == nil {
		return nil, fmt.Errorf("job has no customer")
	}

	data, err := document.Quote(
		document.FromJob(job),
		document.FromCustomer(job.Customer),
		document.FromSettings(settings, s.loadLogo(ctx, settings)),
	)
	if err != nil {
		return nil, fmt.Errorf("quote generation failed: %w", err)
	}

	return &Document{
		Filename: document.Filename("Quote", job.InvoiceNumber, job.ID, job.Customer.Name),
		Data:     data,
	}, nil
}

func (s *documentService) GenerateInvoice(ctx context.Context, userID, jobID string) (*Document, error) {
	uid, jid, err := parseOwnerAndID(userID, jobID)
	if err != nil {
		return nil, err
	}

	job, err := s.jobRepo.FindByIDWithCustomer(ctx, uid, jid)
	if err != nil {
		return nil, fmt.Errorf("job not found: %w", err)
	}
	if job.Customer == nil {
		return nil, fmt.Errorf("job has no customer")
	}

	settings := s.settings(ctx, userID)

	data, err := document.Invoice(
		document.FromJob(job),
		document.FromCustomer(job.Customer),
		document.FromSettings(settings, s.loadLogo(ctx, settings)),
	)
	if err != nil {
		return nil, fmt.Errorf("invoice generation failed: %w", err)
	}

	return &Document{
		Filename: document.Filename("Invoice", job.InvoiceNumber, job.ID, job.Customer.Name),
		Data:     data,
	}, nil
}

// settings fetches the user's settings, falling back to a blank record so a
// document can still be generated before setup is complete.
func (s *documentService) settings(ctx context.Context, userID string) *model.Settings {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return &model.Settings{DefaultQuoteValidityDays: 30}
	}
	settings, err := s.settingsRepo.GetByUserID(ctx, uid)
	if err != nil {
		return &model.Settings{UserID: uid, DefaultQuoteValidityDays: 30}
	}
	return settings
}

// loadLogo fetches the business logo. The settings' logo URL wins over the
// configured asset path; any failure is logged and yields nil, which the
// composer turns into the text fallback. Never fatal.
func (s *documentService) loadLogo(ctx context.Context, settings *model.Settings) []byte {
	path := settings.LogoURL
	if path == "" {
		path = s.logoPath
	}
	if path == "" {
		return nil
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			log.Printf("document: logo request failed: %v", err)
			return nil
		}
		resp, err := s.httpClient.Do(req)
		if err != nil {
			log.Printf("document: logo fetch failed: %v", err)
			return nil
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Printf("document: logo fetch returned %s", resp.Status)
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Printf("document: logo read failed: %v", err)
			return nil
		}
		return data
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("document: logo read failed: %v", err)
		return nil
	}
	return data
}
