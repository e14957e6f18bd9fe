package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"jobledger/internal/model"
)

func TestGenerateQuoteStampsDraftJob(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	if _, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{
		BusinessName:             "Smith Building Services",
		DefaultQuoteValidityDays: 14,
	}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Kitchen refit",
		MaterialsCost: "1200",
		LabourMode:    model.LabourModeDays,
		LabourDays:    "6",
		LabourDayRate: "150",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	doc, err := s.docs.GenerateQuote(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("generate quote: %v", err)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
	if !strings.HasPrefix(doc.Filename, "Quote-") || !strings.HasSuffix(doc.Filename, "-Jane Doe.pdf") {
		t.Errorf("filename = %q", doc.Filename)
	}

	stamped, err := s.jobs.GetJob(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if stamped.Status != model.StatusQuoted {
		t.Errorf("status = %q, want quoted", stamped.Status)
	}
	if stamped.QuoteDate == nil {
		t.Fatal("quote date not stamped")
	}
	if stamped.QuoteValidUntil == nil {
		t.Fatal("valid until not stamped")
	}
	wantUntil := stamped.QuoteDate.AddDate(0, 0, 14)
	if !stamped.QuoteValidUntil.Equal(wantUntil) {
		t.Errorf("valid until = %v, want %v", stamped.QuoteValidUntil, wantUntil)
	}
}

func TestGenerateQuoteLeavesAcceptedJobUntouched(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Extension",
		Status:          model.StatusAccepted,
		QuoteDate:       "2025-01-10",
		QuoteValidUntil: "2025-02-09",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := s.docs.GenerateQuote(ctx, uid, job.ID.String()); err != nil {
		t.Fatalf("generate quote: %v", err)
	}

	reloaded, err := s.jobs.GetJob(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if reloaded.Status != model.StatusAccepted {
		t.Errorf("status changed to %q", reloaded.Status)
	}
	wantDate := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	if reloaded.QuoteDate == nil || !reloaded.QuoteDate.Equal(wantDate) {
		t.Errorf("quote date = %v, want %v", reloaded.QuoteDate, wantDate)
	}
	wantUntil := time.Date(2025, 2, 9, 0, 0, 0, 0, time.UTC)
	if reloaded.QuoteValidUntil == nil || !reloaded.QuoteValidUntil.Equal(wantUntil) {
		t.Errorf("valid until = %v, want %v", reloaded.QuoteValidUntil, wantUntil)
	}
}

func TestGenerateQuoteAdvancesQuotingStatus(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID: customer.ID.String(),
		Title:      "Garage conversion",
		Status:     model.StatusQuoting,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := s.docs.GenerateQuote(ctx, uid, job.ID.String()); err != nil {
		t.Fatalf("generate quote: %v", err)
	}

	reloaded, err := s.jobs.GetJob(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	if reloaded.Status != model.StatusQuoted {
		t.Errorf("status = %q, want quoted", reloaded.Status)
	}
}

func TestGenerateInvoiceHasNoSideEffects(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Kitchen refit",
		MaterialsCost: "1200",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	job, err = s.jobs.AssignInvoiceNumber(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("assign invoice number: %v", err)
	}

	doc, err := s.docs.GenerateInvoice(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("generate invoice: %v", err)
	}
	if doc.Filename != "Invoice-1-Jane Doe.pdf" {
		t.Errorf("filename = %q", doc.Filename)
	}

	reloaded, err := s.jobs.GetJob(ctx, uid, job.ID.String())
	if err != nil {
		t.Fatalf("reload job: %v", err)
	}
	// Invoicing a draft does not touch status or quote dates
	if reloaded.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", reloaded.Status)
	}
	if reloaded.QuoteDate != nil {
		t.Errorf("quote date stamped by invoice generation: %v", reloaded.QuoteDate)
	}
}

func TestGenerateQuoteForUnknownJob(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")

	if _, err := s.docs.GenerateQuote(ctx, user.ID.String(), "8b9e7a50-0000-0000-0000-000000000000"); err == nil {
		t.Error("expected error for missing job")
	}
}
