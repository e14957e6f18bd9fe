package service

import (
	"context"
	"testing"
	"time"

	"jobledger/internal/model"
)

func TestCreateJobComputesTotalsWithVAT(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	if _, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{VATRegistered: true}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Kitchen refit",
		MaterialsCost: "100",
		LabourMode:    model.LabourModeDays,
		LabourDays:    "2",
		LabourDayRate: "150",
		OtherCosts:    "50",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if job.Subtotal != 450 {
		t.Errorf("subtotal = %v, want 450", job.Subtotal)
	}
	if job.VATAmount != 90 {
		t.Errorf("vat = %v, want 90", job.VATAmount)
	}
	if job.Total != 540 {
		t.Errorf("total = %v, want 540", job.Total)
	}
	if job.LabourCost == nil || *job.LabourCost != 300 {
		t.Errorf("labour cost = %v, want 300", job.LabourCost)
	}
	if job.Status != model.StatusDraft {
		t.Errorf("status = %q, want draft", job.Status)
	}
}

func TestCreateJobWithoutVATRegistration(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Fence repair",
		MaterialsCost: "200",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if job.VATAmount != 0 {
		t.Errorf("vat = %v, want 0 for unregistered business", job.VATAmount)
	}
	if job.Total != 200 {
		t.Errorf("total = %v, want 200", job.Total)
	}
}

func TestCreateJobUnparsableAmountsBecomeZero(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Patio",
		MaterialsCost: "about £300",
		OtherCosts:    "75",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	// Garbage input parses to zero, and zero amounts persist as null
	if job.MaterialsCost != nil {
		t.Errorf("materials cost = %v, want nil", *job.MaterialsCost)
	}
	if job.Subtotal != 75 {
		t.Errorf("subtotal = %v, want 75", job.Subtotal)
	}
}

func TestUpdateJobSwitchingToFixedClearsDaysFields(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:    customer.ID.String(),
		Title:         "Extension",
		LabourMode:    model.LabourModeDays,
		LabourDays:    "10",
		LabourDayRate: "200",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	updated, err := s.jobs.UpdateJob(ctx, uid, job.ID.String(), JobRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Extension",
		LabourMode:      model.LabourModeFixed,
		LabourFixedCost: "1800",
	})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}

	if updated.LabourMode != model.LabourModeFixed {
		t.Errorf("labour mode = %q, want FIXED", updated.LabourMode)
	}
	if updated.LabourDays != nil || updated.LabourDayRate != nil {
		t.Errorf("days fields not cleared: days=%v rate=%v", updated.LabourDays, updated.LabourDayRate)
	}
	if updated.LabourCost == nil || *updated.LabourCost != 1800 {
		t.Errorf("labour cost = %v, want 1800", updated.LabourCost)
	}
	if updated.Subtotal != 1800 {
		t.Errorf("subtotal = %v, want 1800", updated.Subtotal)
	}
}

func TestSaveDerivesValidUntilFromSettings(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	if _, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{DefaultQuoteValidityDays: 14}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID: customer.ID.String(),
		Title:      "Roof repair",
		QuoteDate:  "2025-03-01",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if job.QuoteValidUntil == nil {
		t.Fatal("quote valid until not derived")
	}
	want := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !job.QuoteValidUntil.Equal(want) {
		t.Errorf("valid until = %v, want %v", job.QuoteValidUntil, want)
	}
}

func TestSaveKeepsExplicitValidUntil(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID:      customer.ID.String(),
		Title:           "Roof repair",
		QuoteDate:       "2025-03-01",
		QuoteValidUntil: "2025-03-08",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	want := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	if job.QuoteValidUntil == nil || !job.QuoteValidUntil.Equal(want) {
		t.Errorf("valid until = %v, want explicit %v", job.QuoteValidUntil, want)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, uid, JobRequest{
		CustomerID: customer.ID.String(),
		Title:      "Driveway",
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := s.jobs.UpdateStatus(ctx, uid, job.ID.String(), "archived"); err == nil {
		t.Error("expected error for unknown status")
	}

	updated, err := s.jobs.UpdateStatus(ctx, uid, job.ID.String(), model.StatusAccepted)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.StatusAccepted {
		t.Errorf("status = %q, want accepted", updated.Status)
	}
}

func TestAssignInvoiceNumberIsSequentialAndIdempotent(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	customer := seedCustomer(t, s, uid, "Jane Doe")

	first, err := s.jobs.CreateJob(ctx, uid, JobRequest{CustomerID: customer.ID.String(), Title: "Job one"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	second, err := s.jobs.CreateJob(ctx, uid, JobRequest{CustomerID: customer.ID.String(), Title: "Job two"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	first, err = s.jobs.AssignInvoiceNumber(ctx, uid, first.ID.String())
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if first.InvoiceNumber == nil || *first.InvoiceNumber != 1 {
		t.Fatalf("first invoice number = %v, want 1", first.InvoiceNumber)
	}
	if first.InvoiceDate == nil {
		t.Error("invoice date not stamped")
	}

	second, err = s.jobs.AssignInvoiceNumber(ctx, uid, second.ID.String())
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if second.InvoiceNumber == nil || *second.InvoiceNumber != 2 {
		t.Fatalf("second invoice number = %v, want 2", second.InvoiceNumber)
	}

	// Reassignment keeps the existing number
	again, err := s.jobs.AssignInvoiceNumber(ctx, uid, first.ID.String())
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if again.InvoiceNumber == nil || *again.InvoiceNumber != 1 {
		t.Errorf("invoice number changed on reassign: %v", again.InvoiceNumber)
	}
}

func TestListJobsFiltersByStatusAndCustomer(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()
	jane := seedCustomer(t, s, uid, "Jane Doe")
	bob := seedCustomer(t, s, uid, "Bob Brown")

	if _, err := s.jobs.CreateJob(ctx, uid, JobRequest{CustomerID: jane.ID.String(), Title: "Kitchen", Status: model.StatusQuoted}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := s.jobs.CreateJob(ctx, uid, JobRequest{CustomerID: bob.ID.String(), Title: "Bathroom"}); err != nil {
		t.Fatalf("create job: %v", err)
	}

	jobs, total, err := s.jobs.ListJobs(ctx, uid, JobFilter{Status: model.StatusQuoted})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(jobs) != 1 || jobs[0].Title != "Kitchen" {
		t.Errorf("status filter: total=%d jobs=%v", total, jobs)
	}

	jobs, total, err = s.jobs.ListJobs(ctx, uid, JobFilter{CustomerID: bob.ID.String()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(jobs) != 1 || jobs[0].Title != "Bathroom" {
		t.Errorf("customer filter: total=%d jobs=%v", total, jobs)
	}

	if _, _, err := s.jobs.ListJobs(ctx, uid, JobFilter{Status: "archived"}); err == nil {
		t.Error("expected error for unknown status filter")
	}
}

func TestJobsAreScopedToOwner(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	owner := seedUser(t, s.db, "owner@example.com")
	other := seedUser(t, s.db, "other@example.com")
	customer := seedCustomer(t, s, owner.ID.String(), "Jane Doe")

	job, err := s.jobs.CreateJob(ctx, owner.ID.String(), JobRequest{CustomerID: customer.ID.String(), Title: "Garage"})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	if _, err := s.jobs.GetJob(ctx, other.ID.String(), job.ID.String()); err == nil {
		t.Error("expected not found for another user's job")
	}
	if err := s.jobs.DeleteJob(ctx, other.ID.String(), job.ID.String()); err == nil {
		t.Error("expected not found deleting another user's job")
	}
}

func TestDefaultsWithAndWithoutSettings(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	defaults, err := s.jobs.Defaults(ctx, uid)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if defaults.QuoteValidityDays != 30 || defaults.DefaultDayRate != nil {
		t.Errorf("defaults without settings = %+v", defaults)
	}

	if _, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{
		DefaultDayRate:           "250",
		DefaultQuoteValidityDays: 14,
	}); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	defaults, err = s.jobs.Defaults(ctx, uid)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if defaults.QuoteValidityDays != 14 {
		t.Errorf("validity days = %d, want 14", defaults.QuoteValidityDays)
	}
	if defaults.DefaultDayRate == nil || *defaults.DefaultDayRate != 250 {
		t.Errorf("day rate = %v, want 250", defaults.DefaultDayRate)
	}
}
