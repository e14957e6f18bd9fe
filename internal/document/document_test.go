package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"jobledger/internal/model"
)

func fp(v float64) *float64 { return &v }

func sampleJob() JobData {
	quoteDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return JobData{
		Title:          "Kitchen refit",
		Description:    "Strip out and refit the kitchen including new units and worktops.",
		Address:        "12 The Lane\nGreater Anywhere",
		MaterialsCost:  fp(1200),
		MaterialsNotes: "Units, worktops, fixings",
		LabourCost:     fp(900),
		LabourDays:     fp(6),
		LabourDayRate:  fp(150),
		OtherCosts:     fp(80),
		OtherNotes:     "Skip hire",
		Subtotal:       2180,
		VATAmount:      436,
		Total:          2616,
		QuoteDate:      &quoteDate,
	}
}

func sampleBiz() BusinessData {
	return BusinessData{
		Name:          "Smith Building Services",
		VATRegistered: true,
		VATNumber:     "GB123456789",
		BankDetails:   "Sort code 12-34-56\nAccount 12345678",
		ValidityDays:  30,
	}
}

func TestQuoteProducesPDF(t *testing.T) {
	data, err := Quote(sampleJob(), CustomerData{Name: "Jane Doe", Address: "4 High St\nTownsville"}, sampleBiz())
	if err != nil {
		t.Fatalf("compose quote: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}

func TestQuoteWithMinimalJob(t *testing.T) {
	// A draft with no costs, dates or settings still renders
	data, err := Quote(JobData{Title: "Fence repair"}, CustomerData{Name: "Jane Doe"}, BusinessData{})
	if err != nil {
		t.Fatalf("compose quote: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestInvoiceProducesPDF(t *testing.T) {
	job := sampleJob()
	n := 42
	invDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	job.InvoiceNumber = &n
	job.InvoiceDate = &invDate

	data, err := Invoice(job, CustomerData{Name: "Jane Doe", Address: "4 High St"}, sampleBiz())
	if err != nil {
		t.Fatalf("compose invoice: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}

func TestQuoteIgnoresBrokenLogo(t *testing.T) {
	biz := sampleBiz()
	biz.Logo = []byte("not an image")

	data, err := Quote(sampleJob(), CustomerData{Name: "Jane Doe"}, biz)
	if err != nil {
		t.Fatalf("compose quote with broken logo: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "£0.00"},
		{1234.5, "£1234.50"},
		{0.005, "£0.01"},
		{150, "£150.00"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDaysFormatting(t *testing.T) {
	if got := days(2); got != "2" {
		t.Errorf("days(2) = %q, want %q", got, "2")
	}
	if got := days(1.5); got != "1.5" {
		t.Errorf("days(1.5) = %q, want %q", got, "1.5")
	}
}

func TestSplitLinesVerbatim(t *testing.T) {
	lines := splitLinesVerbatim("line one\n\nline three")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (blank preserved)", len(lines))
	}
	if lines[1] != "" {
		t.Errorf("middle line = %q, want empty", lines[1])
	}
}

func TestFilename(t *testing.T) {
	jobID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	got := Filename("Quote", nil, jobID, "Jane Doe")
	want := "Quote-11111111-2222-3333-4444-555555555555-Jane Doe.pdf"
	if got != want {
		t.Errorf("Filename without number = %q, want %q", got, want)
	}

	n := 7
	got = Filename("Invoice", &n, jobID, "Jane Doe")
	if got != "Invoice-7-Jane Doe.pdf" {
		t.Errorf("Filename with number = %q", got)
	}
}

func TestFromJobExcludesInternalNotes(t *testing.T) {
	job := &model.Job{
		Title: "Bathroom",
		Notes: "internal only",
	}
	data := FromJob(job)
	if data.Title != "Bathroom" {
		t.Errorf("title = %q", data.Title)
	}
	// JobData carries no internal notes field at all; this just pins the
	// customer-visible fields that do flow through.
	if data.Description != "" || data.MaterialsNotes != "" {
		t.Errorf("unexpected populated fields: %+v", data)
	}
}

func TestFromSettingsValidityFallback(t *testing.T) {
	biz := FromSettings(&model.Settings{BusinessName: "Acme"}, nil)
	if biz.ValidityDays != 30 {
		t.Errorf("validity days = %d, want 30", biz.ValidityDays)
	}

	biz = FromSettings(&model.Settings{DefaultQuoteValidityDays: 14}, nil)
	if biz.ValidityDays != 14 {
		t.Errorf("validity days = %d, want 14", biz.ValidityDays)
	}
}
