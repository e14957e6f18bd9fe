// Package document composes quote and invoice PDFs from a job, its customer,
// and the business settings. The layout is a single fixed A4 page in
// millimeter coordinates, shared between both document kinds so they stay
// visually consistent.
package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobledger/internal/model"
)

// dateFormat is the UK-style display format used on both document kinds.
const dateFormat = "02/01/2006"

// JobData is the slice of a job the composer renders. Internal notes are
// deliberately absent: they never reach a customer-facing document.
type JobData struct {
	Title          string
	Description    string
	Address        string
	MaterialsCost  *float64
	MaterialsNotes string
	LabourCost     *float64
	LabourDays     *float64
	LabourDayRate  *float64
	OtherCosts     *float64
	OtherNotes     string
	Subtotal       float64
	VATAmount      float64
	Total          float64
	QuoteDate      *time.Time
	InvoiceDate    *time.Time
	InvoiceNumber  *int
}

// CustomerData identifies the document recipient. Address is rendered one
// line per newline, blanks preserved.
type CustomerData struct {
	Name    string
	Address string
}

// BusinessData carries the branding and financial identity of the business.
// Logo holds the raw image bytes; nil (or an undecodable image) falls back
// to the business name drawn over the header band.
type BusinessData struct {
	Name          string
	VATRegistered bool
	VATNumber     string
	BankDetails   string
	ValidityDays  int
	Logo          []byte
}

// FromJob maps a stored job to its document view.
func FromJob(j *model.Job) JobData {
	return JobData{
		Title:          j.Title,
		Description:    j.Description,
		Address:        j.JobAddress,
		MaterialsCost:  j.MaterialsCost,
		MaterialsNotes: j.MaterialsNotes,
		LabourCost:     j.LabourCost,
		LabourDays:     j.LabourDays,
		LabourDayRate:  j.LabourDayRate,
		OtherCosts:     j.OtherCosts,
		OtherNotes:     j.OtherCostsNotes,
		Subtotal:       j.Subtotal,
		VATAmount:      j.VATAmount,
		Total:          j.Total,
		QuoteDate:      j.QuoteDate,
		InvoiceDate:    j.InvoiceDate,
		InvoiceNumber:  j.InvoiceNumber,
	}
}

// FromCustomer maps a stored customer to its document view.
func FromCustomer(c *model.Customer) CustomerData {
	return CustomerData{Name: c.Name, Address: c.Address}
}

// FromSettings maps the settings record to the business view. The logo is
// attached separately by the caller, which owns fetching it.
func FromSettings(s *model.Settings, logo []byte) BusinessData {
	return BusinessData{
		Name:          s.BusinessName,
		VATRegistered: s.VATRegistered,
		VATNumber:     s.VATNumber,
		BankDetails:   s.BankDetails,
		ValidityDays:  s.QuoteValidityDays(),
		Logo:          logo,
	}
}

// Filename builds the download name for a generated document: the kind, the
// invoice number (or the job id when none exists), and the customer name.
func Filename(kind string, invoiceNumber *int, jobID uuid.UUID, customerName string) string {
	ref := jobID.String()
	if invoiceNumber != nil {
		ref = fmt.Sprintf("%d", *invoiceNumber)
	}
	return fmt.Sprintf("%s-%s-%s.pdf", kind, ref, customerName)
}
