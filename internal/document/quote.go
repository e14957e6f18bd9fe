package document

import "fmt"

// Quote composes the quotation document. Quotes carry the per-line cost
// notes and the optional Location block; the labour row shows its days/rate
// derivation when both are present.
func Quote(job JobData, customer CustomerData, biz BusinessData) ([]byte, error) {
	p := newPage()
	p.header(biz)

	// Title
	p.y += 15
	p.font("B", 24)
	p.textCenter("QUOTATION")

	// Customer block
	p.y += 15
	p.font("B", 12)
	p.text(marginLeft, "Customer:")
	p.font("", 12)
	p.y += 7
	p.text(marginLeft, customer.Name)
	if customer.Address != "" {
		p.addressLines(customer.Address, 5)
	}

	// Job block
	p.y += 10
	p.font("B", 12)
	p.text(marginLeft, "Job:")
	p.font("", 12)
	p.y += 7
	p.text(marginLeft, job.Title)

	if job.Description != "" {
		p.y += 7
		p.wrapped(job.Description, marginLeft, wrapWidth, 5)
	}

	if job.Address != "" {
		p.y += 7
		p.font("B", 12)
		p.text(marginLeft, "Location:")
		p.font("", 12)
		p.y += 5
		p.addressLines(job.Address, 5)
	}

	p.y += 10
	if job.QuoteDate != nil {
		p.text(marginLeft, "Quote Date: "+job.QuoteDate.Format(dateFormat))
		p.y += 5
	}

	// Cost breakdown
	p.y += 10
	p.font("B", 14)
	p.text(marginLeft, "Cost Breakdown")
	p.y += 10
	p.font("", 10)
	p.tableHeader()

	if positive(job.MaterialsCost) {
		p.text(itemCol, "Materials")
		p.textRight(amountCol, money(*job.MaterialsCost))
		p.y += 6
		if job.MaterialsNotes != "" {
			p.mutedNote(job.MaterialsNotes)
		}
	}

	if positive(job.LabourCost) {
		p.y += 3
		p.text(itemCol, "Labour")
		p.textRight(amountCol, money(*job.LabourCost))
		p.y += 6
		if job.LabourDays != nil && job.LabourDayRate != nil {
			p.font("", 8)
			p.pdf.SetTextColor(100, 100, 100)
			p.pdf.Text(notesIndent, p.y, p.tr(fmt.Sprintf("%s days @ %s/day", days(*job.LabourDays), money(*job.LabourDayRate))))
			p.y += 4
			p.font("", 10)
			p.pdf.SetTextColor(0, 0, 0)
		}
	}

	if positive(job.OtherCosts) {
		p.y += 3
		p.text(itemCol, "Other Costs")
		p.textRight(amountCol, money(*job.OtherCosts))
		p.y += 6
		if job.OtherNotes != "" {
			p.mutedNote(job.OtherNotes)
		}
	}

	// Totals
	p.y += 5
	p.rule()
	p.y += 8
	p.font("B", 10)
	p.text(itemCol, "Subtotal:")
	p.textRight(amountCol, money(job.Subtotal))

	if job.VATAmount > 0 {
		p.y += 7
		p.font("", 10)
		p.text(itemCol, "VAT (20%):")
		p.textRight(amountCol, money(job.VATAmount))
	}

	p.y += 10
	p.pdf.SetFillColor(240, 240, 240)
	p.pdf.Rect(tableLeft, p.y-5, tableWidth, 10, "F")
	p.font("B", 12)
	p.text(itemCol, "TOTAL:")
	p.textRight(amountCol, money(job.Total))

	// Trailer
	if biz.VATRegistered && biz.VATNumber != "" {
		p.y += 15
		p.font("", 8)
		p.text(marginLeft, "VAT Registration Number: "+biz.VATNumber)
	}

	p.y += 10
	p.font("I", 9)
	if job.QuoteDate != nil {
		validity := biz.ValidityDays
		if validity <= 0 {
			validity = 30
		}
		p.text(marginLeft, fmt.Sprintf("Valid for %d days from %s", validity, job.QuoteDate.Format(dateFormat)))
		p.y += 5
	}
	p.text(marginLeft, "Payment terms and conditions apply upon acceptance.")

	return p.output()
}
