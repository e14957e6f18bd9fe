package document

import "fmt"

// Invoice composes the invoice document. Unlike quotes, invoices omit the
// per-line notes and the Location block, and close with the payment details
// instead of a validity footer. Those asymmetries are intentional.
func Invoice(job JobData, customer CustomerData, biz BusinessData) ([]byte, error) {
	p := newPage()
	p.header(biz)

	// Title
	p.y += 15
	p.font("B", 24)
	p.textCenter("INVOICE")

	p.y += 10
	p.font("B", 12)
	if job.InvoiceNumber != nil {
		p.textCenter(fmt.Sprintf("Invoice #%d", *job.InvoiceNumber))
	}

	// Customer block
	p.y += 15
	p.font("B", 12)
	p.text(marginLeft, "Bill To:")
	p.font("", 12)
	p.y += 7
	p.text(marginLeft, customer.Name)
	if customer.Address != "" {
		p.addressLines(customer.Address, 5)
	}

	// Job block
	p.y += 10
	if job.InvoiceDate != nil {
		p.text(marginLeft, "Invoice Date: "+job.InvoiceDate.Format(dateFormat))
		p.y += 6
	}

	p.font("B", 12)
	p.text(marginLeft, "For:")
	p.font("", 12)
	p.y += 6
	p.text(marginLeft, job.Title)

	if job.Description != "" {
		p.y += 6
		p.wrapped(job.Description, marginLeft, wrapWidth, 5)
	}

	// Cost breakdown
	p.y += 15
	p.font("B", 14)
	p.text(marginLeft, "Invoice Details")
	p.y += 10
	p.font("", 10)
	p.tableHeader()

	if positive(job.MaterialsCost) {
		p.text(itemCol, "Materials")
		p.textRight(amountCol, money(*job.MaterialsCost))
		p.y += 7
	}

	if positive(job.LabourCost) {
		p.text(itemCol, "Labour")
		p.textRight(amountCol, money(*job.LabourCost))
		p.y += 7
	}

	if positive(job.OtherCosts) {
		p.text(itemCol, "Other Costs")
		p.textRight(amountCol, money(*job.OtherCosts))
		p.y += 7
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
	p.font("B", 14)
	p.text(itemCol, "TOTAL DUE:")
	p.textRight(amountCol, money(job.Total))

	// Payment details
	p.y += 20
	p.font("B", 12)
	p.text(marginLeft, "Payment Details")
	p.y += 8

	p.font("", 10)
	if biz.BankDetails != "" {
		for _, line := range splitLinesVerbatim(biz.BankDetails) {
			p.text(marginLeft, line)
			p.y += 5
		}
	}

	if biz.VATRegistered && biz.VATNumber != "" {
		p.y += 10
		p.font("", 8)
		p.text(marginLeft, "VAT Registration Number: "+biz.VATNumber)
	}

	p.y += 10
	p.font("I", 9)
	p.text(marginLeft, "Thank you for your business!")

	return p.output()
}
