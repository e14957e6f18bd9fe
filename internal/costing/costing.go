// Package costing turns a job's raw cost inputs into its financial
// breakdown. Everything here is pure: no I/O, no clock, no store.
package costing

import (
	"strconv"
	"strings"
	"time"
)

// VATRate is the single flat rate applied when the business is VAT
// registered. No other tax regimes are supported.
const VATRate = 0.20

// Labour mode values, mirrored from model to keep this package dependency-free.
const (
	ModeDays  = "DAYS"
	ModeFixed = "FIXED"
)

// Input is the raw material for a breakdown. Nil pointers mean "not entered"
// and contribute zero.
type Input struct {
	MaterialsCost *float64
	LabourMode    string
	LabourDays    *float64
	LabourDayRate *float64
	LabourFixed   *float64
	OtherCosts    *float64
	VATRegistered bool
}

// Breakdown is the computed result. All fields are derived; Subtotal is the
// exact sum of the three totals, Total = Subtotal + VAT.
type Breakdown struct {
	MaterialsTotal float64
	LabourTotal    float64
	OtherTotal     float64
	Subtotal       float64
	VATAmount      float64
	Total          float64
}

// ParseAmount is the single lossy numeric-input primitive: any string that
// does not parse as a number becomes 0, never an error. Forgiving data entry
// is a deliberate policy; keeping it in one place makes it auditable.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func amount(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// ComputeBreakdown maps raw inputs to a breakdown. Missing inputs count as
// zero, negative inputs are not rejected (the caller is trusted), and the
// unused labour mode's fields are ignored entirely. Calling it twice with
// the same input yields the same output.
func ComputeBreakdown(in Input) Breakdown {
	var b Breakdown

	b.MaterialsTotal = amount(in.MaterialsCost)

	switch ResolveMode(in.LabourMode, in.LabourDays, in.LabourDayRate, in.LabourFixed) {
	case ModeFixed:
		b.LabourTotal = amount(in.LabourFixed)
	default:
		b.LabourTotal = amount(in.LabourDays) * amount(in.LabourDayRate)
	}

	b.OtherTotal = amount(in.OtherCosts)

	b.Subtotal = b.MaterialsTotal + b.LabourTotal + b.OtherTotal
	if in.VATRegistered {
		b.VATAmount = b.Subtotal * VATRate
	}
	b.Total = b.Subtotal + b.VATAmount
	return b
}

// ResolveMode normalizes a labour mode value. An explicit mode wins; when a
// record carries no mode (or an unknown one) the mode is inferred from which
// fields are populated, preferring DAYS when both sets are present.
func ResolveMode(mode string, days, rate, fixed *float64) string {
	switch mode {
	case ModeDays, ModeFixed:
		return mode
	}
	if days != nil && rate != nil {
		return ModeDays
	}
	if fixed != nil {
		return ModeFixed
	}
	return ModeDays
}

// ValidUntil derives a quote's expiry from its quote date and a validity
// window in days. Callers apply it only when no explicit valid-until value
// exists; it never overwrites one.
func ValidUntil(quoteDate time.Time, days int) time.Time {
	if days <= 0 {
		days = 30
	}
	return quoteDate.AddDate(0, 0, days)
}
