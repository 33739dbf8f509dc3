// Package pricing computes itemized price quotes for bookable services.
//
// All monetary amounts are integer minor currency units (cents). The
// breakdown is deterministic: identical inputs always produce identical
// line items, in the same order, with identical amounts. Totals returned
// here are charged verbatim, so every stage rounds to whole cents before
// the next stage reads it.
package pricing

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// WeekendSurchargeRate is applied to the rounded base amount only,
	// never to other surcharges.
	WeekendSurchargeRate = 0.15

	// SameDayRushFeeCents is a flat fee, independent of hours and rate.
	SameDayRushFeeCents int64 = 2500
)

// ServiceRate carries a service's billing terms. It is a value type built
// by the catalog boundary; the engine never mutates or persists it.
type ServiceRate struct {
	Name          string
	BaseRateCents int64
	MinHours      float64
}

// LineItem is one labeled charge contributing to a quote total.
type LineItem struct {
	Label       string `json:"label"`
	AmountCents int64  `json:"amount_cents"`
}

// Breakdown is an ordered, itemized quote. Items are emitted in display
// order: base first, then surcharges, then fees.
type Breakdown struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
}

// Calculate produces the quote for a service at the requested duration.
//
// Inputs are assumed well formed (positive hours, non-negative rate);
// boundary validation is the caller's job. The billable-hours floor is
// applied first: charging below the posted minimum is never permitted.
func Calculate(rate ServiceRate, requestedHours float64, weekend, sameDay bool) Breakdown {
	effectiveHours := math.Max(requestedHours, rate.MinHours)

	baseCents := roundCents(effectiveHours * float64(rate.BaseRateCents))
	items := []LineItem{{
		Label:       baseLabel(rate, effectiveHours),
		AmountCents: baseCents,
	}}
	total := baseCents

	if weekend {
		surcharge := roundCents(float64(baseCents) * WeekendSurchargeRate)
		items = append(items, LineItem{Label: "Weekend Surcharge (15%)", AmountCents: surcharge})
		total += surcharge
	}

	if sameDay {
		items = append(items, LineItem{Label: "Same Day Rush Fee", AmountCents: SameDayRushFeeCents})
		total += SameDayRushFeeCents
	}

	return Breakdown{Items: items, TotalCents: total}
}

func baseLabel(rate ServiceRate, hours float64) string {
	return fmt.Sprintf("%s (%sh @ $%.2f/hr)",
		rate.Name,
		strconv.FormatFloat(hours, 'f', -1, 64),
		float64(rate.BaseRateCents)/100,
	)
}

// roundCents rounds half-up to the nearest whole cent.
func roundCents(raw float64) int64 {
	return int64(math.Floor(raw + 0.5))
}
