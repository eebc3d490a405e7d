// Package gift computes Taiwan gift tax and the "change of policyholder"
// planning summary: changing a policy's holder is treated as gifting that
// year's cash value. Amounts are in NTD.
package gift

import "math"

// ExemptYearly is the annual gift tax exemption.
const ExemptYearly = 2_440_000

// Bracket is one progressive gift tax band over the net gift amount.
type Bracket struct {
	Upper float64
	Rate  float64
}

// Brackets are the 10%/15%/20% bands over the net gift amount.
var Brackets = []Bracket{
	{Upper: 28_110_000, Rate: 0.10},
	{Upper: 56_210_000, Rate: 0.15},
	{Upper: math.Inf(1), Rate: 0.20},
}

// Tax computes the gift tax due on a net gift amount.
func Tax(netAmount int64) int64 {
	if netAmount <= 0 {
		return 0
	}
	tax := 0.0
	previous := 0.0
	for _, bracket := range Brackets {
		if float64(netAmount) > previous {
			taxedHere := math.Min(float64(netAmount), bracket.Upper) - previous
			tax += taxedHere * bracket.Rate
			previous = bracket.Upper
		}
	}
	return int64(math.Round(tax))
}

// PlanSummary is the policyholder-change gift estimate.
type PlanSummary struct {
	ChangeYear       int   `json:"change_year"`
	GiftAmount       int64 `json:"gift_amount"`        // that year's cash value
	NetAmount        int64 `json:"net_amount"`         // gift minus yearly exemption
	GiftTax          int64 `json:"gift_tax"`
	TotalPremiumPaid int64 `json:"total_premium_paid"` // premiums paid up to the change
}

// SummarizePlan estimates the gift tax of changing the policyholder in the
// given year. cashValues maps policy year (1-based) to year-end cash value;
// a missing year gifts nothing.
func SummarizePlan(annualPremium int64, changeYear int, cashValues map[int]int64) PlanSummary {
	giftAmount := cashValues[changeYear]

	net := giftAmount - ExemptYearly
	if net < 0 {
		net = 0
	}

	return PlanSummary{
		ChangeYear:       changeYear,
		GiftAmount:       giftAmount,
		NetAmount:        net,
		GiftTax:          Tax(net),
		TotalPremiumPaid: annualPremium * int64(changeYear),
	}
}
