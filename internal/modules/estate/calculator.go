// Package estate computes Taiwan estate tax (2025 rules) and simulates
// insurance and early-gift planning strategies. All amounts are in units of
// ten thousand NTD (萬).
package estate

import "math"

// Constants are the statutory exemption, deduction and bracket figures.
type Constants struct {
	ExemptAmount        float64 // 免稅額
	FuneralExpense      float64 // 喪葬費扣除額
	SpouseDeduction     float64 // 配偶扣除額
	AdultChildDeduction float64 // 每位直系血親卑親屬扣除額
	ParentsDeduction    float64 // 每位父母扣除額（最多 2 人）
	DisabledDeduction   float64 // 每位重度身心障礙扣除額
	OtherDependents     float64 // 每位受撫養兄弟姊妹/祖父母扣除額
	Brackets            []Bracket
}

// Bracket is one progressive tax band: amounts up to Upper are taxed at Rate.
type Bracket struct {
	Upper float64
	Rate  float64
}

// DefaultConstants returns the figures effective from 2025.
func DefaultConstants() Constants {
	return Constants{
		ExemptAmount:        1333,
		FuneralExpense:      138,
		SpouseDeduction:     553,
		AdultChildDeduction: 56,
		ParentsDeduction:    138,
		DisabledDeduction:   693,
		OtherDependents:     56,
		Brackets: []Bracket{
			{Upper: 5621, Rate: 0.10},
			{Upper: 11242, Rate: 0.15},
			{Upper: math.Inf(1), Rate: 0.20},
		},
	}
}

// FamilyProfile describes the deceased's deductible family members.
type FamilyProfile struct {
	Spouse          bool `json:"spouse"`
	AdultChildren   int  `json:"adult_children"   binding:"min=0,max=10"`
	Parents         int  `json:"parents"          binding:"min=0,max=2"`
	DisabledPeople  int  `json:"disabled_people"  binding:"min=0"`
	OtherDependents int  `json:"other_dependents" binding:"min=0,max=5"`
}

// Result is one estate tax computation.
type Result struct {
	TaxableAmount float64 `json:"taxable_amount"`
	TaxDue        float64 `json:"tax_due"`
	Deductions    float64 `json:"deductions"`
}

type Calculator struct {
	constants Constants
}

func NewCalculator(constants Constants) *Calculator {
	return &Calculator{constants: constants}
}

// Constants returns the figures the calculator was built with.
func (c *Calculator) Constants() Constants { return c.constants }

// Deductions sums the family deductions plus the funeral expense.
func (c *Calculator) Deductions(family FamilyProfile) float64 {
	spouse := 0.0
	if family.Spouse {
		spouse = c.constants.SpouseDeduction
	}
	return spouse +
		c.constants.FuneralExpense +
		float64(family.DisabledPeople)*c.constants.DisabledDeduction +
		float64(family.AdultChildren)*c.constants.AdultChildDeduction +
		float64(family.OtherDependents)*c.constants.OtherDependents +
		float64(family.Parents)*c.constants.ParentsDeduction
}

// EstateTax computes the taxable net estate and the progressive tax due.
// Estates below the exemption-plus-deduction threshold owe nothing.
func (c *Calculator) EstateTax(totalAssets float64, family FamilyProfile) Result {
	deductions := c.Deductions(family)
	if totalAssets < c.constants.ExemptAmount+deductions {
		return Result{Deductions: deductions}
	}

	taxable := math.Max(0, totalAssets-c.constants.ExemptAmount-deductions)
	tax := 0.0
	previous := 0.0
	for _, bracket := range c.constants.Brackets {
		if taxable > previous {
			taxedHere := math.Min(taxable, bracket.Upper) - previous
			tax += taxedHere * bracket.Rate
			previous = bracket.Upper
		}
	}
	return Result{
		TaxableAmount: taxable,
		TaxDue:        math.Round(tax),
		Deductions:    deductions,
	}
}
