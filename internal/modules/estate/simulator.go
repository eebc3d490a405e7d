package estate

import "math"

// AnnualGiftExemption is the yearly tax-free gift allowance (萬).
const AnnualGiftExemption = 244

// Outcome is one strategy row: what the family ends up with and how much
// better that is than doing nothing.
type Outcome struct {
	Strategy    string `json:"strategy"`
	EstateTax   int64  `json:"estate_tax"`
	NetToFamily int64  `json:"net_to_family"`
	Effect      int64  `json:"effect"`
}

// InsuranceSimulation compares no planning, an insurance policy whose payout
// stays outside the estate, and the same policy when the payout is pulled
// back in under substance-over-form taxation.
type InsuranceSimulation struct {
	NoPlan       Outcome `json:"no_plan"`
	Planned      Outcome `json:"planned"`
	PlannedTaxed Outcome `json:"planned_taxed"`
}

// GiftSimulation compares no planning against years of annual-exemption
// gifting before death.
type GiftSimulation struct {
	NoPlan    Outcome `json:"no_plan"`
	AfterGift Outcome `json:"after_gift"`
	TotalGift int64   `json:"total_gift"`
	Years     int     `json:"years"`
}

type Simulator struct {
	calc *Calculator
}

func NewSimulator(calc *Calculator) *Simulator {
	return &Simulator{calc: calc}
}

// SimulateInsurance models paying premium out of the estate and receiving
// premium*claimRatio back as an insurance claim.
func (s *Simulator) SimulateInsurance(totalAssets float64, family FamilyProfile, claimRatio, premium float64) InsuranceSimulation {
	taxNoPlan := s.calc.EstateTax(totalAssets, family).TaxDue
	netNoPlan := totalAssets - taxNoPlan

	claim := math.Round(premium * claimRatio)

	// Claim excluded from the estate.
	reduced := totalAssets - premium
	taxPlanned := s.calc.EstateTax(reduced, family).TaxDue
	netPlanned := math.Round(reduced - taxPlanned + claim)

	// Claim taxed back into the estate.
	effective := totalAssets - premium + claim
	taxTaxed := s.calc.EstateTax(effective, family).TaxDue
	netTaxed := math.Round(effective - taxTaxed)

	return InsuranceSimulation{
		NoPlan: Outcome{
			Strategy:    "沒有規劃",
			EstateTax:   int64(taxNoPlan),
			NetToFamily: int64(netNoPlan),
		},
		Planned: Outcome{
			Strategy:    "有規劃保單",
			EstateTax:   int64(taxPlanned),
			NetToFamily: int64(netPlanned),
			Effect:      int64(netPlanned - netNoPlan),
		},
		PlannedTaxed: Outcome{
			Strategy:    "有規劃保單（被實質課稅）",
			EstateTax:   int64(taxTaxed),
			NetToFamily: int64(netTaxed),
			Effect:      int64(netTaxed - netNoPlan),
		},
	}
}

// SimulateGift models gifting the annual exemption for the given number of
// years before death.
func (s *Simulator) SimulateGift(totalAssets float64, family FamilyProfile, years int) GiftSimulation {
	totalGift := float64(years) * AnnualGiftExemption
	remaining := math.Max(totalAssets-totalGift, 0)

	taxAfter := s.calc.EstateTax(remaining, family).TaxDue
	netAfter := math.Round(remaining - taxAfter + totalGift)

	taxNoPlan := s.calc.EstateTax(totalAssets, family).TaxDue
	netNoPlan := totalAssets - taxNoPlan

	return GiftSimulation{
		NoPlan: Outcome{
			Strategy:    "沒有規劃",
			EstateTax:   int64(taxNoPlan),
			NetToFamily: int64(netNoPlan),
		},
		AfterGift: Outcome{
			Strategy:    "提前贈與後",
			EstateTax:   int64(taxAfter),
			NetToFamily: int64(netAfter),
			Effect:      int64(netAfter - netNoPlan),
		},
		TotalGift: int64(totalGift),
		Years:     years,
	}
}

// CompareStrategies produces the five-row case table: no plan, early gift,
// insurance, gift+insurance, and gift+insurance under substance-over-form
// taxation of the claim.
func (s *Simulator) CompareStrategies(totalAssets float64, family FamilyProfile, premium, claim, gift float64) []Outcome {
	tax := func(total float64) float64 {
		return s.calc.EstateTax(total, family).TaxDue
	}

	taxNoPlan := tax(totalAssets)
	netNoPlan := totalAssets - taxNoPlan

	giftBase := totalAssets - gift
	taxGift := tax(giftBase)
	netGift := giftBase - taxGift + gift

	insBase := totalAssets - premium
	taxIns := tax(insBase)
	netIns := insBase - taxIns + claim

	comboBase := totalAssets - gift - premium
	taxCombo := tax(comboBase)
	netCombo := comboBase - taxCombo + claim + gift

	comboTaxedBase := totalAssets - gift - premium + claim
	taxComboTaxed := tax(comboTaxedBase)
	netComboTaxed := comboTaxedBase - taxComboTaxed + gift

	rows := []Outcome{
		{Strategy: "沒有規劃", EstateTax: int64(taxNoPlan), NetToFamily: int64(netNoPlan)},
		{Strategy: "提前贈與", EstateTax: int64(taxGift), NetToFamily: int64(netGift)},
		{Strategy: "購買保險", EstateTax: int64(taxIns), NetToFamily: int64(netIns)},
		{Strategy: "提前贈與＋購買保險", EstateTax: int64(taxCombo), NetToFamily: int64(netCombo)},
		{Strategy: "提前贈與＋購買保險（被實質課稅）", EstateTax: int64(taxComboTaxed), NetToFamily: int64(netComboTaxed)},
	}
	baseline := rows[0].NetToFamily
	for i := range rows {
		rows[i].Effect = rows[i].NetToFamily - baseline
	}
	return rows
}
