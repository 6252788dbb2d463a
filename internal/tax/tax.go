// Package tax implements progressive bracket taxation and the
// non-refundable credit arithmetic shared by every personal scenario.
package tax

import (
	"math"

	"github.com/remcalc/remcalc/internal/rates"
)

// Progressive returns the gross bracket tax on taxable income before
// any credits. Negative input is treated as zero income.
func Progressive(taxable float64, brackets rates.BracketTable) float64 {
	if taxable <= 0 {
		return 0
	}
	total := 0.0
	floor := 0.0
	for _, br := range brackets {
		if taxable <= floor {
			break
		}
		ceiling := br.Ceiling()
		total += (math.Min(taxable, ceiling) - floor) * br.Rate
		floor = ceiling
	}
	return total
}

// Credits aggregates the non-refundable amounts for one jurisdiction.
// BasicAmount and CreditableCPP are valued at the jurisdiction's lowest
// bracket rate; DividendCredit is already a tax amount.
type Credits struct {
	BasicAmount    float64
	CreditableCPP  float64
	DividendCredit float64
}

// Net returns the bracket tax net of credits. All credits are combined
// into a single subtraction and the result is floored at zero once;
// credits never refund and never offset the other jurisdiction's tax.
func Net(taxable float64, jur rates.Jurisdiction, cr Credits) float64 {
	gross := Progressive(taxable, jur.Brackets)
	credit := (cr.BasicAmount+cr.CreditableCPP)*jur.Brackets.LowestRate() + cr.DividendCredit
	return math.Max(0, gross-credit)
}

// GrossUp returns the taxable amount for a cash dividend under the
// given statutory gross-up factor.
func GrossUp(cash, factor float64) float64 {
	if cash <= 0 {
		return 0
	}
	return cash * (1 + factor)
}
