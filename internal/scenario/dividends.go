package scenario

import (
	"math"

	"github.com/remcalc/remcalc/internal/corptax"
	"github.com/remcalc/remcalc/internal/solve"
)

// Dividends runs the incorporated-with-dividends scenario. Corporate
// profit is taxed first; the small-business pool's after-tax capacity
// funds non-eligible dividends, the general pool's funds eligible ones.
// The mix prefers eligible dividends, tops up with non-eligible, and is
// capped by pool capacity with TargetMet reporting the shortfall.
func (c *Calculator) Dividends(in DividendInput) Result {
	target := math.Max(0, in.TargetPersonalCash)
	income := math.Max(0, in.BusinessIncome)
	expenses := math.Max(0, in.OtherExpenses)

	profit := math.Max(0, income-expenses)
	ct := corptax.Calc(profit, c.table.Corporate)
	eligibleCap := ct.GeneralPortion - ct.GeneralTax
	nonEligibleCap := ct.SmallBusinessPortion - ct.SmallBusinessTax

	mix, iterations, met := c.solveDividendMix(target, eligibleCap, nonEligibleCap)

	fed, prov, taxable := c.personalTax(personalIncome{
		eligibleCash:    mix.Eligible,
		nonEligibleCash: mix.NonEligible,
	})
	personalTax := fed + prov

	r := Result{
		Scenario:             KindDividends,
		EligibleDividends:    mix.Eligible,
		NonEligibleDividends: mix.NonEligible,
		TaxableIncome:        taxable,
		FederalTax:           fed,
		ProvincialTax:        prov,
		PersonalTax:          personalTax,
		CorporateTax:         ct.TotalTax,
		TotalTax:             personalTax + ct.TotalTax,
		PersonalCash:         mix.Total() - personalTax,
		CorporateCash:        (eligibleCap + nonEligibleCap) - mix.Total(),
		TargetMet:            met,
		solverIterations:     iterations,
	}
	r.TotalCash = r.PersonalCash + r.CorporateCash
	return c.finalize(r, income)
}

// solveDividendMix picks the cash split that nets the target. Eligible
// dividends are drawn first, then non-eligible top up the remainder;
// when both pools together cannot reach the target the full capacity is
// paid out and the miss is reported.
func (c *Calculator) solveDividendMix(target, eligibleCap, nonEligibleCap float64) (DividendMix, int, bool) {
	if target <= 0 {
		return DividendMix{}, 0, true
	}

	eligibleNet := c.dividendNet(eligibleCap, 0)
	if eligibleNet >= target {
		sol := solve.NetTarget(func(e float64) float64 {
			return c.dividendNet(e, 0)
		}, target, solve.Options{InitialHigh: eligibleCap})
		return DividendMix{Eligible: math.Min(sol.X, eligibleCap)}, sol.Iterations, true
	}

	if c.dividendNet(eligibleCap, nonEligibleCap) >= target {
		// The eligible pool is exhausted; solve only the non-eligible
		// increment so the lower bound stays valid.
		sol := solve.NetTarget(func(n float64) float64 {
			return c.dividendNet(eligibleCap, n) - eligibleNet
		}, target-eligibleNet, solve.Options{InitialHigh: nonEligibleCap})
		return DividendMix{Eligible: eligibleCap, NonEligible: math.Min(sol.X, nonEligibleCap)}, sol.Iterations, true
	}

	return DividendMix{Eligible: eligibleCap, NonEligible: nonEligibleCap}, 0, false
}

// dividendNet is personal cash kept from a given dividend mix.
func (c *Calculator) dividendNet(eligible, nonEligible float64) float64 {
	fed, prov, _ := c.personalTax(personalIncome{
		eligibleCash:    eligible,
		nonEligibleCash: nonEligible,
	})
	return eligible + nonEligible - fed - prov
}
