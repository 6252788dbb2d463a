package scenario

import (
	"math"

	"github.com/remcalc/remcalc/internal/rates"
	"github.com/remcalc/remcalc/internal/tax"
)

// Calculator evaluates the scenarios against one rate table. It holds
// no other state and is safe for concurrent use.
type Calculator struct {
	table *rates.Table
}

// NewCalculator wires a validated rate table into a calculator.
func NewCalculator(table *rates.Table) *Calculator {
	return &Calculator{table: table}
}

// Table returns the active rate table.
func (c *Calculator) Table() *rates.Table {
	return c.table
}

// personalIncome is the combined income picture a scenario feeds into
// the personal tax computation.
type personalIncome struct {
	earnings        float64
	deductions      float64
	creditableCPP   float64
	eligibleCash    float64
	nonEligibleCash float64
}

// personalTax returns federal and provincial net tax plus the taxable
// income both were computed on. Dividends enter grossed-up; the
// dividend credit is computed on the same grossed-up figure.
func (c *Calculator) personalTax(in personalIncome) (fed, prov, taxable float64) {
	t := c.table
	eligGrossed := tax.GrossUp(in.eligibleCash, t.Dividends.Eligible)
	nonEligGrossed := tax.GrossUp(in.nonEligibleCash, t.Dividends.NonEligible)
	taxable = math.Max(0, in.earnings-in.deductions) + eligGrossed + nonEligGrossed

	fed = tax.Net(taxable, t.Federal, tax.Credits{
		BasicAmount:   t.Federal.BasicPersonalAmount,
		CreditableCPP: in.creditableCPP,
		DividendCredit: eligGrossed*t.Federal.DividendCredit.Eligible +
			nonEligGrossed*t.Federal.DividendCredit.NonEligible,
	})
	prov = tax.Net(taxable, t.Provincial, tax.Credits{
		BasicAmount:   t.Provincial.BasicPersonalAmount,
		CreditableCPP: in.creditableCPP,
		DividendCredit: eligGrossed*t.Provincial.DividendCredit.Eligible +
			nonEligGrossed*t.Provincial.DividendCredit.NonEligible,
	})
	return fed, prov, taxable
}

// rrspRoom estimates the RRSP room generated by earned income.
// Dividends are not earned income and generate none.
func (c *Calculator) rrspRoom(earned float64) float64 {
	return math.Min(earned*c.table.RRSP.ContributionRate, c.table.RRSP.AnnualLimit)
}

// finalize rounds the money fields to cents and derives the effective
// rate, taxes over business income, zero when there is no income.
func (c *Calculator) finalize(r Result, businessIncome float64) Result {
	r.GrossSalary = round2(r.GrossSalary)
	r.EligibleDividends = round2(r.EligibleDividends)
	r.NonEligibleDividends = round2(r.NonEligibleDividends)
	r.TaxableIncome = round2(r.TaxableIncome)
	r.FederalTax = round2(r.FederalTax)
	r.ProvincialTax = round2(r.ProvincialTax)
	r.PersonalTax = round2(r.PersonalTax)
	r.CorporateTax = round2(r.CorporateTax)
	r.TotalTax = round2(r.TotalTax)
	r.PersonalCPP = round2(r.PersonalCPP)
	r.CorporateCPP = round2(r.CorporateCPP)
	r.TotalCPP = round2(r.TotalCPP)
	r.PersonalCash = round2(r.PersonalCash)
	r.CorporateCash = round2(r.CorporateCash)
	r.TotalCash = round2(r.TotalCash)
	r.RRSPRoom = round2(r.RRSPRoom)
	if businessIncome > 0 {
		r.EffectiveTaxRate = round4(r.TotalTax / businessIncome)
	}
	return r
}
