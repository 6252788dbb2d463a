package scenario

import (
	"math"

	"github.com/remcalc/remcalc/internal/cpp"
)

// SoleProprietorship runs the unincorporated scenario. The whole
// business income is personal gross earnings assessed under the
// self-employed contribution treatment; no corporate entity exists, so
// all corporate fields stay zero.
func (c *Calculator) SoleProprietorship(in SolePropInput) Result {
	gross := math.Max(0, in.BusinessIncome)

	bd := cpp.Calc(gross, c.table.CPP, cpp.TreatmentSelfEmployed)
	fed, prov, taxable := c.personalTax(personalIncome{
		earnings:      gross,
		deductions:    bd.Deductible,
		creditableCPP: bd.Creditable,
	})
	personalTax := fed + prov

	r := Result{
		Scenario:      KindSoleProprietorship,
		GrossSalary:   gross,
		TaxableIncome: taxable,
		FederalTax:    fed,
		ProvincialTax: prov,
		PersonalTax:   personalTax,
		TotalTax:      personalTax,
		PersonalCPP:   bd.EmployeeCash,
		TotalCPP:      bd.Total,
		PersonalCash:  gross - personalTax - bd.EmployeeCash,
		RRSPRoom:      c.rrspRoom(gross),
		TargetMet:     true,
	}
	r.TotalCash = r.PersonalCash
	return c.finalize(r, gross)
}
