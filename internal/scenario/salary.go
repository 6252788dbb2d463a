package scenario

import (
	"math"

	"github.com/remcalc/remcalc/internal/corptax"
	"github.com/remcalc/remcalc/internal/cpp"
	"github.com/remcalc/remcalc/internal/solve"
)

// Salary runs the incorporated-with-salary scenario. The gross salary
// is back-solved so that, after the employee-side contribution and net
// personal tax, the target personal cash remains. Whatever the company
// keeps after salary, employer contribution, and other expenses is
// taxed corporately.
func (c *Calculator) Salary(in SalaryInput) Result {
	target := math.Max(0, in.TargetPersonalCash)
	income := math.Max(0, in.BusinessIncome)
	expenses := math.Max(0, in.OtherExpenses)

	sol := solve.NetTarget(c.salaryNet, target, solve.Options{})
	gross := sol.X

	bd := cpp.Calc(gross, c.table.CPP, cpp.TreatmentEmployee)
	fed, prov, taxable := c.personalTax(personalIncome{
		earnings:      gross,
		deductions:    bd.Deductible,
		creditableCPP: bd.Creditable,
	})
	personalTax := fed + prov

	profit := math.Max(0, income-gross-bd.EmployerCash-expenses)
	ct := corptax.Calc(profit, c.table.Corporate)

	r := Result{
		Scenario:         KindSalary,
		GrossSalary:      gross,
		TaxableIncome:    taxable,
		FederalTax:       fed,
		ProvincialTax:    prov,
		PersonalTax:      personalTax,
		CorporateTax:     ct.TotalTax,
		TotalTax:         personalTax + ct.TotalTax,
		PersonalCPP:      bd.EmployeeCash,
		CorporateCPP:     bd.EmployerCash,
		TotalCPP:         bd.Total,
		PersonalCash:     gross - bd.EmployeeCash - personalTax,
		CorporateCash:    ct.Profit - ct.TotalTax,
		RRSPRoom:         c.rrspRoom(gross),
		TargetMet:        sol.Bracketed,
		solverIterations: sol.Iterations,
	}
	r.TotalCash = r.PersonalCash + r.CorporateCash
	return c.finalize(r, income)
}

// salaryNet is the monotone function the solver inverts: personal cash
// kept out of a given gross salary.
func (c *Calculator) salaryNet(gross float64) float64 {
	bd := cpp.Calc(gross, c.table.CPP, cpp.TreatmentEmployee)
	fed, prov, _ := c.personalTax(personalIncome{
		earnings:      gross,
		deductions:    bd.Deductible,
		creditableCPP: bd.Creditable,
	})
	return gross - bd.EmployeeCash - fed - prov
}
