// Package scenario composes the tax, cpp, corptax, and solve engines
// into the three income-structuring calculations and their comparison.
package scenario

import "math"

// Kind labels which structuring scenario produced a Result.
type Kind string

const (
	KindSoleProprietorship Kind = "sole_proprietorship"
	KindSalary             Kind = "salary"
	KindDividends          Kind = "dividends"
)

// SolePropInput drives the unincorporated calculation. The whole
// business income is personal gross earnings.
type SolePropInput struct {
	BusinessIncome float64
}

// SalaryInput drives the incorporated-with-salary calculation. The
// gross salary is back-solved from TargetPersonalCash.
type SalaryInput struct {
	BusinessIncome     float64
	TargetPersonalCash float64
	OtherExpenses      float64
}

// DividendInput drives the incorporated-with-dividends calculation.
type DividendInput struct {
	BusinessIncome     float64
	TargetPersonalCash float64
	OtherExpenses      float64
}

// CompareInput drives the three-way comparison. A zero
// TargetPersonalCash means "spend what the sole proprietor keeps".
type CompareInput struct {
	BusinessIncome     float64
	TargetPersonalCash float64
	OtherExpenses      float64
}

// DividendMix is the cash split actually paid out, bounded by each
// pool's after-tax capacity.
type DividendMix struct {
	Eligible    float64 `json:"eligible"`
	NonEligible float64 `json:"non_eligible"`
}

// Total returns the cash dividends paid across both classes.
func (m DividendMix) Total() float64 {
	return m.Eligible + m.NonEligible
}

// Result is the fixed output schema shared by all three scenarios.
// Fields that do not apply to a scenario are zero. Values are rounded
// to cents, rates to four decimals; a Result is built fresh per call
// and never mutated afterwards.
type Result struct {
	Scenario Kind `json:"scenario"`

	GrossSalary          float64 `json:"gross_salary"`
	EligibleDividends    float64 `json:"eligible_dividends"`
	NonEligibleDividends float64 `json:"non_eligible_dividends"`

	TaxableIncome float64 `json:"taxable_income"`
	FederalTax    float64 `json:"federal_tax"`
	ProvincialTax float64 `json:"provincial_tax"`
	PersonalTax   float64 `json:"personal_tax"`
	CorporateTax  float64 `json:"corporate_tax"`
	TotalTax      float64 `json:"total_tax"`

	PersonalCPP  float64 `json:"personal_cpp"`
	CorporateCPP float64 `json:"corporate_cpp"`
	TotalCPP     float64 `json:"total_cpp"`

	PersonalCash  float64 `json:"personal_cash"`
	CorporateCash float64 `json:"corporate_cash"`
	TotalCash     float64 `json:"total_cash"`

	EffectiveTaxRate float64 `json:"effective_tax_rate"`
	RRSPRoom         float64 `json:"rrsp_room"`

	// TargetMet is false when the requested personal cash could not be
	// reached, e.g. dividends capped by corporate capacity.
	TargetMet bool `json:"target_met"`

	solverIterations int
}

// SolverIterations reports how many bisection steps the calculation
// spent, zero for closed-form scenarios.
func (r Result) SolverIterations() int {
	return r.solverIterations
}

// Comparison bundles the three scenarios computed against one common
// lifestyle target.
type Comparison struct {
	Target             float64 `json:"target_personal_cash"`
	SoleProprietorship Result  `json:"sole_proprietorship"`
	Salary             Result  `json:"salary"`
	Dividends          Result  `json:"dividends"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
