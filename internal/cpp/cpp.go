// Package cpp computes Canada Pension Plan contributions across the
// base, first-enhanced, and second-tier earnings bands.
package cpp

import (
	"math"

	"github.com/samber/lo"

	"github.com/remcalc/remcalc/internal/rates"
)

// Treatment selects how contributions are assessed and who pays the
// cash. The scenario calculators choose the treatment; the arithmetic
// here stays the same.
type Treatment string

const (
	// TreatmentSelfEmployed pays both sides personally.
	TreatmentSelfEmployed Treatment = "self_employed"
	// TreatmentEmployee splits contributions with an employer.
	TreatmentEmployee Treatment = "employee"
	// TreatmentDividendOnly has no pensionable earnings.
	TreatmentDividendOnly Treatment = "dividend_only"
)

// Breakdown itemizes one year of contributions on pensionable earnings.
// Creditable feeds the non-refundable credit at the lowest bracket
// rate; Deductible reduces taxable income before bracket tax. The two
// mechanisms must not be conflated.
type Breakdown struct {
	Treatment Treatment `json:"treatment"`

	Tier1Base float64 `json:"tier1_base"`
	Tier2Base float64 `json:"tier2_base"`

	EmployeeBase     float64 `json:"employee_base"`
	EmployeeEnhanced float64 `json:"employee_enhanced"`
	EmployeeTier2    float64 `json:"employee_tier2"`
	EmployerBase     float64 `json:"employer_base"`
	EmployerEnhanced float64 `json:"employer_enhanced"`
	EmployerTier2    float64 `json:"employer_tier2"`

	Creditable float64 `json:"creditable"`
	Deductible float64 `json:"deductible"`

	EmployeeCash float64 `json:"employee_cash"`
	EmployerCash float64 `json:"employer_cash"`
	Total        float64 `json:"total"`
}

// Calc assesses contributions on gross pensionable earnings. Negative
// earnings and the dividend-only treatment both produce a zero
// breakdown.
func Calc(gross float64, cfg rates.CPPConfig, treatment Treatment) Breakdown {
	bd := Breakdown{Treatment: treatment}
	if treatment == TreatmentDividendOnly || gross <= 0 {
		return bd
	}

	bd.Tier1Base = math.Max(0, lo.Clamp(gross, 0, cfg.YMPE)-cfg.BasicExemption)
	bd.Tier2Base = math.Max(0, lo.Clamp(gross, 0, cfg.YAMPE)-cfg.YMPE)

	bd.EmployeeBase = bd.Tier1Base * cfg.BaseRate
	bd.EmployeeEnhanced = bd.Tier1Base * cfg.EnhancedRate
	bd.EmployeeTier2 = bd.Tier2Base * cfg.Tier2Rate
	bd.EmployerBase = bd.EmployeeBase
	bd.EmployerEnhanced = bd.EmployeeEnhanced
	bd.EmployerTier2 = bd.EmployeeTier2
	bd.Total = bd.EmployeeBase + bd.EmployeeEnhanced + bd.EmployeeTier2 +
		bd.EmployerBase + bd.EmployerEnhanced + bd.EmployerTier2

	switch treatment {
	case TreatmentSelfEmployed:
		bd.Creditable = bd.EmployeeBase
		bd.Deductible = bd.Total - bd.EmployeeBase
		bd.EmployeeCash = bd.Total
	case TreatmentEmployee:
		bd.Creditable = bd.EmployeeBase
		bd.Deductible = bd.EmployeeEnhanced + bd.EmployeeTier2
		bd.EmployeeCash = bd.EmployeeBase + bd.EmployeeEnhanced + bd.EmployeeTier2
		bd.EmployerCash = bd.EmployerBase + bd.EmployerEnhanced + bd.EmployerTier2
	}
	return bd
}
