package scenariohttp

import (
	"github.com/remcalc/remcalc/internal/corptax"
	"github.com/remcalc/remcalc/internal/scenario"
)

// Zero incomes and targets are valid inputs, so the fields carry gte
// constraints rather than required.
type solePropRequest struct {
	BusinessIncome float64 `json:"business_income" validate:"gte=0"`
}

type salaryRequest struct {
	BusinessIncome     float64 `json:"business_income" validate:"gte=0"`
	TargetPersonalCash float64 `json:"target_personal_cash" validate:"gte=0"`
	OtherExpenses      float64 `json:"other_expenses" validate:"gte=0"`
}

type dividendRequest struct {
	BusinessIncome     float64 `json:"business_income" validate:"gte=0"`
	TargetPersonalCash float64 `json:"target_personal_cash" validate:"gte=0"`
	OtherExpenses      float64 `json:"other_expenses" validate:"gte=0"`
}

type compareRequest struct {
	BusinessIncome     float64 `json:"business_income" validate:"gte=0"`
	TargetPersonalCash float64 `json:"target_personal_cash" validate:"gte=0"`
	OtherExpenses      float64 `json:"other_expenses" validate:"gte=0"`
}

type corporateTaxRequest struct {
	Profit float64 `json:"profit" validate:"gte=0"`
}

type calculationEnvelope struct {
	CalculationID string          `json:"calculation_id"`
	TaxYear       int             `json:"tax_year"`
	Result        scenario.Result `json:"result"`
}

type comparisonEnvelope struct {
	CalculationID string              `json:"calculation_id"`
	TaxYear       int                 `json:"tax_year"`
	Comparison    scenario.Comparison `json:"comparison"`
}

type corporateTaxEnvelope struct {
	CalculationID string         `json:"calculation_id"`
	TaxYear       int            `json:"tax_year"`
	Result        corptax.Result `json:"result"`
}
