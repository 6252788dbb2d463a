// Package corptax applies the two-tier corporate income tax split to
// corporate profit before tax.
package corptax

import (
	"math"

	"github.com/remcalc/remcalc/internal/rates"
)

// Result itemizes corporate tax across the small-business-deduction
// pool and the general-rate pool. Amounts are rounded to cents, the
// effective rate to four decimals.
type Result struct {
	Profit               float64 `json:"profit"`
	SmallBusinessPortion float64 `json:"small_business_portion"`
	GeneralPortion       float64 `json:"general_portion"`
	SmallBusinessTax     float64 `json:"small_business_tax"`
	GeneralTax           float64 `json:"general_tax"`
	TotalTax             float64 `json:"total_tax"`
	EffectiveRate        float64 `json:"effective_rate"`
}

// Calc splits profit at the small-business threshold and taxes each
// portion at its rate. Negative profit is treated as zero; the
// effective rate on zero profit is zero, never NaN.
func Calc(profit float64, cfg rates.CorporateConfig) Result {
	p := math.Max(0, profit)
	sbd := math.Min(p, cfg.SmallBusinessThreshold)
	general := p - sbd

	r := Result{
		Profit:               round2(p),
		SmallBusinessPortion: round2(sbd),
		GeneralPortion:       round2(general),
		SmallBusinessTax:     round2(sbd * cfg.SmallBusinessRate),
		GeneralTax:           round2(general * cfg.GeneralRate),
	}
	r.TotalTax = round2(r.SmallBusinessTax + r.GeneralTax)
	if r.Profit > 0 {
		r.EffectiveRate = round4(r.TotalTax / r.Profit)
	}
	return r
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
