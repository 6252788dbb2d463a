// Package rates loads and validates the statutory tax constants for a
// single tax year and jurisdiction. Every calculator consumes a Table;
// none of them hard-code a rate.
package rates

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTable reports a rate table that failed validation.
var ErrInvalidTable = errors.New("rates: invalid table")

// Bracket is one slice of a progressive schedule. UpTo is the upper
// bound of taxable income the bracket covers; zero marks the open top
// bracket.
type Bracket struct {
	UpTo float64 `yaml:"up_to" json:"up_to,omitempty"`
	Rate float64 `yaml:"rate" json:"rate"`
}

// Ceiling returns the bracket's upper bound, +Inf for the top bracket.
func (b Bracket) Ceiling() float64 {
	if b.UpTo <= 0 {
		return math.Inf(1)
	}
	return b.UpTo
}

// BracketTable is an ordered progressive schedule with ascending bounds.
type BracketTable []Bracket

// LowestRate returns the first bracket's rate. Non-refundable credits
// are valued at this rate.
func (b BracketTable) LowestRate() float64 {
	if len(b) == 0 {
		return 0
	}
	return b[0].Rate
}

func (b BracketTable) validate(name string) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: %s: no brackets", ErrInvalidTable, name)
	}
	prev := 0.0
	for i, br := range b {
		if br.Rate < 0 || br.Rate >= 1 {
			return fmt.Errorf("%w: %s: bracket %d rate %.4f out of range", ErrInvalidTable, name, i, br.Rate)
		}
		if i == len(b)-1 {
			if br.UpTo != 0 {
				return fmt.Errorf("%w: %s: top bracket must be unbounded", ErrInvalidTable, name)
			}
			break
		}
		if br.UpTo <= prev {
			return fmt.Errorf("%w: %s: bracket %d bound %.2f not ascending", ErrInvalidTable, name, i, br.UpTo)
		}
		prev = br.UpTo
	}
	return nil
}

// DividendCreditRates are dividend tax credit rates per class, applied
// to the grossed-up amount rather than the cash amount.
type DividendCreditRates struct {
	Eligible    float64 `yaml:"eligible" json:"eligible"`
	NonEligible float64 `yaml:"non_eligible" json:"non_eligible"`
}

// Jurisdiction bundles one government's personal tax schedule.
type Jurisdiction struct {
	BasicPersonalAmount float64             `yaml:"basic_personal_amount" json:"basic_personal_amount"`
	Brackets            BracketTable        `yaml:"brackets" json:"brackets"`
	DividendCredit      DividendCreditRates `yaml:"dividend_credit" json:"dividend_credit"`
}

func (j Jurisdiction) validate(name string) error {
	if j.BasicPersonalAmount < 0 {
		return fmt.Errorf("%w: %s: negative basic personal amount", ErrInvalidTable, name)
	}
	if err := j.Brackets.validate(name); err != nil {
		return err
	}
	for _, rate := range []float64{j.DividendCredit.Eligible, j.DividendCredit.NonEligible} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%w: %s: dividend credit rate %.4f out of range", ErrInvalidTable, name, rate)
		}
	}
	return nil
}

// GrossUpFactors are the statutory dividend gross-up percentages. A
// cash dividend enters taxable income at cash x (1 + factor).
type GrossUpFactors struct {
	Eligible    float64 `yaml:"eligible_gross_up" json:"eligible_gross_up"`
	NonEligible float64 `yaml:"non_eligible_gross_up" json:"non_eligible_gross_up"`
}

// CPPConfig carries the contribution tiers and per-side rates.
type CPPConfig struct {
	BasicExemption float64 `yaml:"basic_exemption" json:"basic_exemption"`
	YMPE           float64 `yaml:"ympe" json:"ympe"`
	YAMPE          float64 `yaml:"yampe" json:"yampe"`
	BaseRate       float64 `yaml:"base_rate" json:"base_rate"`
	EnhancedRate   float64 `yaml:"enhanced_rate" json:"enhanced_rate"`
	Tier2Rate      float64 `yaml:"tier2_rate" json:"tier2_rate"`
}

func (c CPPConfig) validate() error {
	if c.BasicExemption < 0 {
		return fmt.Errorf("%w: cpp: negative basic exemption", ErrInvalidTable)
	}
	if c.YMPE <= c.BasicExemption {
		return fmt.Errorf("%w: cpp: ympe %.2f must exceed basic exemption %.2f", ErrInvalidTable, c.YMPE, c.BasicExemption)
	}
	if c.YAMPE < c.YMPE {
		return fmt.Errorf("%w: cpp: yampe %.2f below ympe %.2f", ErrInvalidTable, c.YAMPE, c.YMPE)
	}
	for _, rate := range []float64{c.BaseRate, c.EnhancedRate, c.Tier2Rate} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%w: cpp: rate %.4f out of range", ErrInvalidTable, rate)
		}
	}
	return nil
}

// CorporateConfig carries the combined federal + provincial two-tier
// corporate income tax rates.
type CorporateConfig struct {
	SmallBusinessThreshold float64 `yaml:"small_business_threshold" json:"small_business_threshold"`
	SmallBusinessRate      float64 `yaml:"small_business_rate" json:"small_business_rate"`
	GeneralRate            float64 `yaml:"general_rate" json:"general_rate"`
}

func (c CorporateConfig) validate() error {
	if c.SmallBusinessThreshold <= 0 {
		return fmt.Errorf("%w: corporate: small business threshold must be positive", ErrInvalidTable)
	}
	for _, rate := range []float64{c.SmallBusinessRate, c.GeneralRate} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("%w: corporate: rate %.4f out of range", ErrInvalidTable, rate)
		}
	}
	return nil
}

// RRSPConfig bounds the contribution-room estimate.
type RRSPConfig struct {
	ContributionRate float64 `yaml:"contribution_rate" json:"contribution_rate"`
	AnnualLimit      float64 `yaml:"annual_limit" json:"annual_limit"`
}

func (c RRSPConfig) validate() error {
	if c.ContributionRate < 0 || c.ContributionRate >= 1 {
		return fmt.Errorf("%w: rrsp: contribution rate %.4f out of range", ErrInvalidTable, c.ContributionRate)
	}
	if c.AnnualLimit < 0 {
		return fmt.Errorf("%w: rrsp: negative annual limit", ErrInvalidTable)
	}
	return nil
}

// Table is the full constant set for one tax year.
type Table struct {
	Year         int             `yaml:"year" json:"year"`
	Jurisdiction string          `yaml:"jurisdiction" json:"jurisdiction"`
	Federal      Jurisdiction    `yaml:"federal" json:"federal"`
	Provincial   Jurisdiction    `yaml:"provincial" json:"provincial"`
	Dividends    GrossUpFactors  `yaml:"dividends" json:"dividends"`
	CPP          CPPConfig       `yaml:"cpp" json:"cpp"`
	Corporate    CorporateConfig `yaml:"corporate" json:"corporate"`
	RRSP         RRSPConfig      `yaml:"rrsp" json:"rrsp"`
}

// Validate checks the structural invariants every calculator relies on.
func (t *Table) Validate() error {
	if t.Year <= 0 {
		return fmt.Errorf("%w: year missing", ErrInvalidTable)
	}
	if err := t.Federal.validate("federal"); err != nil {
		return err
	}
	if err := t.Provincial.validate("provincial"); err != nil {
		return err
	}
	if t.Dividends.Eligible < 0 || t.Dividends.NonEligible < 0 {
		return fmt.Errorf("%w: dividends: negative gross-up factor", ErrInvalidTable)
	}
	if err := t.CPP.validate(); err != nil {
		return err
	}
	if err := t.Corporate.validate(); err != nil {
		return err
	}
	return t.RRSP.validate()
}
