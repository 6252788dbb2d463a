package scenario

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/remcalc/remcalc/internal/corptax"
	"github.com/remcalc/remcalc/internal/rates"
)

// Recorder observes calculation metrics.
type Recorder interface {
	ObserveCalculation(scenario string, targetMet bool, seconds float64)
	ObserveSolverIterations(scenario string, iterations int)
}

// Service wraps the calculator with logging and metrics. All methods
// are safe for concurrent use.
type Service struct {
	logger  *slog.Logger
	calc    *Calculator
	metrics Recorder
}

// NewService constructs the scenario service. metrics may be nil.
func NewService(logger *slog.Logger, calc *Calculator, metrics Recorder) *Service {
	return &Service{logger: logger, calc: calc, metrics: metrics}
}

// Rates returns the table the service calculates against.
func (s *Service) Rates() *rates.Table {
	return s.calc.Table()
}

// SoleProprietorship computes the unincorporated scenario.
func (s *Service) SoleProprietorship(ctx context.Context, in SolePropInput) Result {
	start := time.Now()
	res := s.calc.SoleProprietorship(in)
	s.observe(res, time.Since(start))
	return res
}

// Salary computes the incorporated-with-salary scenario.
func (s *Service) Salary(ctx context.Context, in SalaryInput) Result {
	start := time.Now()
	res := s.calc.Salary(in)
	s.observe(res, time.Since(start))
	return res
}

// Dividends computes the incorporated-with-dividends scenario.
func (s *Service) Dividends(ctx context.Context, in DividendInput) Result {
	start := time.Now()
	res := s.calc.Dividends(in)
	s.observe(res, time.Since(start))
	return res
}

// CorporateTax applies the two-tier corporate split to a bare profit
// figure, outside of any scenario.
func (s *Service) CorporateTax(ctx context.Context, profit float64) corptax.Result {
	return corptax.Calc(profit, s.calc.Table().Corporate)
}

// Compare computes all three scenarios against one lifestyle target.
// When the caller does not supply a target, the sole-proprietorship
// personal cash becomes the target for the incorporated scenarios, so
// the comparison answers "what does the same spending money cost under
// each structure".
func (s *Service) Compare(ctx context.Context, in CompareInput) (Comparison, error) {
	soleProp := s.SoleProprietorship(ctx, SolePropInput{BusinessIncome: in.BusinessIncome})

	target := in.TargetPersonalCash
	if target <= 0 {
		target = soleProp.PersonalCash
	}

	cmp := Comparison{Target: target, SoleProprietorship: soleProp}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmp.Salary = s.Salary(ctx, SalaryInput{
			BusinessIncome:     in.BusinessIncome,
			TargetPersonalCash: target,
			OtherExpenses:      in.OtherExpenses,
		})
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmp.Dividends = s.Dividends(ctx, DividendInput{
			BusinessIncome:     in.BusinessIncome,
			TargetPersonalCash: target,
			OtherExpenses:      in.OtherExpenses,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}
	return cmp, nil
}

func (s *Service) observe(res Result, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveCalculation(string(res.Scenario), res.TargetMet, elapsed.Seconds())
		if res.SolverIterations() > 0 {
			s.metrics.ObserveSolverIterations(string(res.Scenario), res.SolverIterations())
		}
	}
	if !res.TargetMet {
		s.logger.Warn("target personal cash not reachable",
			slog.String("scenario", string(res.Scenario)),
			slog.Float64("personal_cash", res.PersonalCash))
	}
}
