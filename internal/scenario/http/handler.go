// Package scenariohttp serves the calculation API.
package scenariohttp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/remcalc/remcalc/internal/corptax"
	"github.com/remcalc/remcalc/internal/platform/httpx"
	"github.com/remcalc/remcalc/internal/rates"
	"github.com/remcalc/remcalc/internal/scenario"
)

const requestTimeout = 2 * time.Second

// CalculatorService defines the calculation contract used by the handler.
type CalculatorService interface {
	SoleProprietorship(ctx context.Context, in scenario.SolePropInput) scenario.Result
	Salary(ctx context.Context, in scenario.SalaryInput) scenario.Result
	Dividends(ctx context.Context, in scenario.DividendInput) scenario.Result
	Compare(ctx context.Context, in scenario.CompareInput) (scenario.Comparison, error)
	CorporateTax(ctx context.Context, profit float64) corptax.Result
	Rates() *rates.Table
}

// Handler coordinates HTTP requests for the scenario calculators.
type Handler struct {
	logger    *slog.Logger
	service   CalculatorService
	validator *validator.Validate
}

// NewHandler constructs the scenario HTTP handler.
func NewHandler(logger *slog.Logger, service CalculatorService) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers the calculation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/calculations/sole-proprietorship", h.handleSoleProprietorship)
	r.Post("/calculations/salary", h.handleSalary)
	r.Post("/calculations/dividends", h.handleDividends)
	r.Post("/calculations/compare", h.handleCompare)
	r.Post("/corporate-tax", h.handleCorporateTax)
	r.Get("/rates", h.handleRates)
}

func (h *Handler) handleSoleProprietorship(w http.ResponseWriter, r *http.Request) {
	var req solePropRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res := h.service.SoleProprietorship(ctx, scenario.SolePropInput{
		BusinessIncome: req.BusinessIncome,
	})
	h.respondResult(w, res)
}

func (h *Handler) handleSalary(w http.ResponseWriter, r *http.Request) {
	var req salaryRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res := h.service.Salary(ctx, scenario.SalaryInput{
		BusinessIncome:     req.BusinessIncome,
		TargetPersonalCash: req.TargetPersonalCash,
		OtherExpenses:      req.OtherExpenses,
	})
	h.respondResult(w, res)
}

func (h *Handler) handleDividends(w http.ResponseWriter, r *http.Request) {
	var req dividendRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	res := h.service.Dividends(ctx, scenario.DividendInput{
		BusinessIncome:     req.BusinessIncome,
		TargetPersonalCash: req.TargetPersonalCash,
		OtherExpenses:      req.OtherExpenses,
	})
	h.respondResult(w, res)
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cmp, err := h.service.Compare(ctx, scenario.CompareInput{
		BusinessIncome:     req.BusinessIncome,
		TargetPersonalCash: req.TargetPersonalCash,
		OtherExpenses:      req.OtherExpenses,
	})
	if err != nil {
		h.logger.Error("compare scenarios", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, comparisonEnvelope{
		CalculationID: uuid.NewString(),
		TaxYear:       h.service.Rates().Year,
		Comparison:    cmp,
	})
}

func (h *Handler) handleCorporateTax(w http.ResponseWriter, r *http.Request) {
	var req corporateTaxRequest
	if err := h.decode(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	httpx.JSON(w, http.StatusOK, corporateTaxEnvelope{
		CalculationID: uuid.NewString(),
		TaxYear:       h.service.Rates().Year,
		Result:        h.service.CorporateTax(ctx, req.Profit),
	})
}

func (h *Handler) handleRates(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Rates())
}

func (h *Handler) respondResult(w http.ResponseWriter, res scenario.Result) {
	httpx.JSON(w, http.StatusOK, calculationEnvelope{
		CalculationID: uuid.NewString(),
		TaxYear:       h.service.Rates().Year,
		Result:        res,
	})
}

func (h *Handler) decode(r *http.Request, req any) error {
	if err := httpx.DecodeJSON(r, req); err != nil {
		return err
	}
	if err := h.validator.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrValidation, validationDetail(err))
	}
	return nil
}

func validationDetail(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s must satisfy %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
