package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/remcalc/remcalc/internal/rates"
	"github.com/remcalc/remcalc/internal/scenario"
)

func main() {
	income := flag.Float64("income", 0, "annual business income before salary and corporate tax")
	target := flag.Float64("target", 0, "target personal cash (defaults to the sole proprietorship net)")
	expenses := flag.Float64("expenses", 0, "other corporate expenses")
	flag.Parse()

	if *income <= 0 {
		flag.Usage()
		log.Fatalf("income must be positive")
	}

	table, err := rates.Load()
	if err != nil {
		log.Fatalf("load rates: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service := scenario.NewService(logger, scenario.NewCalculator(table), nil)

	cmp, err := service.Compare(context.Background(), scenario.CompareInput{
		BusinessIncome:     *income,
		TargetPersonalCash: *target,
		OtherExpenses:      *expenses,
	})
	if err != nil {
		log.Fatalf("compare scenarios: %v", err)
	}

	p := message.NewPrinter(language.English)
	money := func(v float64) string { return p.Sprintf("$%.2f", v) }
	pct := func(v float64) string { return p.Sprintf("%.2f%%", v*100) }

	fmt.Printf("%s %d remuneration comparison\n", table.Jurisdiction, table.Year)
	fmt.Printf("business income      %s\n", money(*income))
	fmt.Printf("target personal cash %s\n\n", money(cmp.Target))

	printRow := func(label, a, b, c string) {
		fmt.Printf("%-22s %16s %16s %16s\n", label, a, b, c)
	}

	printRow("", "sole prop", "salary", "dividends")
	printRow("gross salary", money(cmp.SoleProprietorship.GrossSalary), money(cmp.Salary.GrossSalary), money(cmp.Dividends.GrossSalary))
	printRow("eligible dividends", money(cmp.SoleProprietorship.EligibleDividends), money(cmp.Salary.EligibleDividends), money(cmp.Dividends.EligibleDividends))
	printRow("non-elig dividends", money(cmp.SoleProprietorship.NonEligibleDividends), money(cmp.Salary.NonEligibleDividends), money(cmp.Dividends.NonEligibleDividends))
	printRow("personal tax", money(cmp.SoleProprietorship.PersonalTax), money(cmp.Salary.PersonalTax), money(cmp.Dividends.PersonalTax))
	printRow("corporate tax", money(cmp.SoleProprietorship.CorporateTax), money(cmp.Salary.CorporateTax), money(cmp.Dividends.CorporateTax))
	printRow("total CPP", money(cmp.SoleProprietorship.TotalCPP), money(cmp.Salary.TotalCPP), money(cmp.Dividends.TotalCPP))
	printRow("personal cash", money(cmp.SoleProprietorship.PersonalCash), money(cmp.Salary.PersonalCash), money(cmp.Dividends.PersonalCash))
	printRow("corporate cash", money(cmp.SoleProprietorship.CorporateCash), money(cmp.Salary.CorporateCash), money(cmp.Dividends.CorporateCash))
	printRow("total cash", money(cmp.SoleProprietorship.TotalCash), money(cmp.Salary.TotalCash), money(cmp.Dividends.TotalCash))
	printRow("effective tax rate", pct(cmp.SoleProprietorship.EffectiveTaxRate), pct(cmp.Salary.EffectiveTaxRate), pct(cmp.Dividends.EffectiveTaxRate))
	printRow("RRSP room", money(cmp.SoleProprietorship.RRSPRoom), money(cmp.Salary.RRSPRoom), money(cmp.Dividends.RRSPRoom))
	printRow("target met", yesNo(cmp.SoleProprietorship.TargetMet), yesNo(cmp.Salary.TargetMet), yesNo(cmp.Dividends.TargetMet))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
