// Package report renders assessments and feature results as plain text for
// the command line.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vannoorsab/FINAI/internal/domain"
	"github.com/vannoorsab/FINAI/internal/insights"
	"github.com/vannoorsab/FINAI/internal/marketplace"
	"github.com/vannoorsab/FINAI/internal/money"
)

// maxRows caps the transaction table in Assessment.
const maxRows = 20

// printer keeps the first write error so renderers can print without checks.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) heading(title string) {
	p.printf("\n=== %s ===\n", title)
}

// Assessment writes the full text report for a.
func Assessment(w io.Writer, a *domain.Assessment) error {
	p := &printer{w: w}

	p.heading("Customer Profile")
	p.printf("Customer ID:  %s\n", a.Profile.CustomerID)
	p.printf("Name:         %s\n", a.Profile.Name)
	p.printf("Mobile:       %s\n", a.Profile.Mobile)
	p.printf("KYC Status:   %s\n", a.Profile.KYCStatus)
	p.printf("Account:      %s\n", a.Profile.AccountNumber)
	p.printf("Available:    %s\n", a.Profile.AvailableBalance)

	p.heading("Financial Metrics")
	m := a.Metrics
	p.printf("Transactions:       %d\n", m.TotalTransactions)
	p.printf("Total Credits:      %s\n", money.Rupees(m.TotalCredits))
	p.printf("Total Debits:       %s\n", money.Rupees(m.TotalDebits))
	p.printf("Net Cashflow:       %s\n", money.Rupees(m.NetCashflow))
	p.printf("Opening Balance:    %s\n", money.Rupees(a.Summary.OpeningBalance))
	p.printf("Closing Balance:    %s\n", money.Rupees(a.Summary.ClosingBalance))
	p.printf("Average Balance:    %s\n", money.Rupees(m.AvgBalance))
	p.printf("Balance Volatility: %.2f\n", m.BalanceVolatility)

	writeScore(p, a.Score)

	p.heading("Recommendation")
	r := a.Recommendation
	p.printf("Tier:    %s\n", r.Tier)
	p.printf("%s\n", r.Headline)
	if r.Product != "" {
		p.printf("Product: %s\n", r.Product)
	}
	if r.MaxAmount > 0 {
		p.printf("Up to:   %s\n", money.Rupees(r.MaxAmount))
	}
	if r.Advice != "" {
		p.printf("Advice:  %s\n", r.Advice)
	}

	if l := a.Loans; l != nil {
		p.heading("Loan Activity")
		p.printf("Borrowed:      %s (%d receipts)\n", money.Rupees(l.TotalLoanAmount), len(l.LoanReceiptDates))
		p.printf("Repaid:        %s (%d repayments)\n", money.Rupees(l.TotalRepaid), l.RepaymentCount)
		p.printf("Repaid %%:      %.2f%%\n", l.RepaymentPercentage)
		p.printf("Interest Rate: %.2f%%\n", l.InterestRate)
	}

	if agg := a.Aggregates; agg != nil {
		writeCategories(p, "Spend by Category", agg.SpendByCategory)
		writeCategories(p, "Income by Category", agg.IncomeByCategory)
		writeTransactions(p, agg.Transactions)
	}

	return p.err
}

func writeScore(p *printer, b domain.ScoreBreakdown) {
	p.heading(fmt.Sprintf("Score (%s)", b.Strategy))
	p.printf("Total: %.2f / 100\n", b.Total)
	for _, c := range b.Components {
		p.printf("  %-24s %6.2f / %.0f\n", c.Name, c.Value, c.Max)
	}
}

func writeCategories(p *printer, title string, totals map[domain.Category]float64) {
	if len(totals) == 0 {
		return
	}
	p.heading(title)

	names := make([]string, 0, len(totals))
	for c := range totals {
		names = append(names, string(c))
	}
	sort.Strings(names)
	for _, name := range names {
		p.printf("  %-20s %s\n", name, money.Rupees(totals[domain.Category(name)]))
	}
}

func writeTransactions(p *printer, txs []domain.Transaction) {
	if len(txs) == 0 {
		return
	}
	p.heading("Transactions")
	if p.err != nil {
		return
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tCREDIT\tDEBIT\tBALANCE\tCATEGORY")
	for i, tx := range txs {
		if i == maxRows {
			fmt.Fprintf(tw, "... %d more\t\t\t\t\t\n", len(txs)-maxRows)
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Description, money.Amount(tx.Credit), money.Amount(tx.Debit), money.Amount(tx.Balance), tx.Category)
	}
	p.err = tw.Flush()
}

// Assessments writes a one-line-per-assessment table.
func Assessments(w io.Writer, list []*domain.Assessment) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No assessments found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSTRATEGY\tSCORE\tTIER\tCUSTOMER")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.Strategy, a.Score.Total, a.Recommendation.Tier, a.Profile.CustomerID)
	}
	return tw.Flush()
}

// Marketplace writes the credit score, tips and matching offers.
func Marketplace(w io.Writer, r *marketplace.Result) error {
	p := &printer{w: w}

	writeScore(p, r.Score)
	p.printf("Monthly income estimate: %s\n", money.Rupees(r.MonthlyIncome))

	if len(r.Tips) > 0 {
		p.heading("Improvement Tips")
		for _, tip := range r.Tips {
			p.printf("- %s\n", tip)
		}
	}

	p.heading(fmt.Sprintf("Loan Offers (%d)", len(r.Offers)))
	if len(r.Offers) == 0 {
		p.printf("No loans match the selected filters.\n")
	}
	for _, o := range r.Offers {
		l := o.Loan
		status := "not eligible"
		if o.Eligible {
			status = "eligible"
		}
		p.printf("\n%s (%s) [%s]\n", l.Name, l.Provider, status)
		p.printf("  Category:   %s\n", o.Category)
		p.printf("  Interest:   %.2f%%\n", l.InterestRate)
		p.printf("  Amount:     %s - %s\n", money.Rupees(l.MinAmount), money.Rupees(l.MaxAmount))
		p.printf("  Tenure:     %d-%d months\n", l.Tenure.MinMonths, l.Tenure.MaxMonths)
		p.printf("  Processing: %s, fee %.2f%%\n", l.ProcessingTime, l.ProcessingFee)
		if u := o.Upgrade; u != nil {
			if u.Eligible {
				p.printf("  Upgrade:    %.2f%% with up to %s more\n", u.NewInterestRate, money.Rupees(u.MaxAmountIncrease))
			} else if u.Message != "" {
				p.printf("  Upgrade:    %s\n", u.Message)
			}
		}
	}

	if r.AdditionalLoans != domain.StatusOK {
		p.printf("\nAI-suggested loans: %s\n", r.AdditionalLoans)
	}
	return p.err
}

// Insights writes the insight narrative and learning material.
func Insights(w io.Writer, r *insights.Report) error {
	p := &printer{w: w}

	p.heading("AI Insights")
	if r.Insight.Status != domain.StatusOK {
		p.printf("(%s: showing computed analysis)\n", r.Insight.Status)
	}
	p.printf("%s\n", strings.TrimSpace(r.Insight.Markdown))

	l := r.Learning
	p.heading(fmt.Sprintf("Learning (%s)", l.Language))
	if l.Tips != "" {
		p.printf("%s\n", strings.TrimSpace(l.Tips))
	} else {
		p.printf("Localized tips %s.\n", l.TipsStatus)
	}

	if len(l.Videos) > 0 {
		p.printf("\nVideos:\n")
		for _, v := range l.Videos {
			p.printf("- %s (%s) %s\n", v.Title, v.Channel, v.Link)
		}
	}

	p.printf("\nGovernment resources:\n")
	for _, res := range l.Resources {
		p.printf("- %s: %s\n", res.Name, res.URL)
	}

	if len(r.GeneralTips) > 0 {
		p.heading("General Tips")
		for _, tip := range r.GeneralTips {
			p.printf("- %s\n", tip)
		}
	}
	return p.err
}
