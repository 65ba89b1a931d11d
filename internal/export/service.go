package export

import (
	"archive/zip"
	"cmp"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/period"
	"github.com/MrJamesThe3rd/finsight/internal/summary"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type SummaryBuilder interface {
	Summary(ctx context.Context, owner uuid.UUID, w period.Window) (*summary.Summary, error)
}

// Report is everything exported for one owner and window.
type Report struct {
	Window       period.Window
	Transactions []*transaction.Transaction
	Summary      *summary.Summary
}

// Service gathers reports for download.
type Service struct {
	transactions TransactionLister
	summaries    SummaryBuilder
}

func NewService(transactions TransactionLister, summaries SummaryBuilder) *Service {
	return &Service{
		transactions: transactions,
		summaries:    summaries,
	}
}

// Build loads the transactions of the window oldest first, together with its summary.
func (s *Service) Build(ctx context.Context, owner uuid.UUID, w period.Window) (*Report, error) {
	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		Owner:     owner,
		StartDate: new(w.Start),
		EndDate:   new(w.End),
	})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	slices.SortStableFunc(txs, func(a, b *transaction.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	sum, err := s.summaries.Summary(ctx, owner, w)
	if err != nil {
		return nil, fmt.Errorf("building summary: %w", err)
	}

	return &Report{Window: w, Transactions: txs, Summary: sum}, nil
}

// Filename is the suggested name of the zip archive, e.g. finsight_20260501_20260531.zip.
func (r *Report) Filename() string {
	return fmt.Sprintf("finsight_%s_%s.zip", r.Window.Start.Format("20060102"), r.Window.End.Format("20060102"))
}

// WriteCSV writes one row per transaction. Amounts use a dot and two decimals.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "type", "amount", "currency", "category", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range r.Transactions {
		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}

		record := []string{
			tx.Date.Format("2006-01-02"),
			string(tx.Type),
			tx.Amount.StringFixed(2),
			r.Summary.Currency,
			category,
			tx.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// SummaryText renders the summary as plain text, one line per total and category.
func (r *Report) SummaryText() string {
	var sb strings.Builder

	s := r.Summary
	code := s.Currency

	fmt.Fprintf(&sb, "Period: %s to %s\n\n", r.Window.Start.Format("2006-01-02"), r.Window.End.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Income:  %s %s\n", s.TotalIncome.StringFixed(2), code)
	fmt.Fprintf(&sb, "Expense: %s %s\n", s.TotalExpense.StringFixed(2), code)
	fmt.Fprintf(&sb, "Balance: %s %s\n", s.Balance.StringFixed(2), code)

	writeCategories(&sb, "Income by category", s.IncomesByCategory, code)
	writeCategories(&sb, "Expenses by category", s.ExpensesByCategory, code)

	if len(s.AchievedGoals) > 0 {
		sb.WriteString("\nAchieved goals\n")

		goals := slices.Clone(s.AchievedGoals)
		slices.SortFunc(goals, func(a, b summary.GoalTotal) int { return cmp.Compare(a.Name, b.Name) })

		for _, g := range goals {
			fmt.Fprintf(&sb, "* %s | %s %s\n", g.Name, g.TargetAmount.StringFixed(2), code)
		}
	}

	return sb.String()
}

func writeCategories(sb *strings.Builder, title string, totals []summary.CategoryTotal, code string) {
	if len(totals) == 0 {
		return
	}

	fmt.Fprintf(sb, "\n%s\n", title)

	for _, c := range totals {
		fmt.Fprintf(sb, "* %s | %s %s\n", c.CategoryName, c.Amount.StringFixed(2), code)
	}
}

// WriteZip bundles transactions.csv and summary.txt into a zip archive.
func (r *Report) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)

	csvFile, err := zw.Create("transactions.csv")
	if err != nil {
		return fmt.Errorf("creating transactions.csv: %w", err)
	}

	if err := r.WriteCSV(csvFile); err != nil {
		return err
	}

	txtFile, err := zw.Create("summary.txt")
	if err != nil {
		return fmt.Errorf("creating summary.txt: %w", err)
	}

	if _, err := io.WriteString(txtFile, r.SummaryText()); err != nil {
		return fmt.Errorf("writing summary.txt: %w", err)
	}

	return zw.Close()
}
