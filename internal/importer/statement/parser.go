// Package statement parses bank statement CSV exports into transaction params.
package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/finsight/internal/encoding"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

// Parser detects which of its profiles a file uses by matching column headers.
type Parser struct {
	profiles []Profile
}

// NewParser restricts detection to the given bank. An empty bank accepts every known
// layout.
func NewParser(bank string) *Parser {
	if bank == "" {
		return &Parser{profiles: profiles}
	}

	var selected []Profile

	for _, p := range profiles {
		if p.Bank == bank {
			selected = append(selected, p)
		}
	}

	return &Parser{profiles: selected}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	if len(p.profiles) == 0 {
		return nil, fmt.Errorf("no statement layouts configured")
	}

	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, delim := range p.delimiters() {
		rows, err := readRows(content, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := p.detectProfile(rows, delim)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("no matching statement format found")
}

func (p *Parser) delimiters() []rune {
	var delims []rune

	for _, pr := range p.profiles {
		if !slices.Contains(delims, pr.Delimiter) {
			delims = append(delims, pr.Delimiter)
		}
	}

	return delims
}

func readRows(content []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile returns the first profile whose columns all appear in one row, along
// with that row's column map and index.
func (p *Parser) detectProfile(rows [][]string, delim rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range p.profiles {
			pr := &p.profiles[i]
			if pr.Delimiter == delim && matchesProfile(pr, cols) {
				return pr, cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows skips rows without a parsable date or a non-zero amount, such as balance
// lines and footers. firstRow is the 0-based file index of rows[0].
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRow int) ([]transaction.CreateParams, error) {
	var txs []transaction.CreateParams

	for i, row := range rows {
		date, ok := parseDate(cellValue(row, cols[p.DateCol]), p.DateLayout)
		if !ok {
			continue
		}

		amount, kind, ok := parseRowAmount(p, cols, row)
		if !ok {
			continue
		}

		desc := description(p, cols, row)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", firstRow+i+1)
		}

		txs = append(txs, transaction.CreateParams{
			Amount:      amount,
			Type:        kind,
			Description: desc,
			Date:        date,
		})
	}

	return txs, nil
}

func parseDate(s, layout string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func description(p *Profile, cols colIndex, row []string) string {
	var parts []string

	for _, name := range p.DescCols {
		if v := cellValue(row, cols[name]); v != "" {
			parts = append(parts, v)
		}
	}

	return strings.Join(parts, " - ")
}

func parseRowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, transaction.Type, bool) {
	switch p.AmountMode {
	case amountSigned:
		return signedAmount(cellValue(row, cols[p.AmountCol]), p.Decimal, p.PositiveIsExpense)
	case amountSplit:
		return splitAmount(cellValue(row, cols[p.DebitCol]), cellValue(row, cols[p.CreditCol]), p.Decimal)
	}

	return decimal.Decimal{}, "", false
}

func signedAmount(s string, style decimalStyle, positiveIsExpense bool) (decimal.Decimal, transaction.Type, bool) {
	if s == "" {
		return decimal.Decimal{}, "", false
	}

	d, err := parseAmount(s, style)
	if err != nil || d.IsZero() {
		return decimal.Decimal{}, "", false
	}

	income := d.IsPositive() != positiveIsExpense
	if income {
		return d.Abs(), transaction.TypeIncome, true
	}

	return d.Abs(), transaction.TypeExpense, true
}

func splitAmount(debit, credit string, style decimalStyle) (decimal.Decimal, transaction.Type, bool) {
	if debit != "" {
		if d, err := parseAmount(debit, style); err == nil && !d.IsZero() {
			return d.Abs(), transaction.TypeExpense, true
		}
	}

	if credit != "" {
		if d, err := parseAmount(credit, style); err == nil && !d.IsZero() {
			return d.Abs(), transaction.TypeIncome, true
		}
	}

	return decimal.Decimal{}, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
