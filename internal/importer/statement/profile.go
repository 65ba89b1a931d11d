package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned is one signed column ("Valor" with "-45,90").
	amountSigned amountMode = iota
	// amountSplit is a pair of unsigned debit and credit columns.
	amountSplit
)

// decimalStyle is the notation of amounts in a statement.
type decimalStyle int

const (
	// decimalComma is the Brazilian notation, "1.234,56".
	decimalComma decimalStyle = iota
	// decimalDot is "1234.56" or "1,234.56".
	decimalDot
)

// Profile describes the layout of one bank's CSV export.
type Profile struct {
	Name       string
	Bank       string
	Delimiter  rune
	DateCol    string
	DateLayout string
	DescCols   []string
	AmountMode amountMode
	AmountCol  string // amountSigned
	DebitCol   string // amountSplit
	CreditCol  string // amountSplit
	Decimal    decimalStyle
	// PositiveIsExpense flips the sign convention for card statements, where charges are
	// listed as positive values and payments or refunds as negative ones.
	PositiveIsExpense bool
}

func (p Profile) requiredCols() []string {
	cols := append([]string{p.DateCol}, p.DescCols...)

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order during detection; layouts with more required columns come
// first so they are not shadowed by a looser match.
var profiles = []Profile{
	{
		Name:       "conta",
		Bank:       "nubank",
		Delimiter:  ',',
		DateCol:    "Data",
		DateLayout: "02/01/2006",
		DescCols:   []string{"Descrição"},
		AmountMode: amountSigned,
		AmountCol:  "Valor",
		Decimal:    decimalDot,
	},
	{
		Name:              "cartão",
		Bank:              "nubank",
		Delimiter:         ',',
		DateCol:           "date",
		DateLayout:        "2006-01-02",
		DescCols:          []string{"title"},
		AmountMode:        amountSigned,
		AmountCol:         "amount",
		Decimal:           decimalDot,
		PositiveIsExpense: true,
	},
	{
		Name:       "extrato",
		Bank:       "inter",
		Delimiter:  ';',
		DateCol:    "Data Lançamento",
		DateLayout: "02/01/2006",
		DescCols:   []string{"Histórico", "Descrição"},
		AmountMode: amountSigned,
		AmountCol:  "Valor",
		Decimal:    decimalComma,
	},
	{
		Name:       "extrato",
		Bank:       "bradesco",
		Delimiter:  ';',
		DateCol:    "Data",
		DateLayout: "02/01/06",
		DescCols:   []string{"Lançamento"},
		AmountMode: amountSplit,
		DebitCol:   "Débito (R$)",
		CreditCol:  "Crédito (R$)",
		Decimal:    decimalComma,
	},
	{
		Name:       "extrato",
		Bank:       "itau",
		Delimiter:  ';',
		DateCol:    "data",
		DateLayout: "02/01/2006",
		DescCols:   []string{"lançamento"},
		AmountMode: amountSigned,
		AmountCol:  "valor",
		Decimal:    decimalComma,
	},
}

// Banks lists the distinct bank identifiers that have at least one profile.
func Banks() []string {
	var banks []string

	seen := make(map[string]bool)
	for _, p := range profiles {
		if !seen[p.Bank] {
			seen[p.Bank] = true
			banks = append(banks, p.Bank)
		}
	}

	return banks
}
