package importer

import (
	"io"

	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

// Bank selects the statement layouts to try. BankAuto tries all of them.
type Bank string

const (
	BankAuto     Bank = ""
	BankNubank   Bank = "nubank"
	BankInter    Bank = "inter"
	BankBradesco Bank = "bradesco"
	BankItau     Bank = "itau"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}
