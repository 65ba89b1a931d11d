package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/finsight/internal/importer/statement"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

type Service struct {
	importers map[Bank]Importer
}

func NewService() *Service {
	importers := map[Bank]Importer{
		BankAuto: statement.NewParser(""),
	}

	for _, b := range statement.Banks() {
		importers[Bank(b)] = statement.NewParser(b)
	}

	return &Service{importers: importers}
}

// Import parses r with the layouts of bank. Returned params carry no owner or category.
func (s *Service) Import(bank Bank, r io.Reader) ([]transaction.CreateParams, error) {
	importer, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return importer.Parse(r)
}
