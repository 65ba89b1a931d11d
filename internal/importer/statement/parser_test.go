package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/finsight/internal/importer/statement"
	"github.com/MrJamesThe3rd/finsight/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_NubankConta(t *testing.T) {
	csv := `Data,Valor,Identificador,Descrição
01/05/2026,5000.00,68e1a3f0-1,Transferência recebida pelo Pix - EMPRESA LTDA
03/05/2026,-45.90,68e1a3f0-2,Compra no débito - PADARIA BOM PAO
04/05/2026,-1500.00,68e1a3f0-3,"Pagamento de boleto efetuado - ALUGUEL, MAIO"
`

	txs, err := statement.NewParser("nubank").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, date(2026, 5, 1), txs[0].Date)
	assert.Equal(t, transaction.TypeIncome, txs[0].Type)
	assert.True(t, amount("5000").Equal(txs[0].Amount))

	assert.Equal(t, "Compra no débito - PADARIA BOM PAO", txs[1].Description)
	assert.Equal(t, transaction.TypeExpense, txs[1].Type)
	assert.True(t, amount("45.90").Equal(txs[1].Amount))

	assert.Equal(t, "Pagamento de boleto efetuado - ALUGUEL, MAIO", txs[2].Description)
}

func TestParser_NubankCartao(t *testing.T) {
	csv := `date,title,amount
2026-05-03,Uber *Trip,23.45
2026-05-04,Pagamento recebido,-800.00
2026-05-05,Estorno de tarifa,0
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Uber *Trip", txs[0].Description)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, amount("23.45").Equal(txs[0].Amount))

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.True(t, amount("800").Equal(txs[1].Amount))
}

func TestParser_InterWithPreamble(t *testing.T) {
	csv := `Extrato Conta Corrente
Conta ;12345678
Período ;01/05/2026 a 31/05/2026
Saldo ;1.234,56

Data Lançamento;Histórico;Descrição;Valor;Saldo
02/05/2026;Pix enviado;Fulano de Tal;-150,00;1.084,56
05/05/2026;Pix recebido;Cliente X;2.500,75;3.585,31
`

	txs, err := statement.NewParser("inter").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Pix enviado - Fulano de Tal", txs[0].Description)
	assert.True(t, amount("150").Equal(txs[0].Amount))
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)

	assert.Equal(t, date(2026, 5, 5), txs[1].Date)
	assert.True(t, amount("2500.75").Equal(txs[1].Amount))
	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
}

func TestParser_BradescoSplitColumns(t *testing.T) {
	csv := `Data;Lançamento;Dcto.;Crédito (R$);Débito (R$);Saldo (R$)
02/05/26;SALDO ANTERIOR;;;;1.000,00
03/05/26;CONTA DE LUZ;123;;189,32;810,68
04/05/26;TRANSF SALDO C/SAL;456;4.200,00;;5.010,68
Total;;;4.200,00;189,32;
`

	txs, err := statement.NewParser("bradesco").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, date(2026, 5, 3), txs[0].Date)
	assert.Equal(t, transaction.TypeExpense, txs[0].Type)
	assert.True(t, amount("189.32").Equal(txs[0].Amount))

	assert.Equal(t, transaction.TypeIncome, txs[1].Type)
	assert.True(t, amount("4200").Equal(txs[1].Amount))
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "data;lançamento;valor\n03/05/2026;PÃO DE AÇÚCAR;-89,90\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	txs, err := statement.NewParser("itau").Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "PÃO DE AÇÚCAR", txs[0].Description)
	assert.True(t, amount("89.90").Equal(txs[0].Amount))
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `valor;data;lançamento;ignored
-10,00;30/01/2026;TEST_ORDER;XXX
`

	txs, err := statement.NewParser("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, "TEST_ORDER", txs[0].Description)
	assert.True(t, amount("10").Equal(txs[0].Amount))
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := statement.NewParser("").Parse(strings.NewReader(""))
	assert.ErrorContains(t, err, "no matching statement format")
}

func TestParser_HeaderOnly(t *testing.T) {
	txs, err := statement.NewParser("").Parse(strings.NewReader("Data,Valor,Identificador,Descrição\n"))
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `data;lançamento;valor
30/01/2026;;-10,00
`

	_, err := statement.NewParser("itau").Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "row 2: missing description")
}

func TestParser_UnknownBank(t *testing.T) {
	_, err := statement.NewParser("cgd").Parse(strings.NewReader("x"))
	assert.Error(t, err)
}

func TestBanks(t *testing.T) {
	assert.Equal(t, []string{"nubank", "inter", "bradesco", "itau"}, statement.Banks())
}
