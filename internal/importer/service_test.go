package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/importer"
)

func TestService_Import(t *testing.T) {
	nubank := "Data,Valor,Identificador,Descrição\n" +
		"05/05/2026,-45.90,6a1f,Compra no débito - Padaria\n"

	type args struct {
		bank    importer.Bank
		content string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		wantErr bool
	}

	tests := []testCase{
		{name: "Auto", args: args{bank: importer.BankAuto, content: nubank}, wantLen: 1},
		{name: "MatchingBank", args: args{bank: importer.BankNubank, content: nubank}, wantLen: 1},
		{name: "WrongBank", args: args{bank: importer.BankItau, content: nubank}, wantErr: true},
		{name: "UnknownBank", args: args{bank: importer.Bank("cgd"), content: nubank}, wantErr: true},
	}

	svc := importer.NewService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Import(tt.args.bank, strings.NewReader(tt.args.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
