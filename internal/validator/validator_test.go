package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finsight/internal/validator"
)

type convertRequest struct {
	Amount decimal.Decimal `validate:"gte=0"`
	From   string          `validate:"required,currencycode"`
	Note   string          `validate:"omitempty,notblank"`
}

func TestValidate(t *testing.T) {
	type testCase struct {
		name    string
		input   convertRequest
		wantErr bool
	}

	tests := []testCase{
		{name: "Valid", input: convertRequest{Amount: decimal.NewFromInt(10), From: "BRL"}},
		{name: "LowercaseCode", input: convertRequest{Amount: decimal.Zero, From: "usd"}},
		{name: "CodeMissingFromCLDR", input: convertRequest{Amount: decimal.NewFromInt(1), From: "VES"}},
		{name: "MalformedCode", input: convertRequest{Amount: decimal.NewFromInt(1), From: "XYZ1"}, wantErr: true},
		{name: "MissingCode", input: convertRequest{Amount: decimal.NewFromInt(1)}, wantErr: true},
		{name: "NegativeAmount", input: convertRequest{Amount: decimal.NewFromInt(-1), From: "BRL"}, wantErr: true},
		{name: "BlankNote", input: convertRequest{Amount: decimal.NewFromInt(1), From: "BRL", Note: "   "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.Validate.Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
		})
	}
}
