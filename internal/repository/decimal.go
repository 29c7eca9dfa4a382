package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Денежные колонки читаются через ::text и парсятся в decimal, чтобы суммы
// никогда не проходили через двоичные float.

func parseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse amount %q: %w", value, err)
	}
	return amount, nil
}

func parseAmountPtr(value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}

	amount, err := parseAmount(*value)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func amountParam(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func amountParamPtr(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}

	value := amountParam(*amount)
	return &value
}
