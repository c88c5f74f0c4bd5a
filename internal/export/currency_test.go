package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		symbol   string
		amount   string
		expected string
	}{
		{name: "should format zero", symbol: "$", amount: "0", expected: "$0.00"},
		{name: "should pad to two places", symbol: "$", amount: "12.5", expected: "$12.50"},
		{name: "should leave three digits ungrouped", symbol: "$", amount: "999.99", expected: "$999.99"},
		{name: "should group thousands", symbol: "$", amount: "1234.5", expected: "$1,234.50"},
		{name: "should group millions", symbol: "€", amount: "1234567.891", expected: "€1,234,567.89"},
		{name: "should place the sign before the symbol", symbol: "$", amount: "-4321", expected: "-$4,321.00"},
		{name: "should carry rounding into the grouped part", symbol: "$", amount: "999.996", expected: "$1,000.00"},
		{name: "should drop the sign of a negative amount that rounds to zero", symbol: "$", amount: "-0.001", expected: "$0.00"},
		{name: "should group amounts beyond int64", symbol: "$", amount: "12345678901234567890.10", expected: "$12,345,678,901,234,567,890.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.symbol, decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.50", FormatHours(decimal.RequireFromString("7.5")))
}
