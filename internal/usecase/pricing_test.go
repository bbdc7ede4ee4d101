package usecase_test

import (
	"testing"

	"market/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	items := []usecase.CartItemView{
		{Quantity: 2, Price: d("19.99")},
		{Quantity: 1, Price: d("50.00")},
	}

	s := usecase.Summarize(items)

	assert.Equal(t, int64(3), s.TotalItems)
	assert.Equal(t, 2, s.ItemCount)
	assert.True(t, s.TotalPrice.Equal(d("89.98")), "got %s", s.TotalPrice)
}

func TestSummarize_Empty(t *testing.T) {
	s := usecase.Summarize(nil)

	assert.Equal(t, int64(0), s.TotalItems)
	assert.Equal(t, 0, s.ItemCount)
	assert.True(t, s.TotalPrice.IsZero())
}

// 0.1のような二進数で表せない単価でも誤差なく合計できること
func TestSummarize_DecimalExact(t *testing.T) {
	items := []usecase.CartItemView{
		{Quantity: 1, Price: d("0.10")},
		{Quantity: 1, Price: d("0.10")},
		{Quantity: 1, Price: d("0.10")},
	}

	s := usecase.Summarize(items)

	assert.True(t, s.TotalPrice.Equal(d("0.30")), "got %s", s.TotalPrice)
}

func TestComputeCheckoutTotals(t *testing.T) {
	cases := []struct {
		name     string
		subtotal string
		discount string
		taxes    string
		total    string
	}{
		{"下限あたり", "50", "0", "5", "55"},
		{"ちょうど100は割引なし", "100", "0", "10", "110"},
		{"100超で定額割引", "100.01", "10", "10.001", "100.011"},
		{"割引前に課税", "150", "10", "15", "155"},
		{"空カート相当", "0", "0", "0", "0"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := usecase.ComputeCheckoutTotals(d(c.subtotal))

			assert.True(t, got.Subtotal.Equal(d(c.subtotal)), "subtotal: got %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(d(c.discount)), "discount: got %s", got.Discount)
			assert.True(t, got.Taxes.Equal(d(c.taxes)), "taxes: got %s", got.Taxes)
			assert.True(t, got.Total.Equal(d(c.total)), "total: got %s", got.Total)
		})
	}
}
