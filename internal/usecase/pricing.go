package usecase

import "github.com/shopspring/decimal"

// カート集計。snapshotに対する純関数。
type CartSummary struct {
	TotalItems int64           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	ItemCount  int             `json:"itemCount"`
}

// チェックアウト時の金額内訳。
// 税は割引前のsubtotalに掛ける（割引後ではない）。
type CheckoutTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Taxes    decimal.Decimal `json:"taxes"`
	Total    decimal.Decimal `json:"total"`
}

var (
	// subtotalがこれを超えたら定額割引
	discountThreshold = decimal.NewFromInt(100)
	flatDiscount      = decimal.NewFromInt(10)
	taxRate           = decimal.RequireFromString("0.1")
)

// Summarizeはカート1件ごとの (数量 × 現在単価) を集計する。
func Summarize(items []CartItemView) CartSummary {
	var totalItems int64 = 0
	totalPrice := decimal.Zero

	for _, it := range items {
		totalItems += it.Quantity
		totalPrice = totalPrice.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	return CartSummary{
		TotalItems: totalItems,
		TotalPrice: totalPrice,
		ItemCount:  len(items),
	}
}

// ComputeCheckoutTotalsは割引と税を計算する。
//   - discount: subtotal > 100 なら定額10、それ以外は0
//   - taxes: subtotalの10%
//   - total: subtotal + taxes - discount
func ComputeCheckoutTotals(subtotal decimal.Decimal) CheckoutTotals {
	discount := decimal.Zero
	if subtotal.GreaterThan(discountThreshold) {
		discount = flatDiscount
	}

	taxes := subtotal.Mul(taxRate)

	return CheckoutTotals{
		Subtotal: subtotal,
		Discount: discount,
		Taxes:    taxes,
		Total:    subtotal.Add(taxes).Sub(discount),
	}
}
