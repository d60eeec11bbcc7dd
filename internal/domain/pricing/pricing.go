// Package pricing は注文金額の計算だけを持つ。DBにもI/Oにも触らない。
package pricing

import "github.com/shopspring/decimal"

// 税率19%（設定では変えない）
var TaxRate = decimal.RequireFromString("0.19")

// 税は小数2桁に丸める（0.5は0から遠い方へ）
const taxPlaces = 2

// 保存できる上限。単価はNUMERIC(10,2)、明細・合計・支払額はNUMERIC(12,2)
var (
	MaxUnitPrice = decimal.RequireFromString("99999999.99")
	MaxAmount    = decimal.RequireFromString("9999999999.99")
)

// 金額は小数2桁まで
func HasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int64
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// 単価×数量（丸めなし）
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// 明細順に合計し、税と総額を出す。total = subtotal + tax
func Compute(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(LineTotal(l.UnitPrice, l.Quantity))
	}
	tax := subtotal.Mul(TaxRate).Round(taxPlaces)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
