package usecase

import (
	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 在庫チェックを通った明細。単価はこの時点で確定
type ValidatedLine struct {
	Ticket    model.Ticket
	Quantity  int64
	UnitPrice decimal.Decimal
}

// 1明細分の販売可否。非公開→在庫の順に見る
func GuardLine(t model.Ticket, quantity int64) (ValidatedLine, error) {
	if !t.IsActive {
		return ValidatedLine{}, InvalidState("Ticket %s is not active", t.Title)
	}
	if quantity > t.Stock {
		return ValidatedLine{}, InvalidState("Insufficient stock for ticket %s", t.Title)
	}
	return ValidatedLine{
		Ticket:    t,
		Quantity:  quantity,
		UnitPrice: t.Price,
	}, nil
}
