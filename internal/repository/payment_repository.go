package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) error
	//注文（明細・チケット・ユーザー）まで読み込んで返す
	FindByIDWithDetails(ctx context.Context, paymentID string) (model.Payment, error)
}
