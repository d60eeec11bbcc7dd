package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) error

	//明細・チケット・支払い・ユーザーまで読み込んで返す
	FindByIDWithDetails(ctx context.Context, orderID string) (model.Order, error)
	//新しい順
	ListByUserIDWithDetails(ctx context.Context, userID string) ([]model.Order, error)

	//Tx内で注文行をロックして取得
	FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error)

	//PENDINGのときだけPAIDにする。更新できたらtrue
	MarkPaid(ctx context.Context, orderID string) (bool, error)
}
