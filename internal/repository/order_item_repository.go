package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

// 明細の読み出しはOrderRepositoryのPreloadで行う
type OrderItemRepository interface {
	// itemsのOrderIDはorderIDで上書きする
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
}
