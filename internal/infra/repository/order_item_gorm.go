package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

// 1回のINSERTでまとめて書く。Ticketは関連ごと保存しない
func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]model.OrderItem, len(items))
	for i, it := range items {
		it.OrderID = orderID
		it.Ticket = nil
		rows[i] = it
	}
	return translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		CreateInBatches(rows, 100).Error)
}
