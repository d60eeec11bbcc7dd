package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす
// UPDATE tickets SET stock = stock - q WHERE id = ? AND stock >= q
// 0件更新なら false（在庫不足 or 行なし）
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, ticketID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ? AND stock >= ?", ticketID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
