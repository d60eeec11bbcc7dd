package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 明細は登録順、支払いは古い順
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Preload("Items.Ticket").
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at asc") })
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) error {
	// 関連はOrderItemRepositoryで保存する
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&order).Error
	return translate(err)
}

func (r *OrderGormRepository) FindByIDWithDetails(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := withDetails(r.db.WithContext(ctx)).Where("id = ?", orderID).First(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

func (r *OrderGormRepository) ListByUserIDWithDetails(ctx context.Context, userID string) ([]model.Order, error) {
	var items []model.Order
	err := withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", orderID).
		First(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

// PENDING→PAIDの一方向のみ
func (r *OrderGormRepository) MarkPaid(ctx context.Context, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderStatusPending).
		Update("status", model.OrderStatusPaid)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
