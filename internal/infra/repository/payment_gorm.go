package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, p model.Payment) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&p).Error
	return translate(err)
}

// 支払い→注文→明細→チケット、注文→ユーザー
func (r *PaymentGormRepository) FindByIDWithDetails(ctx context.Context, paymentID string) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.User").
		Preload("Order.Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position asc") }).
		Preload("Order.Items.Ticket").
		Where("id = ?", paymentID).
		First(&p).Error
	if err != nil {
		return model.Payment{}, translate(err)
	}
	return p, nil
}
