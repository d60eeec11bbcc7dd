package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// 作成時にステータス確定。以後更新しない
type Payment struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	Provider    string          `gorm:"type:varchar(100);not null" json:"provider"`
	ProviderRef *string         `gorm:"type:varchar(255)" json:"provider_ref"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status      PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}
