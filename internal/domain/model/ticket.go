package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// メニュー1品＝販売チケット
// 削除はis_active=falseのみ（注文から参照されるため物理削除しない）
type Ticket struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(100)" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:text;column:image_url" json:"image_url"`
	Stock       int64           `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
