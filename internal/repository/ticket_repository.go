package repository

import (
	"context"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/shopspring/decimal"
)

// nilの列は書かない。在庫は注文Txでも減るので、明示されたときだけ上書きする
type TicketChanges struct {
	Title       *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	ImageURL    *string
	Stock       *int64
	IsActive    *bool
	UpdatedAt   time.Time
}

// チケットの永続化（保存・取得）だけを約束。
type TicketRepository interface {
	//有効なチケットを新しい順で返す
	ListActive(ctx context.Context) ([]model.Ticket, error)
	FindByID(ctx context.Context, id string) (model.Ticket, error)
	FindByTitle(ctx context.Context, title string) (model.Ticket, error)

	//行ロック付きで取得。idの昇順でロックする（Tx内でのみ使う）
	FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Ticket, error)

	Create(ctx context.Context, t model.Ticket) (model.Ticket, error)
	Update(ctx context.Context, id string, ch TicketChanges) error
	SoftDelete(ctx context.Context, id string) error
}
