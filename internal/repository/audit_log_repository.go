package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

// nilの条件は絞り込まない。Limitが0なら既定件数
type AuditLogFilter struct {
	ResourceType *model.AuditResourceType
	ResourceID   *string
	Action       *model.AuditAction
	Limit        int
	Offset       int
}

type AuditLogRepository interface {
	// チケット更新と同じTxで書く
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, filter AuditLogFilter) ([]model.AuditLog, error)
}
