package model

import "time"

type AuditAction string

const (
	//チケット（価格・在庫・公開状態など）を更新した操作
	AuditActionUpdateTicket AuditAction = "UPDATE_TICKET"
	//チケットを非公開にした操作（論理削除）
	AuditActionDeleteTicket AuditAction = "DELETE_TICKET"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceTicket AuditResourceType = "ticket"
)

// 監査ログ（管理者操作ログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作した管理者のID
	ActorUserID string `gorm:"type:uuid;not null;index" json:"actor_user_id"`

	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID
	ResourceID string `gorm:"type:uuid;not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
