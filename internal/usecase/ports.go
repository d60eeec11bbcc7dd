package usecase

import (
	"context"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// コミット後のイベント送信（Kafka）
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error
	PublishPaymentRecorded(ctx context.Context, ev model.PaymentRecordedEvent) error
}

// ユーザーごとの注文一覧キャッシュ（Redis）
// SetはGetが返した世代にだけ書く。間にInvalidateされていれば、その値はもう読まれない
type OrderListCache interface {
	Get(ctx context.Context, userID string) (orders []model.Order, gen string, hit bool, err error)
	Set(ctx context.Context, userID, gen string, orders []model.Order) error
	Invalidate(ctx context.Context, userID string) error
	InvalidateAll(ctx context.Context) error
}

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID string, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, email string, password string, name string) error
	ValidateLogin(ctx context.Context, email string, password string) error
}

// リクエストしたユーザー（middlewareがJWTから取り出す）
type Actor struct {
	UserID string
	Role   model.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// 本人か管理者なら見える
func (a Actor) CanAccess(ownerID string) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
