package repository

import (
	"context"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
)

// Find系は見つからないときnil, nilを返す
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// 名前とロールだけ（seedと管理者昇格で使う）
	Update(ctx context.Context, user *model.User) error
}
