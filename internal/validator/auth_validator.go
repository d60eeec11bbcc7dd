package validator

import (
	"context"
	"net/mail"
	"regexp"

	"github.com/miigangls/restaurant-tickets/internal/repository"
	"github.com/miigangls/restaurant-tickets/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 8

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証（emailは正規化済みで来る）
func (v *authValidator) ValidateRegister(ctx context.Context, email string, password string, name string) error {
	// 必須チェック
	if email == "" || password == "" || name == "" {
		return usecase.InvalidRequest("email, password and name are required")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.InvalidRequest("invalid email")
	}

	// パスワード最低文字数
	if len(password) < minPasswordLen {
		return usecase.InvalidRequest("password must be at least %d characters", minPasswordLen)
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		return usecase.Internal(err)
	}
	if u != nil {
		return usecase.Conflict("email already registered")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	if email == "" || password == "" {
		return usecase.InvalidRequest("email and password are required")
	}
	if !isEmailLike(email) {
		return usecase.InvalidRequest("invalid email")
	}
	return nil
}

// 簡易メール形式をチェック
func isEmailLike(s string) bool {
	if !emailRe.MatchString(s) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}
