package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"
)

type UserOutput struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

// register/loginの共通レスポンス
type AuthOutput struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	User        UserOutput `json:"user"`
}

type AuthUsecase struct {
	users     repo.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    AccessTokenIssuer
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen IDGenerator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		idGen:     idGen,
		clock:     clock,
	}
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthOutput, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateRegister(ctx, email, in.Password, name); err != nil {
		return AuthOutput{}, err
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return AuthOutput{}, Internal(err)
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Role:         model.RoleUser, // 初期はUSER
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	//同時登録でvalidatorをすり抜けた重複は一意制約で止まる
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrConstraint) {
			return AuthOutput{}, Conflict("email already registered")
		}
		return AuthOutput{}, Internal(err)
	}

	return u.issue(*user, now)
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthOutput, error) {
	email := normalizeEmail(in.Email)

	if err := u.validator.ValidateLogin(ctx, email, in.Password); err != nil {
		return AuthOutput{}, err
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthOutput{}, Internal(err)
	}
	//メール不明とパスワード違いは同じエラー
	if user == nil || !u.verifier.Verify(in.Password, user.PasswordHash) {
		return AuthOutput{}, Unauthorized("invalid credentials")
	}

	return u.issue(*user, u.clock.Now())
}

func (u *AuthUsecase) Me(ctx context.Context, userID string) (UserOutput, error) {
	if !isUUID(userID) {
		return UserOutput{}, NotFound("User not found")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return UserOutput{}, Internal(err)
	}
	if user == nil {
		return UserOutput{}, NotFound("User not found")
	}
	return toUserOutput(*user), nil
}

func (u *AuthUsecase) issue(user model.User, now time.Time) (AuthOutput, error) {
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return AuthOutput{}, Internal(err)
	}
	return AuthOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(exp.Sub(now).Seconds()),
		User:        toUserOutput(user),
	}, nil
}
