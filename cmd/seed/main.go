package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/config"
	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/infra/db"
	infraRepo "github.com/miigangls/restaurant-tickets/internal/infra/repository"
	"github.com/miigangls/restaurant-tickets/internal/infra/security"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// 何度実行しても同じ状態になる（email/titleで存在確認）
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gormDB, err := db.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := seedAdmin(ctx, infraRepo.NewUserGormRepository(gormDB), logger); err != nil {
		logger.Error("seed admin failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seedTickets(ctx, infraRepo.NewTicketGormRepository(gormDB), logger); err != nil {
		logger.Error("seed tickets failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seed completed", slog.String("admin", "admin@demo.com / Admin123!"))
}

func seedAdmin(ctx context.Context, users repo.UserRepository, logger *slog.Logger) error {
	const email = "admin@demo.com"

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Info("admin already exists", slog.String("email", email))
		return nil
	}

	hashed, err := security.NewBcryptPasswordHasher(10).Hash("Admin123!")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	return users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
		Name:         "Admin User",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedTickets(ctx context.Context, tickets repo.TicketRepository, logger *slog.Logger) error {
	menu := []model.Ticket{
		{
			Title:       "Filete de Res",
			Description: "Filete de res a la parrilla con papas fritas y vegetales",
			Category:    "Platos Principales",
			Price:       decimal.RequireFromString("24.99"),
			Stock:       50,
		},
		{
			Title:       "Salmón a la Parrilla",
			Description: "Salmón fresco con arroz y vegetales al vapor",
			Category:    "Platos Principales",
			Price:       decimal.RequireFromString("22.99"),
			Stock:       30,
		},
		{
			Title:       "Tiramisú",
			Description: "Clásico postre italiano",
			Category:    "Postres",
			Price:       decimal.RequireFromString("7.99"),
			Stock:       20,
		},
	}

	for _, t := range menu {
		_, err := tickets.FindByTitle(ctx, t.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		t.ID = uuid.NewString()
		t.IsActive = true
		t.CreatedAt = now
		t.UpdatedAt = now
		if _, err := tickets.Create(ctx, t); err != nil {
			return err
		}
		logger.Info("ticket created", slog.String("title", t.Title))
	}
	return nil
}
