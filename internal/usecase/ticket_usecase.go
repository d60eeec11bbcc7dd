package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/domain/pricing"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"github.com/shopspring/decimal"
)

type TicketUsecase struct {
	tickets   repo.TicketRepository
	auditLogs repo.AuditLogRepository
	tx        repo.TransactionManager
	cache     OrderListCache // nilならキャッシュなし
	idGen     IDGenerator
	clock     Clock
	logger    *slog.Logger
}

// DI
func NewTicketUsecase(
	tickets repo.TicketRepository,
	auditLogs repo.AuditLogRepository,
	tx repo.TransactionManager,
	cache OrderListCache,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *TicketUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketUsecase{
		tickets:   tickets,
		auditLogs: auditLogs,
		tx:        tx,
		cache:     cache,
		idGen:     idGen,
		clock:     clock,
		logger:    logger,
	}
}

// Tx内で行ロックを取って読む。注文Txの在庫減算と順番に並ぶ
func lockTicket(ctx context.Context, r repo.TxRepos, id string) (model.Ticket, error) {
	locked, err := r.Tickets().FindByIDsForUpdate(ctx, []string{id})
	if err != nil {
		return model.Ticket{}, fromDB(err)
	}
	if len(locked) == 0 {
		return model.Ticket{}, NotFound("Ticket with ID %s not found", id)
	}
	return locked[0], nil
}

// 注文からも使う。形式違いのIDも「見つからない」
func findTicket(ctx context.Context, tickets repo.TicketRepository, id string) (model.Ticket, error) {
	if !isUUID(id) {
		return model.Ticket{}, NotFound("Ticket with ID %s not found", id)
	}
	t, err := tickets.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Ticket{}, NotFound("Ticket with ID %s not found", id)
	}
	if err != nil {
		return model.Ticket{}, Internal(err)
	}
	return t, nil
}

// 公開中のものだけ、新しい順
func (u *TicketUsecase) List(ctx context.Context) ([]TicketOutput, error) {
	tickets, err := u.tickets.ListActive(ctx)
	if err != nil {
		return []TicketOutput{}, Internal(err)
	}
	outs := make([]TicketOutput, 0, len(tickets))
	for _, t := range tickets {
		outs = append(outs, toTicketOutput(t))
	}
	return outs, nil
}

// 非公開でも返す（is_activeで判断できる）
func (u *TicketUsecase) Get(ctx context.Context, id string) (TicketOutput, error) {
	t, err := findTicket(ctx, u.tickets, id)
	if err != nil {
		return TicketOutput{}, err
	}
	return toTicketOutput(t), nil
}

type CreateTicketInput struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
	Stock       *int64 // 省略時0
	IsActive    *bool  // 省略時true
}

func (u *TicketUsecase) Create(ctx context.Context, in CreateTicketInput) (TicketOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return TicketOutput{}, InvalidRequest("title is required")
	}
	if in.Price.IsNegative() {
		return TicketOutput{}, InvalidRequest("price must be >= 0")
	}
	if in.Price.Round(2).GreaterThan(pricing.MaxUnitPrice) {
		return TicketOutput{}, InvalidRequest("price must be <= %s", pricing.MaxUnitPrice.StringFixed(2))
	}
	stock := int64(0)
	if in.Stock != nil {
		stock = *in.Stock
	}
	if stock < 0 {
		return TicketOutput{}, InvalidRequest("stock must be >= 0")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	now := u.clock.Now()
	t, err := u.tickets.Create(ctx, model.Ticket{
		ID:          u.idGen.NewID(),
		Title:       title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Price:       in.Price.Round(2),
		ImageURL:    in.ImageURL,
		Stock:       stock,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, repo.ErrConstraint) {
		return TicketOutput{}, Conflict("ticket title already exists")
	}
	if err != nil {
		return TicketOutput{}, Internal(err)
	}
	return toTicketOutput(t), nil
}

// nilのフィールドは変更しない
type UpdateTicketInput struct {
	Title       *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	ImageURL    *string
	Stock       *int64
	IsActive    *bool
}

func (u *TicketUsecase) Update(ctx context.Context, actor Actor, id string, in UpdateTicketInput) (TicketOutput, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return TicketOutput{}, InvalidRequest("title must not be empty")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return TicketOutput{}, InvalidRequest("price must be >= 0")
	}
	if in.Price != nil && in.Price.Round(2).GreaterThan(pricing.MaxUnitPrice) {
		return TicketOutput{}, InvalidRequest("price must be <= %s", pricing.MaxUnitPrice.StringFixed(2))
	}
	if in.Stock != nil && *in.Stock < 0 {
		return TicketOutput{}, InvalidRequest("stock must be >= 0")
	}
	if !isUUID(id) {
		return TicketOutput{}, NotFound("Ticket with ID %s not found", id)
	}

	ch := repo.TicketChanges{
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		IsActive:    in.IsActive,
		UpdatedAt:   u.clock.Now(),
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		ch.Title = &title
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		ch.Category = &category
	}
	if in.Price != nil {
		price := in.Price.Round(2)
		ch.Price = &price
	}

	var updated model.Ticket

	//更新と監査ログは同じTxで
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := lockTicket(ctx, r, id)
		if err != nil {
			return err
		}

		if err := r.Tickets().Update(ctx, id, ch); err != nil {
			if errors.Is(err, repo.ErrConstraint) {
				return Conflict("ticket title already exists")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("Ticket with ID %s not found", id)
			}
			return fromDB(err)
		}

		after := applyTicketChanges(before, ch)
		if err := u.audit(ctx, r, actor, model.AuditActionUpdateTicket, before, after); err != nil {
			return err
		}
		updated = after
		return nil
	})
	if err != nil {
		return TicketOutput{}, fromDB(err)
	}

	u.invalidateOrderLists(ctx, id)
	return toTicketOutput(updated), nil
}

// ロック中の行に変更を当てた結果（監査ログとレスポンス用）
func applyTicketChanges(t model.Ticket, ch repo.TicketChanges) model.Ticket {
	if ch.Title != nil {
		t.Title = *ch.Title
	}
	if ch.Description != nil {
		t.Description = *ch.Description
	}
	if ch.Category != nil {
		t.Category = *ch.Category
	}
	if ch.Price != nil {
		t.Price = *ch.Price
	}
	if ch.ImageURL != nil {
		t.ImageURL = *ch.ImageURL
	}
	if ch.Stock != nil {
		t.Stock = *ch.Stock
	}
	if ch.IsActive != nil {
		t.IsActive = *ch.IsActive
	}
	t.UpdatedAt = ch.UpdatedAt
	return t
}

// 注文一覧はチケットのタイトルや公開状態を含む。失敗してもログだけ
func (u *TicketUsecase) invalidateOrderLists(ctx context.Context, ticketID string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateAll(ctx); err != nil {
		u.logger.WarnContext(ctx, "order cache invalidate failed",
			slog.String("ticket_id", ticketID), slog.String("error", err.Error()))
	}
}

// 論理削除（is_active=false）
func (u *TicketUsecase) Delete(ctx context.Context, actor Actor, id string) error {
	if !isUUID(id) {
		return NotFound("Ticket with ID %s not found", id)
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := lockTicket(ctx, r, id)
		if err != nil {
			return err
		}

		if err := r.Tickets().SoftDelete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NotFound("Ticket with ID %s not found", id)
			}
			return fromDB(err)
		}

		after := before
		after.IsActive = false
		return u.audit(ctx, r, actor, model.AuditActionDeleteTicket, before, after)
	})
	if err != nil {
		return fromDB(err)
	}

	u.invalidateOrderLists(ctx, id)
	return nil
}

//監査ログを作成
//「誰が」「何を」「どの対象に」「どう変えたか」を残す
func (u *TicketUsecase) audit(ctx context.Context, r repo.TxRepos, actor Actor, action model.AuditAction, before, after model.Ticket) error {
	beforeJSON, err := json.Marshal(toTicketOutput(before))
	if err != nil {
		return Internal(err)
	}
	afterJSON, err := json.Marshal(toTicketOutput(after))
	if err != nil {
		return Internal(err)
	}

	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actor.UserID,
		Action:       action,
		ResourceType: model.AuditResourceTicket,
		ResourceID:   before.ID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return fromDB(err)
	}
	return nil
}

type ListAuditLogsInput struct {
	ResourceID string
	Action     string
	Limit      int
	Offset     int
}

// 管理者向け
func (u *TicketUsecase) ListAuditLogs(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	if in.Limit < 0 || in.Limit > 200 {
		return []model.AuditLog{}, InvalidRequest("invalid limit")
	}
	if in.Offset < 0 {
		return []model.AuditLog{}, InvalidRequest("invalid offset")
	}

	rt := model.AuditResourceTicket
	f := repo.AuditLogFilter{
		ResourceType: &rt,
		Limit:        in.Limit,
		Offset:       in.Offset,
	}
	if in.ResourceID != "" {
		if !isUUID(in.ResourceID) {
			return []model.AuditLog{}, InvalidRequest("invalid resource_id")
		}
		f.ResourceID = &in.ResourceID
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		switch a {
		case model.AuditActionUpdateTicket, model.AuditActionDeleteTicket:
		default:
			return []model.AuditLog{}, InvalidRequest("invalid action")
		}
		f.Action = &a
	}

	logs, err := u.auditLogs.List(ctx, f)
	if err != nil {
		return []model.AuditLog{}, Internal(err)
	}
	return logs, nil
}
