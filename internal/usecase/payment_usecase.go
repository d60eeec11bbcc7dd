package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/domain/pricing"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

type PaymentUsecase struct {
	tx       repo.TransactionManager
	payments repo.PaymentRepository
	cache    OrderListCache
	events   EventPublisher
	idGen    IDGenerator
	clock    Clock
	logger   *slog.Logger
}

// DI
func NewPaymentUsecase(
	tx repo.TransactionManager,
	payments repo.PaymentRepository,
	cache OrderListCache,
	events EventPublisher,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *PaymentUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentUsecase{
		tx:       tx,
		payments: payments,
		cache:    cache,
		events:   events,
		idGen:    idGen,
		clock:    clock,
		logger:   logger,
	}
}

type RecordPaymentInput struct {
	OrderID     string
	Provider    string
	Amount      decimal.Decimal
	ProviderRef *string
}

// 金額が注文総額と完全一致ならSUCCESS＋注文をPAIDに。違えばFAILEDで記録だけ
func (u *PaymentUsecase) RecordPayment(ctx context.Context, actor Actor, in RecordPaymentInput) (PaymentOutput, error) {
	ctx, span := tracer.Start(ctx, "PaymentUsecase.RecordPayment")
	defer span.End()

	saved, ownerID, err := u.recordPayment(ctx, actor, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return PaymentOutput{}, err
	}
	span.SetAttributes(
		attribute.String("payment.id", saved.ID),
		attribute.String("payment.status", string(saved.Status)),
	)

	u.afterPaymentRecorded(ctx, saved, ownerID)
	return toPaymentOutput(saved), nil
}

func (u *PaymentUsecase) recordPayment(ctx context.Context, actor Actor, in RecordPaymentInput) (model.Payment, string, error) {
	provider := strings.TrimSpace(in.Provider)
	if provider == "" {
		return model.Payment{}, "", InvalidRequest("provider is required")
	}
	if in.Amount.IsNegative() {
		return model.Payment{}, "", InvalidRequest("amount must be >= 0")
	}
	// 3桁目以降はDBで丸められ、合計と一致して見えるFAILEDが残ってしまう
	if !pricing.HasCents(in.Amount) {
		return model.Payment{}, "", InvalidRequest("amount must have at most 2 decimal places")
	}
	if in.Amount.GreaterThan(pricing.MaxAmount) {
		return model.Payment{}, "", InvalidRequest("amount must be <= %s", pricing.MaxAmount.StringFixed(2))
	}
	if in.ProviderRef != nil {
		ref := strings.TrimSpace(*in.ProviderRef)
		if ref == "" {
			in.ProviderRef = nil
		} else {
			in.ProviderRef = &ref
		}
	}
	if !isUUID(in.OrderID) {
		return model.Payment{}, "", NotFound("Order with ID %s not found", in.OrderID)
	}

	var (
		saved   model.Payment
		ownerID string
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文行をロックしてから状態を見る
		order, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NotFound("Order with ID %s not found", in.OrderID)
		}
		if err != nil {
			return fromDB(err)
		}
		if !actor.CanAccess(order.UserID) {
			return NotFound("Order with ID %s not found", in.OrderID)
		}
		if order.Status == model.OrderStatusPaid {
			return InvalidState("Order is already paid")
		}
		ownerID = order.UserID

		status := model.PaymentStatusFailed
		if in.Amount.Equal(order.Total) {
			status = model.PaymentStatusSuccess
		}

		paymentID := u.idGen.NewID()
		if err := r.Payments().Create(ctx, model.Payment{
			ID:          paymentID,
			OrderID:     order.ID,
			Provider:    provider,
			ProviderRef: in.ProviderRef,
			Amount:      in.Amount,
			Status:      status,
			CreatedAt:   u.clock.Now(),
		}); err != nil {
			return fromDB(err)
		}

		if status == model.PaymentStatusSuccess {
			//PENDINGのときだけPAID
			ok, err := r.Orders().MarkPaid(ctx, order.ID)
			if err != nil {
				return fromDB(err)
			}
			if !ok {
				return InvalidState("Order is already paid")
			}
		}

		saved, err = r.Payments().FindByIDWithDetails(ctx, paymentID)
		if err != nil {
			return fromDB(err)
		}
		return nil
	})
	if err != nil {
		return model.Payment{}, "", fromDB(err)
	}

	return saved, ownerID, nil
}

// コミット後の副作用。失敗してもログだけ
func (u *PaymentUsecase) afterPaymentRecorded(ctx context.Context, p model.Payment, ownerID string) {
	paymentsRecordedCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(p.Status))))

	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, ownerID); err != nil {
			u.logger.WarnContext(ctx, "order cache invalidate failed",
				slog.String("user_id", ownerID), slog.String("error", err.Error()))
		}
	}

	if u.events != nil {
		ev := model.PaymentRecordedEvent{
			PaymentID: p.ID,
			OrderID:   p.OrderID,
			Status:    p.Status,
			Amount:    p.Amount,
			Timestamp: p.CreatedAt,
		}
		if err := u.events.PublishPaymentRecorded(ctx, ev); err != nil {
			u.logger.WarnContext(ctx, "publish payment.recorded failed",
				slog.String("payment_id", p.ID), slog.String("error", err.Error()))
		}
	}

	u.logger.InfoContext(ctx, "payment recorded",
		slog.String("payment_id", p.ID),
		slog.String("order_id", p.OrderID),
		slog.String("status", string(p.Status)),
		slog.String("amount", money(p.Amount)),
	)
}

func (u *PaymentUsecase) GetPayment(ctx context.Context, actor Actor, paymentID string) (PaymentOutput, error) {
	ctx, span := tracer.Start(ctx, "PaymentUsecase.GetPayment")
	defer span.End()

	if !isUUID(paymentID) {
		return PaymentOutput{}, NotFound("Payment with ID %s not found", paymentID)
	}

	p, err := u.payments.FindByIDWithDetails(ctx, paymentID)
	if errors.Is(err, repo.ErrNotFound) {
		return PaymentOutput{}, NotFound("Payment with ID %s not found", paymentID)
	}
	if err != nil {
		return PaymentOutput{}, Internal(err)
	}
	if p.Order != nil && !actor.CanAccess(p.Order.UserID) {
		return PaymentOutput{}, NotFound("Payment with ID %s not found", paymentID)
	}
	return toPaymentOutput(p), nil
}
