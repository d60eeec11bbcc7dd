package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	"github.com/miigangls/restaurant-tickets/internal/domain/pricing"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type OrderUsecase struct {
	tx      repo.TransactionManager
	users   repo.UserRepository
	tickets repo.TicketRepository
	orders  repo.OrderRepository
	cache   OrderListCache // nilならキャッシュなし
	events  EventPublisher // nilならイベントなし
	idGen   IDGenerator
	clock   Clock
	logger  *slog.Logger
}

// DI
func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	tickets repo.TicketRepository,
	orders repo.OrderRepository,
	cache OrderListCache,
	events EventPublisher,
	idGen IDGenerator,
	clock Clock,
	logger *slog.Logger,
) *OrderUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUsecase{
		tx:      tx,
		users:   users,
		tickets: tickets,
		orders:  orders,
		cache:   cache,
		events:  events,
		idGen:   idGen,
		clock:   clock,
		logger:  logger,
	}
}

type OrderLineInput struct {
	TicketID string
	Quantity int64
}

type PlaceOrderInput struct {
	Items []OrderLineInput
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderOutput, error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.PlaceOrder")
	defer span.End()

	out, err := u.placeOrder(ctx, userID, in)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return OrderOutput{}, err
	}
	span.SetAttributes(attribute.String("order.id", out.ID))
	return out, nil
}

func (u *OrderUsecase) placeOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderOutput, error) {
	if len(in.Items) == 0 {
		return OrderOutput{}, InvalidRequest("items must not be empty")
	}
	for _, it := range in.Items {
		if it.TicketID == "" {
			return OrderOutput{}, InvalidRequest("ticket_id is required")
		}
		if it.Quantity < 1 {
			return OrderOutput{}, InvalidRequest("quantity must be at least 1")
		}
	}

	//ユーザー確認
	if !isUUID(userID) {
		return OrderOutput{}, InvalidRequest("User not found")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return OrderOutput{}, Internal(err)
	}
	if user == nil {
		return OrderOutput{}, InvalidRequest("User not found")
	}

	//明細ごとにチケット取得→在庫チェック（送信順、最初の失敗で中断）
	validated := make([]ValidatedLine, 0, len(in.Items))
	for _, it := range in.Items {
		t, err := findTicket(ctx, u.tickets, it.TicketID)
		if err != nil {
			return OrderOutput{}, err
		}
		line, err := GuardLine(t, it.Quantity)
		if err != nil {
			return OrderOutput{}, err
		}
		validated = append(validated, line)
	}

	//金額計算
	pl := make([]pricing.Line, 0, len(validated))
	for _, v := range validated {
		pl = append(pl, pricing.Line{UnitPrice: v.UnitPrice, Quantity: v.Quantity})
	}
	totals := pricing.Compute(pl)
	// 合計が入れば明細も小計も入る
	if totals.Total.GreaterThan(pricing.MaxAmount) {
		return OrderOutput{}, InvalidRequest("order total must be <= %s", pricing.MaxAmount.StringFixed(2))
	}

	now := u.clock.Now()
	orderID := u.idGen.NewID()

	//スナップショット
	items := make([]model.OrderItem, 0, len(validated))
	for i, v := range validated {
		items = append(items, model.OrderItem{
			ID:        u.idGen.NewID(),
			OrderID:   orderID,
			TicketID:  v.Ticket.ID,
			Position:  i + 1,
			Quantity:  v.Quantity,
			UnitPrice: v.UnitPrice,
			LineTotal: pricing.LineTotal(v.UnitPrice, v.Quantity),
			CreatedAt: now,
		})
	}

	//同じチケットが複数行あれば合算
	need, ids := aggregateQuantities(validated)

	var placed model.Order

	//注文処理はトランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック（idの昇順）
		locked, err := r.Tickets().FindByIDsForUpdate(ctx, ids)
		if err != nil {
			return fromDB(err)
		}
		byID := make(map[string]model.Ticket, len(locked))
		for _, t := range locked {
			byID[t.ID] = t
		}

		//ロック後の最新値で再チェック
		for _, id := range ids {
			t, ok := byID[id]
			if !ok {
				return NotFound("Ticket with ID %s not found", id)
			}
			if _, err := GuardLine(t, need[id]); err != nil {
				return err
			}
		}

		// 注文作成
		if err := r.Orders().Create(ctx, model.Order{
			ID:        orderID,
			UserID:    user.ID,
			Subtotal:  totals.Subtotal,
			Tax:       totals.Tax,
			Total:     totals.Total,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return fromDB(err)
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return fromDB(err)
		}

		//在庫減算（足りないなら false）
		sorted := append([]string(nil), ids...)
		sort.Strings(sorted)
		for _, id := range sorted {
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, id, need[id])
			if err != nil {
				return fromDB(err)
			}
			if !ok {
				return InvalidState("Insufficient stock for ticket %s", byID[id].Title)
			}
		}

		placed, err = r.Orders().FindByIDWithDetails(ctx, orderID)
		if err != nil {
			return fromDB(err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, fromDB(err)
	}

	u.afterOrderPlaced(ctx, placed)
	return toOrderOutput(placed), nil
}

// ticketID→合計数量と、初出順のID一覧
func aggregateQuantities(lines []ValidatedLine) (map[string]int64, []string) {
	need := make(map[string]int64, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, seen := need[l.Ticket.ID]; !seen {
			ids = append(ids, l.Ticket.ID)
		}
		need[l.Ticket.ID] += l.Quantity
	}
	return need, ids
}

// コミット後の副作用。失敗してもリクエストは成功のまま（ログのみ）
func (u *OrderUsecase) afterOrderPlaced(ctx context.Context, o model.Order) {
	ordersPlacedCounter.Add(ctx, 1)

	if u.cache != nil {
		if err := u.cache.Invalidate(ctx, o.UserID); err != nil {
			u.logger.WarnContext(ctx, "order cache invalidate failed",
				slog.String("user_id", o.UserID), slog.String("error", err.Error()))
		}
	}

	if u.events != nil {
		lines := make([]model.OrderPlacedLine, 0, len(o.Items))
		for _, it := range o.Items {
			lines = append(lines, model.OrderPlacedLine{
				TicketID:  it.TicketID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		ev := model.OrderPlacedEvent{
			OrderID:   o.ID,
			UserID:    o.UserID,
			Total:     o.Total,
			Items:     lines,
			Timestamp: o.CreatedAt,
		}
		if err := u.events.PublishOrderPlaced(ctx, ev); err != nil {
			u.logger.WarnContext(ctx, "publish order.placed failed",
				slog.String("order_id", o.ID), slog.String("error", err.Error()))
		}
	}

	u.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", o.ID),
		slog.String("user_id", o.UserID),
		slog.String("total", money(o.Total)),
		slog.Int("items", len(o.Items)),
	)
}

// 新しい順。キャッシュにあればDBを見ない
func (u *OrderUsecase) ListOrders(ctx context.Context, userID string) ([]OrderOutput, error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.ListOrders")
	defer span.End()

	if !isUUID(userID) {
		return []OrderOutput{}, nil
	}

	// DBを読む前に世代を取る
	var gen string
	if u.cache != nil {
		cached, g, ok, err := u.cache.Get(ctx, userID)
		gen = g
		if err != nil {
			u.logger.WarnContext(ctx, "order cache get failed",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
		if ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return toOrderOutputs(cached), nil
		}
	}

	orders, err := u.orders.ListByUserIDWithDetails(ctx, userID)
	if err != nil {
		return []OrderOutput{}, Internal(err)
	}

	if u.cache != nil && gen != "" {
		if err := u.cache.Set(ctx, userID, gen, orders); err != nil {
			u.logger.WarnContext(ctx, "order cache set failed",
				slog.String("user_id", userID), slog.String("error", err.Error()))
		}
	}
	return toOrderOutputs(orders), nil
}

// 他人の注文は「存在しない扱い」にする（管理者は除く）
func (u *OrderUsecase) GetOrder(ctx context.Context, actor Actor, orderID string) (OrderOutput, error) {
	ctx, span := tracer.Start(ctx, "OrderUsecase.GetOrder")
	defer span.End()

	if !isUUID(orderID) {
		return OrderOutput{}, NotFound("Order with ID %s not found", orderID)
	}

	o, err := u.orders.FindByIDWithDetails(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NotFound("Order with ID %s not found", orderID)
	}
	if err != nil {
		return OrderOutput{}, Internal(err)
	}
	if !actor.CanAccess(o.UserID) {
		return OrderOutput{}, NotFound("Order with ID %s not found", orderID)
	}
	return toOrderOutput(o), nil
}
