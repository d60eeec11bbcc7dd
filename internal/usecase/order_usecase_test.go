package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"
	"github.com/miigangls/restaurant-tickets/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	userID   = "11111111-1111-4111-8111-111111111111"
	otherID  = "22222222-2222-4222-8222-222222222222"
	ticketA  = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	ticketB  = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	orderID  = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
	itemID1  = "dddddddd-dddd-4ddd-8ddd-000000000001"
	itemID2  = "dddddddd-dddd-4ddd-8ddd-000000000002"
	unknownT = "eeeeeeee-eeee-4eee-8eee-eeeeeeeeeeee"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type orderFixture struct {
	tx        *TxManagerMock
	users     *UserRepoMock
	tickets   *TicketRepoMock
	orders    *OrderRepoMock
	txTickets *TicketRepoMock
	txOrders  *OrderRepoMock
	txItems   *OrderItemRepoMock
	inventory *InventoryRepoMock
	cache     *CacheMock
	events    *EventsMock
	uc        *usecase.OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		tx:        new(TxManagerMock),
		users:     new(UserRepoMock),
		tickets:   new(TicketRepoMock),
		orders:    new(OrderRepoMock),
		txTickets: new(TicketRepoMock),
		txOrders:  new(OrderRepoMock),
		txItems:   new(OrderItemRepoMock),
		inventory: new(InventoryRepoMock),
		cache:     new(CacheMock),
		events:    new(EventsMock),
	}
	f.tx.Repos = &TxReposMock{
		tickets:    f.txTickets,
		orders:     f.txOrders,
		orderItems: f.txItems,
		inventory:  f.inventory,
	}
	ids := &seqIDGen{ids: []string{orderID, itemID1, itemID2}}
	f.uc = usecase.NewOrderUsecase(f.tx, f.users, f.tickets, f.orders, f.cache, f.events, ids, fixedClock{testNow}, quietLogger())
	return f
}

func (f *orderFixture) assertAll(t *testing.T) {
	t.Helper()
	f.tx.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.tickets.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.txTickets.AssertExpectations(t)
	f.txOrders.AssertExpectations(t)
	f.txItems.AssertExpectations(t)
	f.inventory.AssertExpectations(t)
	f.cache.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func steak(stock int64) model.Ticket {
	return model.Ticket{ID: ticketA, Title: "Filete de Res", Price: dec("50.00"), Stock: stock, IsActive: true}
}

func tiramisu(stock int64) model.Ticket {
	return model.Ticket{ID: ticketB, Title: "Tiramisú", Price: dec("7.99"), Stock: stock, IsActive: true}
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(10), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketA}).Return([]model.Ticket{steak(10)}, nil)

	f.txOrders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.ID == orderID &&
			o.UserID == userID &&
			o.Status == model.OrderStatusPending &&
			o.Subtotal.Equal(dec("100")) &&
			o.Tax.Equal(dec("19")) &&
			o.Total.Equal(dec("119"))
	})).Return(nil)

	f.txItems.On("CreateBulk", mock.Anything, orderID, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].ID == itemID1 &&
			items[0].Position == 1 &&
			items[0].Quantity == 2 &&
			items[0].UnitPrice.Equal(dec("50")) &&
			items[0].LineTotal.Equal(dec("100"))
	})).Return(nil)

	f.inventory.On("DecreaseStockIfEnough", mock.Anything, ticketA, int64(2)).Return(true, nil)

	stored := model.Order{
		ID: orderID, UserID: userID, Status: model.OrderStatusPending,
		Subtotal: dec("100.00"), Tax: dec("19.00"), Total: dec("119.00"), CreatedAt: testNow,
		Items: []model.OrderItem{{
			ID: itemID1, TicketID: ticketA, Quantity: 2, UnitPrice: dec("50.00"), LineTotal: dec("100.00"),
			Ticket: func() *model.Ticket { t := steak(8); return &t }(),
		}},
		User: &model.User{ID: userID, Email: "u@demo.com", Name: "U"},
	}
	f.txOrders.On("FindByIDWithDetails", mock.Anything, orderID).Return(stored, nil)

	f.cache.On("Invalidate", mock.Anything, userID).Return(nil)
	f.events.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(ev model.OrderPlacedEvent) bool {
		return ev.OrderID == orderID && ev.Total.Equal(dec("119")) && len(ev.Items) == 1
	})).Return(nil)

	out, err := f.uc.PlaceOrder(ctx, userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, orderID, out.ID)
	assert.Equal(t, "PENDING", out.Status)
	assert.Equal(t, "100.00", out.Subtotal)
	assert.Equal(t, "19.00", out.Tax)
	assert.Equal(t, "119.00", out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "50.00", out.Items[0].UnitPrice)
	assert.Equal(t, int64(8), out.Items[0].Ticket.Stock)
	assert.Equal(t, "u@demo.com", out.User.Email)
	assert.Empty(t, out.Payments)

	f.assertAll(t)
}

func TestOrderUsecase_PlaceOrder_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.PlaceOrderInput
		want string
	}{
		{name: "empty cart", in: usecase.PlaceOrderInput{}, want: "items must not be empty"},
		{
			name: "zero quantity",
			in:   usecase.PlaceOrderInput{Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 0}}},
			want: "quantity must be at least 1",
		},
		{
			name: "missing ticket id",
			in:   usecase.PlaceOrderInput{Items: []usecase.OrderLineInput{{Quantity: 1}}},
			want: "ticket_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			_, err := f.uc.PlaceOrder(context.Background(), userID, tt.in)
			assert.True(t, usecase.IsKind(err, usecase.KindInvalidRequest))
			assertErrContains(t, err, tt.want)
			f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
		})
	}
}

func TestOrderUsecase_PlaceOrder_UserNotFound(t *testing.T) {
	f := newOrderFixture()
	f.users.On("FindByID", mock.Anything, userID).Return(nil, nil)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 1}},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidRequest))
	assertErrContains(t, err, "User not found")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_TicketNotFound(t *testing.T) {
	f := newOrderFixture()
	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(10), nil)
	f.tickets.On("FindByID", mock.Anything, unknownT).Return(model.Ticket{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{TicketID: ticketA, Quantity: 1},
			{TicketID: unknownT, Quantity: 1},
		},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
	assertErrContains(t, err, "Ticket with ID "+unknownT+" not found")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_TotalOverColumnLimit(t *testing.T) {
	f := newOrderFixture()
	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(300_000_000), nil)

	// 50.00 × 2億 = 100億 → NUMERIC(12,2)に入らない
	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 200_000_000}},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidRequest))
	assertErrContains(t, err, "order total must be <= 9999999999.99")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_InsufficientStock_StopsAtFirstFailure(t *testing.T) {
	f := newOrderFixture()
	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(1), nil)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{TicketID: ticketA, Quantity: 2},
			{TicketID: ticketB, Quantity: 1},
		},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidState))
	assertErrContains(t, err, "Insufficient stock for ticket Filete de Res")

	// 2行目は見ない
	f.tickets.AssertNotCalled(t, "FindByID", mock.Anything, ticketB)
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_InactiveTicket(t *testing.T) {
	f := newOrderFixture()
	inactive := tiramisu(10)
	inactive.IsActive = false

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketB).Return(inactive, nil)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketB, Quantity: 1}},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidState))
	assertErrContains(t, err, "Ticket Tiramisú is not active")
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderUsecase_PlaceOrder_DuplicateLinesAggregatedUnderLock(t *testing.T) {
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(3), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketA}).Return([]model.Ticket{steak(3)}, nil)

	// 行ごとなら2<=3で通るが、合計4は在庫3を超える
	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{TicketID: ticketA, Quantity: 2},
			{TicketID: ticketA, Quantity: 2},
		},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidState))
	assertErrContains(t, err, "Insufficient stock for ticket Filete de Res")

	f.txOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_StockChangedBeforeLock(t *testing.T) {
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(5), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	// 他の注文が先に在庫を取った
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketA}).Return([]model.Ticket{steak(1)}, nil)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 2}},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidState))
	f.txOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_ConditionalDecrementFails(t *testing.T) {
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(5), nil)
	f.tickets.On("FindByID", mock.Anything, ticketB).Return(tiramisu(5), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketB, ticketA}).
		Return([]model.Ticket{steak(5), tiramisu(5)}, nil)
	f.txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.txItems.On("CreateBulk", mock.Anything, orderID, mock.Anything).Return(nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, ticketA, int64(1)).Return(true, nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, ticketB, int64(1)).Return(false, nil)

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{
			{TicketID: ticketB, Quantity: 1},
			{TicketID: ticketA, Quantity: 1},
		},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidState))
	assertErrContains(t, err, "Insufficient stock for ticket Tiramisú")
	f.txOrders.AssertNotCalled(t, "FindByIDWithDetails", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "PublishOrderPlaced", mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_ConstraintViolationIsInvalidRequest(t *testing.T) {
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketA).Return(steak(5), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketA}).Return([]model.Ticket{steak(5)}, nil)
	f.txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.txItems.On("CreateBulk", mock.Anything, orderID, mock.Anything).
		Return(errors.Join(repo.ErrConstraint, errors.New("violates foreign key")))

	_, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketA, Quantity: 1}},
	})
	assert.True(t, usecase.IsKind(err, usecase.KindInvalidRequest))
	assert.ErrorIs(t, err, repo.ErrConstraint)
}

func TestOrderUsecase_PlaceOrder_SideEffectFailuresDoNotFail(t *testing.T) {
	f := newOrderFixture()

	f.users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	f.tickets.On("FindByID", mock.Anything, ticketB).Return(tiramisu(5), nil)
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketB}).Return([]model.Ticket{tiramisu(5)}, nil)
	f.txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.txItems.On("CreateBulk", mock.Anything, orderID, mock.Anything).Return(nil)
	f.inventory.On("DecreaseStockIfEnough", mock.Anything, ticketB, int64(1)).Return(true, nil)
	f.txOrders.On("FindByIDWithDetails", mock.Anything, orderID).
		Return(model.Order{ID: orderID, UserID: userID, Total: dec("9.51")}, nil)
	f.cache.On("Invalidate", mock.Anything, userID).Return(errors.New("redis down"))
	f.events.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	out, err := f.uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketB, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "9.51", out.Total)
	f.assertAll(t)
}

func TestOrderUsecase_PlaceOrder_NilCacheAndEvents(t *testing.T) {
	tx := new(TxManagerMock)
	users := new(UserRepoMock)
	tickets := new(TicketRepoMock)
	txTickets := new(TicketRepoMock)
	txOrders := new(OrderRepoMock)
	txItems := new(OrderItemRepoMock)
	inv := new(InventoryRepoMock)
	tx.Repos = &TxReposMock{tickets: txTickets, orders: txOrders, orderItems: txItems, inventory: inv}

	users.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
	tickets.On("FindByID", mock.Anything, ticketB).Return(tiramisu(5), nil)
	tx.On("WithinTx", mock.Anything).Return(nil)
	txTickets.On("FindByIDsForUpdate", mock.Anything, []string{ticketB}).Return([]model.Ticket{tiramisu(5)}, nil)
	txOrders.On("Create", mock.Anything, mock.Anything).Return(nil)
	txItems.On("CreateBulk", mock.Anything, orderID, mock.Anything).Return(nil)
	inv.On("DecreaseStockIfEnough", mock.Anything, ticketB, int64(1)).Return(true, nil)
	txOrders.On("FindByIDWithDetails", mock.Anything, orderID).Return(model.Order{ID: orderID, UserID: userID}, nil)

	uc := usecase.NewOrderUsecase(tx, users, tickets, new(OrderRepoMock), nil, nil,
		&seqIDGen{ids: []string{orderID, itemID1}}, fixedClock{testNow}, nil)

	_, err := uc.PlaceOrder(context.Background(), userID, usecase.PlaceOrderInput{
		Items: []usecase.OrderLineInput{{TicketID: ticketB, Quantity: 1}},
	})
	assert.NoError(t, err)
}

// =====================
// ListOrders / GetOrder
// =====================

func TestOrderUsecase_ListOrders_CacheHit(t *testing.T) {
	f := newOrderFixture()
	cached := []model.Order{{ID: orderID, UserID: userID, Total: dec("119.00")}}
	f.cache.On("Get", mock.Anything, userID).Return(cached, "0:0", true, nil)

	outs, err := f.uc.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, outs, 1)
	assert.Equal(t, "119.00", outs[0].Total)
	f.orders.AssertNotCalled(t, "ListByUserIDWithDetails", mock.Anything, mock.Anything)
}

func TestOrderUsecase_ListOrders_CacheMissLoadsAndStores(t *testing.T) {
	f := newOrderFixture()
	fromDB := []model.Order{
		{ID: orderID, UserID: userID, Status: model.OrderStatusPaid},
		{ID: "cccccccc-cccc-4ccc-8ccc-000000000002", UserID: userID, Status: model.OrderStatusPending},
	}
	f.cache.On("Get", mock.Anything, userID).Return(nil, "3:7", false, nil)
	f.orders.On("ListByUserIDWithDetails", mock.Anything, userID).Return(fromDB, nil)
	// 読んだ世代で書く
	f.cache.On("Set", mock.Anything, userID, "3:7", fromDB).Return(nil)

	outs, err := f.uc.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, outs, 2)
	// repoの並び（新しい順）をそのまま返す
	assert.Equal(t, orderID, outs[0].ID)
	f.assertAll(t)
}

func TestOrderUsecase_ListOrders_CacheErrorFallsBackToDB(t *testing.T) {
	f := newOrderFixture()
	f.cache.On("Get", mock.Anything, userID).Return(nil, "", false, errors.New("redis down"))
	f.orders.On("ListByUserIDWithDetails", mock.Anything, userID).Return([]model.Order{}, nil)

	outs, err := f.uc.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, outs)
	// 世代が分からないので書かない
	f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_ListOrders_SetFailureStillReturnsOrders(t *testing.T) {
	f := newOrderFixture()
	f.cache.On("Get", mock.Anything, userID).Return(nil, "0:0", false, nil)
	f.orders.On("ListByUserIDWithDetails", mock.Anything, userID).Return([]model.Order{}, nil)
	f.cache.On("Set", mock.Anything, userID, "0:0", []model.Order{}).Return(errors.New("redis down"))

	outs, err := f.uc.ListOrders(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, outs)
}

func TestOrderUsecase_GetOrder(t *testing.T) {
	stored := model.Order{ID: orderID, UserID: userID, Status: model.OrderStatusPending, Total: dec("119")}

	t.Run("owner", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByIDWithDetails", mock.Anything, orderID).Return(stored, nil)
		out, err := f.uc.GetOrder(context.Background(), usecase.Actor{UserID: userID, Role: model.RoleUser}, orderID)
		require.NoError(t, err)
		assert.Equal(t, "119.00", out.Total)
	})

	t.Run("other user sees not found", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByIDWithDetails", mock.Anything, orderID).Return(stored, nil)
		_, err := f.uc.GetOrder(context.Background(), usecase.Actor{UserID: otherID, Role: model.RoleUser}, orderID)
		assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
		assertErrContains(t, err, "Order with ID "+orderID+" not found")
	})

	t.Run("admin", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByIDWithDetails", mock.Anything, orderID).Return(stored, nil)
		_, err := f.uc.GetOrder(context.Background(), usecase.Actor{UserID: otherID, Role: model.RoleAdmin}, orderID)
		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newOrderFixture()
		f.orders.On("FindByIDWithDetails", mock.Anything, orderID).Return(model.Order{}, repo.ErrNotFound)
		_, err := f.uc.GetOrder(context.Background(), usecase.Actor{UserID: userID}, orderID)
		assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newOrderFixture()
		_, err := f.uc.GetOrder(context.Background(), usecase.Actor{UserID: userID}, "42")
		assert.True(t, usecase.IsKind(err, usecase.KindNotFound))
		f.orders.AssertNotCalled(t, "FindByIDWithDetails", mock.Anything, mock.Anything)
	})
}
