package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"
	repo "github.com/miigangls/restaurant-tickets/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

// 使わないrepoはnilのまま
type TxReposMock struct {
	users      repo.UserRepository
	tickets    repo.TicketRepository
	inventory  repo.InventoryRepository
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	payments   repo.PaymentRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Users() repo.UserRepository           { return r.users }
func (r *TxReposMock) Tickets() repo.TicketRepository       { return r.tickets }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Payments() repo.PaymentRepository     { return r.payments }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

type TicketRepoMock struct{ mock.Mock }

func (m *TicketRepoMock) ListActive(ctx context.Context) ([]model.Ticket, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).([]model.Ticket)
	return ts, args.Error(1)
}

func (m *TicketRepoMock) FindByID(ctx context.Context, id string) (model.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.Ticket)
	return t, args.Error(1)
}

func (m *TicketRepoMock) FindByTitle(ctx context.Context, title string) (model.Ticket, error) {
	args := m.Called(ctx, title)
	t, _ := args.Get(0).(model.Ticket)
	return t, args.Error(1)
}

func (m *TicketRepoMock) FindByIDsForUpdate(ctx context.Context, ids []string) ([]model.Ticket, error) {
	args := m.Called(ctx, ids)
	ts, _ := args.Get(0).([]model.Ticket)
	return ts, args.Error(1)
}

func (m *TicketRepoMock) Create(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	args := m.Called(ctx, t)
	out, _ := args.Get(0).(model.Ticket)
	return out, args.Error(1)
}

func (m *TicketRepoMock) Update(ctx context.Context, id string, ch repo.TicketChanges) error {
	return m.Called(ctx, id, ch).Error(0)
}

func (m *TicketRepoMock) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, ticketID string, qty int64) (bool, error) {
	args := m.Called(ctx, ticketID, qty)
	return args.Bool(0), args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepoMock) FindByIDWithDetails(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserIDWithDetails(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) MarkPaid(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	return m.Called(ctx, orderID, items).Error(0)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *PaymentRepoMock) FindByIDWithDetails(ctx context.Context, paymentID string) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

// =====================
// Cache / Events mocks
// =====================

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, userID string) ([]model.Order, string, bool, error) {
	args := m.Called(ctx, userID)
	os, _ := args.Get(0).([]model.Order)
	return os, args.String(1), args.Bool(2), args.Error(3)
}

func (m *CacheMock) Set(ctx context.Context, userID, gen string, orders []model.Order) error {
	return m.Called(ctx, userID, gen, orders).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *CacheMock) InvalidateAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type EventsMock struct{ mock.Mock }

func (m *EventsMock) PublishOrderPlaced(ctx context.Context, ev model.OrderPlacedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *EventsMock) PublishPaymentRecorded(ctx context.Context, ev model.PaymentRecordedEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// =====================
// IDGenerator / Clock
// =====================

// 呼ばれた順にIDを返す
type seqIDGen struct {
	ids []string
	i   int
}

func (g *seqIDGen) NewID() string {
	id := g.ids[g.i]
	g.i++
	return id
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// =====================
// Helper: error contains（AppErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
