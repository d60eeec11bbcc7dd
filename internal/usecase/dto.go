package usecase

import (
	"time"

	"github.com/miigangls/restaurant-tickets/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 金額はJSONで "119.00" の文字列にする
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type TicketOutput struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url"`
	Stock       int64     `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type OrderItemOutput struct {
	ID        string        `json:"id"`
	TicketID  string        `json:"ticket_id"`
	Quantity  int64         `json:"quantity"`
	UnitPrice string        `json:"unit_price"`
	LineTotal string        `json:"line_total"`
	Ticket    *TicketOutput `json:"ticket,omitempty"`
}

type PaymentSummary struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	ProviderRef *string   `json:"provider_ref"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type OrderOutput struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Status    string            `json:"status"`
	Subtotal  string            `json:"subtotal"`
	Tax       string            `json:"tax"`
	Total     string            `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Items     []OrderItemOutput `json:"items"`
	Payments  []PaymentSummary  `json:"payments"`
	User      *UserSummary      `json:"user,omitempty"`
}

type PaymentOutput struct {
	ID          string       `json:"id"`
	OrderID     string       `json:"order_id"`
	Provider    string       `json:"provider"`
	ProviderRef *string      `json:"provider_ref"`
	Amount      string       `json:"amount"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	Order       *OrderOutput `json:"order,omitempty"`
}

func toTicketOutput(t model.Ticket) TicketOutput {
	return TicketOutput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Price:       money(t.Price),
		ImageURL:    t.ImageURL,
		Stock:       t.Stock,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		out := OrderItemOutput{
			ID:        it.ID,
			TicketID:  it.TicketID,
			Quantity:  it.Quantity,
			UnitPrice: money(it.UnitPrice),
			LineTotal: money(it.LineTotal),
		}
		if it.Ticket != nil {
			t := toTicketOutput(*it.Ticket)
			out.Ticket = &t
		}
		items = append(items, out)
	}

	payments := make([]PaymentSummary, 0, len(o.Payments))
	for _, p := range o.Payments {
		payments = append(payments, PaymentSummary{
			ID:          p.ID,
			Provider:    p.Provider,
			ProviderRef: p.ProviderRef,
			Amount:      money(p.Amount),
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt,
		})
	}

	return OrderOutput{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    string(o.Status),
		Subtotal:  money(o.Subtotal),
		Tax:       money(o.Tax),
		Total:     money(o.Total),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     items,
		Payments:  payments,
		User:      toUserSummary(o.User),
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		outs = append(outs, toOrderOutput(o))
	}
	return outs
}

func toPaymentOutput(p model.Payment) PaymentOutput {
	out := PaymentOutput{
		ID:          p.ID,
		OrderID:     p.OrderID,
		Provider:    p.Provider,
		ProviderRef: p.ProviderRef,
		Amount:      money(p.Amount),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
	if p.Order != nil {
		o := toOrderOutput(*p.Order)
		out.Order = &o
	}
	return out
}
