package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicOrderPlaced     = "order.placed"
	TopicPaymentRecorded = "payment.recorded"
)

type OrderPlacedLine struct {
	TicketID  string          `json:"ticket_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderPlacedEvent struct {
	OrderID   string            `json:"order_id"`
	UserID    string            `json:"user_id"`
	Total     decimal.Decimal   `json:"total"`
	Items     []OrderPlacedLine `json:"items"`
	Timestamp time.Time         `json:"timestamp"`
}

type PaymentRecordedEvent struct {
	PaymentID string          `json:"payment_id"`
	OrderID   string          `json:"order_id"`
	Status    PaymentStatus   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}
