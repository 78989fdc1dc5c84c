// Package events publishes domain events for downstream consumers
// (notifications, activity feeds). Publishing is best-effort from the
// caller's point of view: services log failures but never fail a request
// because an event could not be delivered.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Routing keys for published events.
const (
	KeyExpenseCreated     = "expense.created"
	KeySettlementRecorded = "settlement.recorded"
)

// ExpenseCreated is emitted after an expense is persisted.
type ExpenseCreated struct {
	ExpenseID string    `json:"expenseId"`
	GroupID   string    `json:"groupId,omitempty"`
	PaidBy    string    `json:"paidBy"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// SettlementRecorded is emitted after a settlement is persisted.
type SettlementRecorded struct {
	SettlementID string    `json:"settlementId"`
	GroupID      string    `json:"groupId,omitempty"`
	PaidBy       string    `json:"paidBy"`
	ReceivedBy   string    `json:"receivedBy"`
	Amount       float64   `json:"amount"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher delivers a JSON-encodable event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}

// NopPublisher discards events; used when AMQP is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, event interface{}) error { return nil }
func (NopPublisher) Close() error                                                     { return nil }

func marshal(event interface{}) ([]byte, error) {
	return json.Marshal(event)
}
