package models

import "time"

type OutboxStatus string

const (
	OutboxStatusPending OutboxStatus = "pending"
	OutboxStatusSent    OutboxStatus = "sent"
	OutboxStatusFailed  OutboxStatus = "failed"
)

// OutboxMessage records a notification alongside the state change that
// produced it. Rows are written in the same transaction as the order update
// and dispatched out-of-band with retry, so a lost SMTP connection never
// rolls back a status transition.
type OutboxMessage struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference     string       `gorm:"size:36;uniqueIndex" json:"reference"`
	OrderID       uint         `gorm:"not null;index" json:"order_id"`
	Recipient     string       `gorm:"not null" json:"recipient"`
	Subject       string       `gorm:"not null" json:"subject"`
	Body          string       `gorm:"type:text" json:"body"`
	Status        OutboxStatus `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	Attempts      int          `json:"attempts"`
	LastError     string       `gorm:"type:text" json:"last_error,omitempty"`
	NextAttemptAt time.Time    `gorm:"index" json:"next_attempt_at"`
	SentAt        *time.Time   `json:"sent_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"-"`
}
