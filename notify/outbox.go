package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/config"
	"github.com/econest-bedding/storefront-api/models"
)

// InvoiceProvider yields the path of the current invoice artifact for an
// order, rendering it if the version on disk is stale or missing.
type InvoiceProvider interface {
	Ensure(order *models.Order) (string, error)
}

// Outbox dispatches queued notification messages. A message is enqueued in
// the same transaction as the order change it announces; the handler makes
// one synchronous dispatch attempt for an immediate emailStatus answer, and
// Run retries whatever is still pending with exponential backoff.
type Outbox struct {
	db          *gorm.DB
	sender      Sender
	invoices    InvoiceProvider
	log         *zap.Logger
	interval    time.Duration
	maxAttempts int
}

func NewOutbox(db *gorm.DB, sender Sender, invoices InvoiceProvider, log *zap.Logger, cfg config.OutboxConfig) *Outbox {
	return &Outbox{
		db:          db,
		sender:      sender,
		invoices:    invoices,
		log:         log,
		interval:    cfg.Interval,
		maxAttempts: cfg.MaxAttempts,
	}
}

// Enqueue records a status-update notification for the order inside the
// caller's transaction. Nothing is sent here.
func (o *Outbox) Enqueue(tx *gorm.DB, order *models.Order) (*models.OutboxMessage, error) {
	msg := &models.OutboxMessage{
		Reference:     uuid.NewString(),
		OrderID:       order.ID,
		Recipient:     order.Email,
		Subject:       fmt.Sprintf("Order #%d Status Updated", order.ID),
		Body:          statusEmailBody(order),
		Status:        models.OutboxStatusPending,
		NextAttemptAt: time.Now(),
	}
	if err := tx.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// Dispatch sends one pending message: regenerate the invoice artifact for
// the order's current version, email it, mark the row sent. On failure the
// row stays pending with a pushed-out next attempt until maxAttempts is
// exhausted, after which it is marked failed.
func (o *Outbox) Dispatch(id uint) error {
	var msg models.OutboxMessage
	if err := o.db.First(&msg, id).Error; err != nil {
		return err
	}
	if msg.Status != models.OutboxStatusPending {
		return nil
	}

	var order models.Order
	if err := o.db.Preload("Items").Preload("Items.Product").First(&order, msg.OrderID).Error; err != nil {
		o.recordFailure(&msg, err)
		return err
	}

	attachment, err := o.invoices.Ensure(&order)
	if err != nil {
		o.recordFailure(&msg, err)
		return err
	}

	if err := o.sender.Send(msg.Recipient, msg.Subject, msg.Body, attachment); err != nil {
		o.recordFailure(&msg, err)
		return err
	}

	now := time.Now()
	return o.db.Model(&msg).Updates(map[string]interface{}{
		"status":  models.OutboxStatusSent,
		"sent_at": &now,
	}).Error
}

func (o *Outbox) recordFailure(msg *models.OutboxMessage, cause error) {
	attempts := msg.Attempts + 1
	updates := map[string]interface{}{
		"attempts":   attempts,
		"last_error": cause.Error(),
	}
	if attempts >= o.maxAttempts {
		updates["status"] = models.OutboxStatusFailed
	} else {
		updates["next_attempt_at"] = time.Now().Add(o.backoff(attempts))
	}
	if err := o.db.Model(msg).Updates(updates).Error; err != nil {
		o.log.Error("outbox: failed to record delivery failure",
			zap.Uint("message_id", msg.ID), zap.Error(err))
	}
}

func (o *Outbox) backoff(attempts int) time.Duration {
	d := o.interval << uint(attempts-1)
	if d > time.Hour {
		d = time.Hour
	}
	return d
}

// Run polls for due pending messages until the context is cancelled.
func (o *Outbox) Run(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.dispatchDue()
		}
	}
}

func (o *Outbox) dispatchDue() {
	var ids []uint
	err := o.db.Model(&models.OutboxMessage{}).
		Where("status = ? AND next_attempt_at <= ?", models.OutboxStatusPending, time.Now()).
		Order("next_attempt_at ASC").
		Limit(20).
		Pluck("id", &ids).Error
	if err != nil {
		o.log.Error("outbox: failed to poll pending messages", zap.Error(err))
		return
	}

	for _, id := range ids {
		if err := o.Dispatch(id); err != nil {
			o.log.Warn("outbox: dispatch attempt failed",
				zap.Uint("message_id", id), zap.Error(err))
		}
	}
}

func statusEmailBody(order *models.Order) string {
	return fmt.Sprintf(`
		<h2>Order Status Updated</h2>
		<p>Hello <strong>%s</strong>,</p>
		<p>Your order <strong>#%d</strong> status has been updated to <strong>%s</strong>.</p>
		<p>Please find attached your updated invoice.</p>
		<br/>
		<p>Thanks for shopping with Econest Bedding Inc.</p>
	`, order.Name, order.ID, order.Status)
}
