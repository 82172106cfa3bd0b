package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/econest-bedding/storefront-api/config"
	"github.com/econest-bedding/storefront-api/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

type fakeSender struct {
	err        error
	sent       int
	attachment string
}

func (f *fakeSender) Send(to, subject, htmlBody, attachmentPath string) error {
	f.sent++
	f.attachment = attachmentPath
	return f.err
}

type fakeInvoices struct {
	path string
	err  error
}

func (f fakeInvoices) Ensure(order *models.Order) (string, error) {
	return f.path, f.err
}

func newOutboxForTest(db *gorm.DB, sender Sender, maxAttempts int) *Outbox {
	return NewOutbox(db, sender, fakeInvoices{path: "/tmp/invoice_7_abc.pdf"}, zap.NewNop(),
		config.OutboxConfig{Interval: 30 * time.Second, MaxAttempts: maxAttempts})
}

func pendingMessageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "reference", "order_id", "recipient", "subject", "body", "status", "attempts", "next_attempt_at"}).
		AddRow(11, "ref-1", 7, "jordan@example.com", "Order #7 Status Updated", "<p>body</p>", "pending", 0, time.Now())
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "email", "address", "total_price", "status", "created_at", "updated_at"}).
		AddRow(7, nil, "Jordan Blake", "jordan@example.com", "12 Prairie Rd", 100.0, "shipped", time.Now(), time.Now())
}

func TestDispatchSendsAndMarksSent(t *testing.T) {
	db, mock := newMockDB(t)
	sender := &fakeSender{}
	outbox := newOutboxForTest(db, sender, 5)

	mock.ExpectQuery("SELECT \\* FROM `outbox_messages`").WillReturnRows(pendingMessageRows())
	mock.ExpectQuery("SELECT \\* FROM `orders`").WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT \\* FROM `order_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_messages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, outbox.Dispatch(11))
	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "/tmp/invoice_7_abc.pdf", sender.attachment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchSkipsAlreadySentMessage(t *testing.T) {
	db, mock := newMockDB(t)
	sender := &fakeSender{}
	outbox := newOutboxForTest(db, sender, 5)

	rows := sqlmock.NewRows([]string{"id", "order_id", "recipient", "status", "attempts"}).
		AddRow(11, 7, "jordan@example.com", "sent", 1)
	mock.ExpectQuery("SELECT \\* FROM `outbox_messages`").WillReturnRows(rows)

	require.NoError(t, outbox.Dispatch(11))
	assert.Zero(t, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatchSendFailureKeepsMessagePending(t *testing.T) {
	db, mock := newMockDB(t)
	sender := &fakeSender{err: errors.New("smtp connection refused")}
	outbox := newOutboxForTest(db, sender, 5)

	mock.ExpectQuery("SELECT \\* FROM `outbox_messages`").WillReturnRows(pendingMessageRows())
	mock.ExpectQuery("SELECT \\* FROM `orders`").WillReturnRows(orderRows())
	mock.ExpectQuery("SELECT \\* FROM `order_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}))
	// failure bumps attempts and pushes out the next attempt; status column
	// is not touched so the row stays pending
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_messages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := outbox.Dispatch(11)
	require.Error(t, err)
	assert.Equal(t, 1, sender.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFailureMarksFailedAfterMaxAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	outbox := newOutboxForTest(db, &fakeSender{}, 3)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `outbox_messages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg := &models.OutboxMessage{ID: 11, Attempts: 2, Status: models.OutboxStatusPending}
	outbox.recordFailure(msg, errors.New("smtp connection refused"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackoffDoublesAndCapsAtOneHour(t *testing.T) {
	outbox := newOutboxForTest(nil, &fakeSender{}, 10)

	assert.Equal(t, 30*time.Second, outbox.backoff(1))
	assert.Equal(t, time.Minute, outbox.backoff(2))
	assert.Equal(t, 8*time.Minute, outbox.backoff(5))
	assert.Equal(t, time.Hour, outbox.backoff(8))
	assert.Equal(t, time.Hour, outbox.backoff(9))
}

func TestStatusEmailBodyNamesOrderAndStatus(t *testing.T) {
	order := &models.Order{ID: 7, Name: "Jordan Blake", Status: models.OrderStatusShipped}
	body := statusEmailBody(order)

	assert.Contains(t, body, "Jordan Blake")
	assert.Contains(t, body, "#7")
	assert.Contains(t, body, "shipped")
}
