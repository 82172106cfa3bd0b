package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/econest-bedding/storefront-api/config"
)

func TestSMTPSenderRequiresHost(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{})
	err := sender.Send("jordan@example.com", "hello", "<p>hi</p>", "")
	assert.EqualError(t, err, "smtp is not configured")
}

func TestNilRelayIsNoOp(t *testing.T) {
	relay, err := NewRelay("", "order-status-events")
	assert.NoError(t, err)
	assert.Nil(t, relay)

	assert.NoError(t, relay.PublishStatusChange(nil))
	relay.Close()
}
