package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpsgenie_UnknownRecipient(t *testing.T) {
	service := NewOpsgenieService(OpsgenieOptions{ApiKeys: map[string]string{"ops": "key"}})
	err := service.Send(context.Background(), Notification{Title: "t"}, Destination{Service: "opsgenie", Recipient: "dev"})
	assert.EqualError(t, err, "no API key configured for recipient dev")
}
