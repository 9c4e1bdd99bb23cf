package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Send(t *testing.T) {
	var out bytes.Buffer
	service := &consoleService{out: &out}
	err := service.Send(context.Background(), Notification{Title: "Coolify Test Event", Body: "Test event received"},
		Destination{Service: "console", Recipient: "stdout"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, `destination:
  recipient: stdout
  service: console
notification:
  body: Test event received
  title: Coolify Test Event
`, out.String())
}

func TestConsole_SendJSON(t *testing.T) {
	var out bytes.Buffer
	service := &consoleService{opts: ConsoleOptions{Format: "json"}, out: &out}
	err := service.Send(context.Background(), Notification{Title: "t"}, Destination{})
	assert.NoError(t, err)
	assert.Contains(t, out.String(), `"title": "t"`)
}
