package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewService(t *testing.T) {
	for _, serviceType := range []string{"expo", "email", "slack", "opsgenie", "webhook", "telegram", "console"} {
		svc, err := NewService(serviceType, []byte("{}"))
		assert.NoError(t, err, serviceType)
		assert.NotNil(t, svc, serviceType)
	}

	_, err := NewService("pager", nil)
	assert.EqualError(t, err, "service type 'pager' is not supported")

	_, err = NewService("slack", []byte("token: [broken"))
	assert.Error(t, err)
}

func TestNewService_ParsesOptions(t *testing.T) {
	svc, err := NewService("webhook", []byte(`
url: https://relay.example.com/hook
headers:
- name: X-Source
  value: coolify
`))
	if !assert.NoError(t, err) {
		return
	}
	webhook := svc.(*webhookService)
	assert.Equal(t, "https://relay.example.com/hook", webhook.opts.URL)
	assert.Equal(t, []Header{{Name: "X-Source", Value: "coolify"}}, webhook.opts.Headers)
}

func TestPreview(t *testing.T) {
	n := Notification{Title: "Server Unreachable", Body: "Server prod is unreachable"}
	assert.Equal(t, "Server Unreachable: Server prod is unreachable", n.Preview())

	n = Notification{Title: "t", Body: strings.Repeat("x", 200)}
	assert.Len(t, n.Preview(), 102)
	assert.True(t, strings.HasSuffix(n.Preview(), "..."))

	n = Notification{Title: "first\nsecond"}
	assert.Equal(t, "first", n.Preview())

	n = Notification{Data: map[string]interface{}{"a": "b"}}
	assert.Equal(t, `{"title":"","data":{"a":"b"}}`, n.Preview())
}

func TestText(t *testing.T) {
	assert.Equal(t, "Title", (&Notification{Title: "Title"}).Text())
	assert.Equal(t, "Title\nBody", (&Notification{Title: "Title", Body: "Body"}).Text())
}
