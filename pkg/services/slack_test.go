package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIconEmoij(t *testing.T) {
	assert.Equal(t, true, validIconEmoij.MatchString(":slack:"))
	assert.Equal(t, true, validIconEmoij.MatchString(":chart_with_upwards_trend:"))
	assert.Equal(t, false, validIconEmoij.MatchString("http://lorempixel.com/48/48"))
}

func TestValidIconURL(t *testing.T) {
	assert.Equal(t, true, isValidIconURL("http://lorempixel.com/48/48"))
	assert.Equal(t, true, isValidIconURL("https://lorempixel.com/48/48"))
	assert.Equal(t, false, isValidIconURL("favicon.ico"))
	assert.Equal(t, false, isValidIconURL("ftp://favicon.ico"))
	assert.Equal(t, false, isValidIconURL("ftp://lorempixel.com/favicon.ico"))
}

func TestSlack_Send(t *testing.T) {
	var receivedPath string
	var received url.Values
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedPath = request.URL.Path
		assert.NoError(t, request.ParseForm())
		received = request.PostForm
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok":true,"channel":"C1","ts":"1"}`))
	}))
	defer server.Close()

	service := NewSlackService(SlackOptions{Token: "xoxb-1", ApiURL: server.URL + "/", Username: "coolify", Icon: ":rocket:"})
	err := service.Send(context.Background(), Notification{Title: "Deployment Failed", Body: "Deployment of api for backend failed"},
		Destination{Service: "slack", Recipient: "alerts"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, "/chat.postMessage", receivedPath)
	assert.Equal(t, "alerts", received.Get("channel"))
	assert.Equal(t, "Deployment Failed", received.Get("text"))
	assert.Equal(t, "coolify", received.Get("username"))
	assert.Equal(t, ":rocket:", received.Get("icon_emoji"))
	assert.Contains(t, received.Get("attachments"), "Deployment of api for backend failed")
}

func TestSlack_SendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"ok":false,"error":"channel_not_found"}`))
	}))
	defer server.Close()

	service := NewSlackService(SlackOptions{Token: "xoxb-1", ApiURL: server.URL + "/"})
	err := service.Send(context.Background(), Notification{Title: "t"}, Destination{Recipient: "missing"})
	assert.EqualError(t, err, "channel_not_found")
}
