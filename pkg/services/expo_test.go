package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExpoTokens(t *testing.T) {
	valid, invalid := ParseExpoTokens(" ExponentPushToken[abc] ,ExpoPushToken[def],, bogus,ExponentPushToken[]", "ExponentPushToken[ghi]")
	assert.Equal(t, []string{"ExponentPushToken[abc]", "ExpoPushToken[def]", "ExponentPushToken[ghi]"}, valid)
	assert.Equal(t, []string{"bogus", "ExponentPushToken[]"}, invalid)

	valid, invalid = ParseExpoTokens("")
	assert.Empty(t, valid)
	assert.Empty(t, invalid)
}

func TestNewExpoService_Defaults(t *testing.T) {
	svc := NewExpoService(ExpoOptions{Tokens: []string{"ExponentPushToken[a],nope"}})
	assert.Equal(t, DefaultExpoURL, svc.opts.URL)
	assert.Equal(t, DefaultExpoBodyFallback, svc.opts.BodyFallback)
	assert.Equal(t, []string{"ExponentPushToken[a]"}, svc.Tokens())
}

func TestExpo_Messages(t *testing.T) {
	svc := NewExpoService(ExpoOptions{BodyFallback: "fallback"})
	data := map[string]interface{}{"event": "foo"}
	messages := svc.Messages(Notification{Title: "Event: foo", Data: data}, []string{"ExponentPushToken[a]", "ExponentPushToken[b]"})
	assert.Equal(t, []PushMessage{
		{To: "ExponentPushToken[a]", Title: "Event: foo", Body: "fallback", Sound: "default", Data: data},
		{To: "ExponentPushToken[b]", Title: "Event: foo", Body: "fallback", Sound: "default", Data: data},
	}, messages)
}

func TestExpo_Push(t *testing.T) {
	var receivedHeaders http.Header
	var receivedMessages []PushMessage
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		receivedHeaders = request.Header
		data, err := ioutil.ReadAll(request.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(data, &receivedMessages))
		_, _ = writer.Write([]byte(`{"data":[{"status":"ok","id":"1"}]}`))
	}))
	defer server.Close()

	svc := NewExpoService(ExpoOptions{
		URL:         server.URL,
		AccessToken: "secret",
		Tokens:      []string{"ExponentPushToken[a]"},
	})
	res, err := svc.Push(context.Background(), Notification{Title: "Coolify Test Event", Body: "Test event received"})
	if !assert.NoError(t, err) {
		return
	}

	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, map[string]interface{}{"data": []interface{}{map[string]interface{}{"status": "ok", "id": "1"}}}, res.Body)
	assert.Equal(t, "Bearer secret", receivedHeaders.Get("Authorization"))
	assert.Equal(t, "application/json", receivedHeaders.Get("Content-Type"))
	assert.Equal(t, []PushMessage{{
		To: "ExponentPushToken[a]", Title: "Coolify Test Event", Body: "Test event received", Sound: "default",
	}}, receivedMessages)
}

func TestExpo_PushWithoutAccessToken(t *testing.T) {
	var authorization string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authorization = request.Header.Get("Authorization")
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	svc := NewExpoService(ExpoOptions{URL: server.URL, Tokens: []string{"ExponentPushToken[a]"}})
	_, err := svc.Push(context.Background(), Notification{Title: "t"})
	assert.NoError(t, err)
	assert.Empty(t, authorization)
}

func TestExpo_PushBatches(t *testing.T) {
	var lock sync.Mutex
	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		var messages []PushMessage
		data, _ := ioutil.ReadAll(request.Body)
		_ = json.Unmarshal(data, &messages)
		lock.Lock()
		batchSizes = append(batchSizes, len(messages))
		lock.Unlock()
		_, _ = writer.Write([]byte(fmt.Sprintf(`{"count":%d}`, len(messages))))
	}))
	defer server.Close()

	var tokens []string
	for i := 0; i < 150; i++ {
		tokens = append(tokens, fmt.Sprintf("ExponentPushToken[%d]", i))
	}
	svc := NewExpoService(ExpoOptions{URL: server.URL, Tokens: tokens})
	res, err := svc.Push(context.Background(), Notification{Title: "t"})
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, []int{100, 50}, batchSizes)
	assert.Equal(t, []interface{}{
		map[string]interface{}{"count": float64(100)},
		map[string]interface{}{"count": float64(50)},
	}, res.Body)
}

func TestExpo_PushFailedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
		_, _ = writer.Write([]byte(`{"errors":[{"code":"VALIDATION_ERROR"}]}`))
	}))
	defer server.Close()

	svc := NewExpoService(ExpoOptions{URL: server.URL, Tokens: []string{"ExponentPushToken[a]"}})
	_, err := svc.Push(context.Background(), Notification{Title: "t"})

	pushErr, ok := err.(*PushError)
	if !assert.True(t, ok) {
		return
	}
	assert.Equal(t, http.StatusBadRequest, pushErr.Status)
	assert.Equal(t, map[string]interface{}{"errors": []interface{}{map[string]interface{}{"code": "VALIDATION_ERROR"}}}, pushErr.Body)
	assert.Equal(t, fmt.Sprintf(`request to %s has failed with error code 400 : {"errors":[{"code":"VALIDATION_ERROR"}]}`, server.URL), err.Error())
}

func TestExpo_PushNonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusServiceUnavailable)
		_, _ = writer.Write([]byte("maintenance\n"))
	}))
	defer server.Close()

	svc := NewExpoService(ExpoOptions{URL: server.URL, Tokens: []string{"ExponentPushToken[a]"}})
	_, err := svc.Push(context.Background(), Notification{Title: "t"})
	if pushErr, ok := err.(*PushError); assert.True(t, ok) {
		assert.Equal(t, "maintenance", pushErr.Body)
	}
}

func TestExpo_PushWithoutTokens(t *testing.T) {
	svc := NewExpoService(ExpoOptions{})
	_, err := svc.Push(context.Background(), Notification{Title: "t"})
	assert.EqualError(t, err, "no Expo push tokens configured")
}

func TestExpo_SendToRecipient(t *testing.T) {
	var receivedMessages []PushMessage
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := ioutil.ReadAll(request.Body)
		_ = json.Unmarshal(data, &receivedMessages)
	}))
	defer server.Close()

	svc := NewExpoService(ExpoOptions{URL: server.URL, Tokens: []string{"ExponentPushToken[a]"}})
	err := svc.Send(context.Background(), Notification{Title: "t"}, Destination{Service: "expo", Recipient: "ExponentPushToken[z]"})
	assert.NoError(t, err)
	if assert.Len(t, receivedMessages, 1) {
		assert.Equal(t, "ExponentPushToken[z]", receivedMessages[0].To)
	}
}
