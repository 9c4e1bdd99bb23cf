package services

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// silentSMTP accepts connections and never sends a greeting.
func silentSMTP(t *testing.T) (string, int) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = listener.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			_ = conn.Close()
		}
	})
	host, port, _ := net.SplitHostPort(listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return host, p
}

func TestEmail_SendHonorsDeadline(t *testing.T) {
	host, port := silentSMTP(t)
	service := NewEmailService(EmailOptions{Host: host, Port: port, From: "relay@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := service.Send(ctx, Notification{Title: "Deploy", Body: "done"}, Destination{Recipient: "ops@example.com"})
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
		assert.Contains(t, err.Error(), "ops@example.com")
	}
	assert.Less(t, int64(time.Since(start)), int64(2*time.Second))
}
