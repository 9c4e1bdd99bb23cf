package services

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	log "github.com/sirupsen/logrus"

	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/text"
	"github.com/coolify-notifications/push-relay/shared/version"
)

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type BasicAuth struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WebhookOptions configures an endpoint receiving a copy of the raw event payload.
type WebhookOptions struct {
	URL                string     `json:"url"`
	Method             string     `json:"method,omitempty"`
	Headers            []Header   `json:"headers,omitempty"`
	BasicAuth          *BasicAuth `json:"basicAuth,omitempty"`
	InsecureSkipVerify bool       `json:"insecureSkipVerify,omitempty"`
}

func NewWebhookService(opts WebhookOptions) NotificationService {
	return &webhookService{opts: opts, transport: httputil.NewTransport(opts.URL, opts.InsecureSkipVerify)}
}

type webhookService struct {
	opts WebhookOptions
	// shared by every Send so connections to the endpoint are pooled
	transport http.RoundTripper
}

func (s webhookService) Send(ctx context.Context, notification Notification, dest Destination) error {
	method := text.Coalesce(s.opts.Method, http.MethodPost)
	req, err := http.NewRequestWithContext(ctx, method, s.opts.URL, bytes.NewReader(notification.Payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	for _, h := range s.opts.Headers {
		req.Header.Set(h.Name, h.Value)
	}
	if s.opts.BasicAuth != nil {
		req.SetBasicAuth(s.opts.BasicAuth.Username, s.opts.BasicAuth.Password)
	}

	client := &http.Client{
		Transport: httputil.NewLoggingRoundTripper(s.transport, log.WithField("service", text.Coalesce(dest.Service, "webhook"))),
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !(resp.StatusCode >= 200 && resp.StatusCode <= 299) {
		data, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			data = []byte(fmt.Sprintf("unable to read response data: %v", err))
		}
		return fmt.Errorf("request to %s has failed with error code %d : %s", s.opts.URL, resp.StatusCode, string(data))
	}
	return nil
}
