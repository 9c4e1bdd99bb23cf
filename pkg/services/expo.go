package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/text"
	"github.com/coolify-notifications/push-relay/shared/version"
)

const (
	DefaultExpoURL          = "https://exp.host/--/api/v2/push/send"
	DefaultExpoBodyFallback = "Coolify event received"

	// maximum number of messages accepted by a single push request
	expoBatchSize = 100
)

var validExpoToken = regexp.MustCompile(`^Expo(nent)?PushToken\[[^\]]+\]$`)

type ExpoOptions struct {
	URL                string   `json:"url"`
	AccessToken        string   `json:"accessToken"`
	Tokens             []string `json:"tokens"`
	BodyFallback       string   `json:"bodyFallback"`
	Sound              string   `json:"sound"`
	InsecureSkipVerify bool     `json:"insecureSkipVerify"`
}

// PushMessage is a single push gateway message.
type PushMessage struct {
	To    string                 `json:"to"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Sound string                 `json:"sound,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// PushResponse holds the gateway status and decoded response body. Body is a list when messages were sent in several batches.
type PushResponse struct {
	Status int         `json:"status"`
	Body   interface{} `json:"body"`
}

// PushError is returned when the gateway answers with a non 2xx status.
type PushError struct {
	URL    string
	Status int
	Body   interface{}
}

func (e *PushError) Error() string {
	return fmt.Sprintf("request to %s has failed with error code %d : %s", e.URL, e.Status, formatBody(e.Body))
}

// ParseExpoTokens keeps the well formed push tokens and returns the rejected ones separately.
func ParseExpoTokens(tokens ...string) (valid []string, invalid []string) {
	for _, raw := range tokens {
		for _, token := range text.SplitRemoveEmpty(raw, ",") {
			if validExpoToken.MatchString(token) {
				valid = append(valid, token)
			} else {
				invalid = append(invalid, token)
			}
		}
	}
	return valid, invalid
}

// ExpoService pushes notifications to the Expo push gateway.
type ExpoService interface {
	NotificationService
	Tokens() []string
	Push(ctx context.Context, notification Notification) (*PushResponse, error)
}

func NewExpoService(opts ExpoOptions) *expoService {
	opts.URL = text.Coalesce(opts.URL, DefaultExpoURL)
	opts.BodyFallback = text.Coalesce(opts.BodyFallback, DefaultExpoBodyFallback)
	opts.Sound = text.Coalesce(opts.Sound, "default")
	tokens, invalid := ParseExpoTokens(opts.Tokens...)
	for _, token := range invalid {
		log.Warnf("Ignoring invalid Expo push token '%s', expected format ExponentPushToken[...]", token)
	}
	opts.Tokens = tokens
	return &expoService{
		opts:   opts,
		client: httputil.NewClient(opts.URL, opts.InsecureSkipVerify, log.WithField("service", "expo")),
	}
}

type expoService struct {
	opts   ExpoOptions
	client *http.Client
}

func (s *expoService) Tokens() []string {
	return s.opts.Tokens
}

// Messages wraps the notification into one message per token.
func (s *expoService) Messages(notification Notification, tokens []string) []PushMessage {
	body := text.Coalesce(notification.Body, s.opts.BodyFallback)
	var messages []PushMessage
	for _, token := range tokens {
		messages = append(messages, PushMessage{
			To:    token,
			Title: notification.Title,
			Body:  body,
			Sound: s.opts.Sound,
			Data:  notification.Data,
		})
	}
	return messages
}

func (s *expoService) Push(ctx context.Context, notification Notification) (*PushResponse, error) {
	return s.push(ctx, s.Messages(notification, s.opts.Tokens))
}

func (s *expoService) Send(ctx context.Context, notification Notification, dest Destination) error {
	tokens := s.opts.Tokens
	if dest.Recipient != "" {
		tokens = []string{dest.Recipient}
	}
	_, err := s.push(ctx, s.Messages(notification, tokens))
	return err
}

func (s *expoService) push(ctx context.Context, messages []PushMessage) (*PushResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no Expo push tokens configured")
	}
	res := &PushResponse{}
	var bodies []interface{}
	for start := 0; start < len(messages); start += expoBatchSize {
		end := start + expoBatchSize
		if end > len(messages) {
			end = len(messages)
		}
		status, body, err := s.post(ctx, messages[start:end])
		if err != nil {
			return nil, err
		}
		res.Status = status
		bodies = append(bodies, body)
		if status < 200 || status > 299 {
			return nil, &PushError{URL: s.opts.URL, Status: status, Body: collapse(bodies)}
		}
	}
	res.Body = collapse(bodies)
	return res, nil
}

func (s *expoService) post(ctx context.Context, messages []PushMessage) (int, interface{}, error) {
	data, err := json.Marshal(messages)
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.URL, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if s.opts.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.opts.AccessToken)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respData, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, decodeBody(respData), nil
}

func decodeBody(data []byte) interface{} {
	var body interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return strings.TrimSpace(string(data))
	}
	return body
}

func collapse(bodies []interface{}) interface{} {
	if len(bodies) == 1 {
		return bodies[0]
	}
	return bodies
}

func formatBody(body interface{}) string {
	if s, ok := body.(string); ok {
		return s
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%v", body)
	}
	return string(data)
}
