package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// Notification is what gets delivered to a service: the rendered message plus the raw event payload.
type Notification struct {
	Title   string                 `json:"title"`
	Body    string                 `json:"body,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Payload json.RawMessage        `json:"-"`
}

// Destination holds notification destination details
type Destination struct {
	Service   string `json:"service"`
	Recipient string `json:"recipient"`
}

//go:generate mockgen -destination=./mocks/mocks.go -package=mocks github.com/coolify-notifications/push-relay/pkg/services NotificationService,ExpoService

// NotificationService defines notification service interface
type NotificationService interface {
	Send(ctx context.Context, notification Notification, dest Destination) error
}

func NewService(serviceType string, optsData []byte) (NotificationService, error) {
	switch serviceType {
	case "expo":
		var opts ExpoOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewExpoService(opts), nil
	case "email":
		var opts EmailOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewEmailService(opts), nil
	case "slack":
		var opts SlackOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewSlackService(opts), nil
	case "opsgenie":
		var opts OpsgenieOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewOpsgenieService(opts), nil
	case "webhook":
		var opts WebhookOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewWebhookService(opts), nil
	case "telegram":
		var opts TelegramOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewTelegramService(opts), nil
	case "console":
		var opts ConsoleOptions
		if err := yaml.Unmarshal(optsData, &opts); err != nil {
			return nil, err
		}
		return NewConsoleService(opts), nil
	default:
		return nil, fmt.Errorf("service type '%s' is not supported", serviceType)
	}
}

// Text returns the title and body joined the way plain text services display them.
func (n *Notification) Text() string {
	if n.Body == "" {
		return n.Title
	}
	return n.Title + "\n" + n.Body
}

func (n *Notification) Preview() string {
	preview := ""
	switch {
	case n.Title != "":
		preview = n.Title
		if n.Body != "" {
			preview += ": " + n.Body
		}
	default:
		if jsonData, err := json.Marshal(n); err != nil {
			preview = "failed to generate preview"
		} else {
			preview = string(jsonData)
		}
	}
	preview = strings.Split(preview, "\n")[0]
	if len(preview) > 100 {
		preview = preview[:99] + "..."
	}
	return preview
}
