package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/opsgenie/opsgenie-go-sdk-v2/alert"
	"github.com/opsgenie/opsgenie-go-sdk-v2/client"
	log "github.com/sirupsen/logrus"

	httputil "github.com/coolify-notifications/push-relay/shared/http"
	"github.com/coolify-notifications/push-relay/shared/text"
)

type OpsgenieOptions struct {
	ApiUrl  string            `json:"apiUrl"`
	ApiKeys map[string]string `json:"apiKeys"`
	Source  string            `json:"source"`
}

type opsgenieService struct {
	opts   OpsgenieOptions
	client *http.Client
}

func NewOpsgenieService(opts OpsgenieOptions) NotificationService {
	return &opsgenieService{opts: opts, client: httputil.NewClient(opts.ApiUrl, false, log.WithField("service", "opsgenie"))}
}

func (s *opsgenieService) Send(ctx context.Context, notification Notification, dest Destination) error {
	apiKey, ok := s.opts.ApiKeys[dest.Recipient]
	if !ok {
		return fmt.Errorf("no API key configured for recipient %s", dest.Recipient)
	}
	alertClient, err := alert.NewClient(&client.Config{
		ApiKey:         apiKey,
		OpsGenieAPIURL: client.ApiUrl(s.opts.ApiUrl),
		HttpClient:     s.client,
	})
	if err != nil {
		return err
	}
	_, err = alertClient.Create(ctx, &alert.CreateAlertRequest{
		Message:     notification.Title,
		Description: notification.Body,
		Responders: []alert.Responder{
			{
				Type: "team",
				Id:   dest.Recipient,
			},
		},
		Source: text.Coalesce(s.opts.Source, "Coolify"),
	})
	return err
}
