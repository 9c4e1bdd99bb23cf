package services

import (
	"context"
	"net/http"
	"net/url"
	"regexp"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	httputil "github.com/coolify-notifications/push-relay/shared/http"
)

type SlackOptions struct {
	Username           string `json:"username"`
	Icon               string `json:"icon"`
	Token              string `json:"token"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify"`
	ApiURL             string `json:"apiURL"`
}

type slackService struct {
	opts   SlackOptions
	apiURL string
	client *http.Client
}

var validIconEmoij = regexp.MustCompile(`^:.+:$`)

func NewSlackService(opts SlackOptions) NotificationService {
	apiURL := slack.APIURL
	if opts.ApiURL != "" {
		apiURL = opts.ApiURL
	}
	return &slackService{
		opts:   opts,
		apiURL: apiURL,
		client: httputil.NewClient(apiURL, opts.InsecureSkipVerify, log.WithField("service", "slack")),
	}
}

func (s *slackService) Send(ctx context.Context, notification Notification, dest Destination) error {
	sl := slack.New(s.opts.Token, slack.OptionHTTPClient(s.client), slack.OptionAPIURL(s.apiURL))
	msgOptions := []slack.MsgOption{slack.MsgOptionText(notification.Title, false)}
	if notification.Body != "" {
		msgOptions = append(msgOptions, slack.MsgOptionAttachments(slack.Attachment{
			Title:    notification.Title,
			Text:     notification.Body,
			Fallback: notification.Preview(),
		}))
	}
	if s.opts.Username != "" {
		msgOptions = append(msgOptions, slack.MsgOptionUsername(s.opts.Username))
	}
	if s.opts.Icon != "" {
		if validIconEmoij.MatchString(s.opts.Icon) {
			msgOptions = append(msgOptions, slack.MsgOptionIconEmoji(s.opts.Icon))
		} else if isValidIconURL(s.opts.Icon) {
			msgOptions = append(msgOptions, slack.MsgOptionIconURL(s.opts.Icon))
		} else {
			log.Warnf("Icon reference '%v' is not a valid emoij or url", s.opts.Icon)
		}
	}
	_, _, err := sl.PostMessageContext(ctx, dest.Recipient, msgOptions...)
	return err
}

func isValidIconURL(iconURL string) bool {
	_, err := url.ParseRequestURI(iconURL)
	if err != nil {
		return false
	}
	u, err := url.Parse(iconURL)
	if err != nil || (u.Scheme == "" || !(u.Scheme == "http" || u.Scheme == "https")) || u.Host == "" {
		return false
	}
	return true
}
