package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	log "github.com/sirupsen/logrus"

	httputil "github.com/coolify-notifications/push-relay/shared/http"
)

type TelegramOptions struct {
	Token string `json:"token"`
}

func NewTelegramService(opts TelegramOptions) NotificationService {
	return &telegramService{opts: opts, client: httputil.NewClient("https://api.telegram.org", false, log.WithField("service", "telegram"))}
}

type telegramService struct {
	opts   TelegramOptions
	client *http.Client
}

// telegramMessage addresses numeric chat ids directly and anything else as a public channel name.
func telegramMessage(recipient string, text string) tgbotapi.MessageConfig {
	if chatID, err := strconv.ParseInt(recipient, 10, 64); err == nil {
		return tgbotapi.NewMessage(chatID, text)
	}
	return tgbotapi.NewMessageToChannel("@"+strings.TrimPrefix(recipient, "@"), text)
}

func (s telegramService) Send(ctx context.Context, notification Notification, dest Destination) error {
	bot, err := tgbotapi.NewBotAPIWithClient(s.opts.Token, httputil.WithContext(ctx, s.client))
	if err != nil {
		return err
	}
	_, err = bot.Send(telegramMessage(dest.Recipient, notification.Text()))
	return err
}
