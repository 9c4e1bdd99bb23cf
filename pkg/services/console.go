package services

import (
	"context"
	"io"
	"os"

	"github.com/coolify-notifications/push-relay/pkg/util/misc"
	"github.com/coolify-notifications/push-relay/shared/text"
)

type ConsoleOptions struct {
	Format string `json:"format"`
}

// NewConsoleService prints notifications to stdout. Useful for local testing of a configuration.
func NewConsoleService(opts ConsoleOptions) NotificationService {
	return &consoleService{opts: opts, out: os.Stdout}
}

type consoleService struct {
	opts ConsoleOptions
	out  io.Writer
}

func (s *consoleService) Send(_ context.Context, notification Notification, dest Destination) error {
	return misc.PrintFormatted(map[string]interface{}{
		"destination":  dest,
		"notification": notification,
	}, text.Coalesce(s.opts.Format, "yaml"), s.out)
}
