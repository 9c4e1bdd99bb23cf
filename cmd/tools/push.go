package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/pkg/services"
	"github.com/coolify-notifications/push-relay/pkg/util/misc"
	"github.com/coolify-notifications/push-relay/shared/text"
)

func newPushCommand(cmdContext *commandContext) *cobra.Command {
	var command = cobra.Command{
		Use:   "push",
		Short: "Expo push related commands",
		RunE: func(c *cobra.Command, args []string) error {
			return errors.New("select child command")
		},
	}
	command.AddCommand(newPushTestCommand(cmdContext))
	return &command
}

func newPushTestCommand(cmdContext *commandContext) *cobra.Command {
	var (
		title  string
		body   string
		token  string
		output string
	)
	var command = cobra.Command{
		Use:   "test",
		Short: "Sends a test push notification to the configured devices",
		Example: `
# Send the Coolify test notification to every configured device
push-relay tools push test

# Send a custom message to a single device
push-relay tools push test --token 'ExponentPushToken[xxx]' --title Hello --body World`,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := cmdContext.getConfig()
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to parse config: %v\n", err)
				return nil
			}
			if token != "" {
				cfg.Expo.Tokens = []string{token}
			}
			gateway := services.NewExpoService(cfg.Expo)

			testNotification := events.Translate(events.Payload{"event": string(events.KindTest)}).Notification
			n := services.Notification{
				Title: text.Coalesce(title, testNotification.Title),
				Body:  text.Coalesce(body, testNotification.Body),
				Data:  map[string]interface{}{"source": "coolify", "event": string(events.KindTest)},
			}

			defer withDebugLogs()()
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()
			res, err := gateway.Push(ctx, n)
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to send push notification: %v\n", err)
				return nil
			}
			return misc.PrintFormatted(res, output, cmdContext.stdout)
		},
	}
	command.Flags().StringVar(&title, "title", "", "Notification title")
	command.Flags().StringVar(&body, "body", "", "Notification body")
	command.Flags().StringVar(&token, "token", "", "Send to this Expo push token instead of the configured ones")
	command.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of:json|yaml")
	return &command
}
