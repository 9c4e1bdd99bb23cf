package tools

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coolify-notifications/push-relay/builtin"
	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/pkg/util/misc"
)

type translation struct {
	Event        string               `json:"event"`
	Kind         events.Kind          `json:"kind"`
	Group        string               `json:"group,omitempty"`
	Outcome      events.Outcome       `json:"outcome"`
	Notification *events.Notification `json:"notification,omitempty"`
	SuppressedBy string               `json:"suppressedBy,omitempty"`
}

func newEventCommand(cmdContext *commandContext) *cobra.Command {
	var command = cobra.Command{
		Use:   "event",
		Short: "Coolify event related commands",
		RunE: func(c *cobra.Command, args []string) error {
			return errors.New("select child command")
		},
	}
	command.AddCommand(newEventTranslateCommand(cmdContext))
	command.AddCommand(newEventKindsCommand(cmdContext))
	return &command
}

func newEventTranslateCommand(cmdContext *commandContext) *cobra.Command {
	var (
		output string
	)
	var command = cobra.Command{
		Use:   "translate [PAYLOAD]",
		Short: "Translates a Coolify webhook payload and prints the push notification it produces",
		Example: `
# Translate the payload stored in a file
push-relay tools event translate ./deployment-failed.json

# Translate a payload read from stdin using custom templates and filters
echo '{"event":"backup_started"}' | push-relay tools event translate - --config ./config.yaml -o yaml`,
		RunE: func(c *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			r, _, err := cmdContext.getRelay()
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to parse config: %v\n", err)
				return nil
			}
			_, payload, err := cmdContext.loadPayload(path)
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to load payload: %v\n", err)
				return nil
			}

			res, notification := r.Render(log.NewEntry(log.StandardLogger()), payload)
			item := translation{Event: payload.Event(), Kind: res.Kind, Outcome: res.Outcome, Notification: notification}
			if entry, ok := builtin.Lookup(res.Kind); ok {
				item.Group = entry.Group
			}
			if name, ok := r.Suppressed(res, notification, payload); ok {
				item.SuppressedBy = name
			}

			switch output {
			case "", "wide":
				w := tabwriter.NewWriter(cmdContext.stdout, 5, 0, 2, ' ', 0)
				_, _ = fmt.Fprintf(w, "EVENT\tGROUP\tOUTCOME\tTITLE\tBODY\tSUPPRESSED BY\n")
				title, body := "", ""
				if notification != nil {
					title, body = notification.Title, strings.ReplaceAll(notification.Body, "\n", " ")
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", item.Event, item.Group, item.Outcome, title, body, item.SuppressedBy)
				_ = w.Flush()
			default:
				return misc.PrintFormatted(item, output, cmdContext.stdout)
			}
			return nil
		},
	}
	addOutputFlags(&command, &output)
	return &command
}

func newEventKindsCommand(cmdContext *commandContext) *cobra.Command {
	var (
		output string
	)
	var command = cobra.Command{
		Use:   "kinds",
		Short: "Prints the Coolify event kinds with a dedicated notification",
		Example: `
# prints all event kinds
push-relay tools event kinds
# print YAML formatted catalog
push-relay tools event kinds -o=yaml
`,
		RunE: func(c *cobra.Command, args []string) error {
			switch output {
			case "", "wide":
				w := tabwriter.NewWriter(cmdContext.stdout, 5, 0, 2, ' ', 0)
				_, _ = fmt.Fprintf(w, "KIND\tGROUP\tTITLE\tBODY\n")
				for _, entry := range builtin.Catalog {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", entry.Kind, entry.Group, entry.Title, entry.Body)
				}
				_ = w.Flush()
			case "name":
				for _, entry := range builtin.Catalog {
					_, _ = fmt.Fprintln(cmdContext.stdout, entry.Kind)
				}
			default:
				return misc.PrintFormatted(builtin.Catalog, output, cmdContext.stdout)
			}
			return nil
		},
	}
	addOutputFlags(&command, &output)
	return &command
}
