package tools

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coolify-notifications/push-relay/builtin"
	"github.com/coolify-notifications/push-relay/pkg/triggers"
	"github.com/coolify-notifications/push-relay/pkg/util/misc"
	"github.com/coolify-notifications/push-relay/relay"
	"github.com/coolify-notifications/push-relay/shared/settings"
)

func newFilterCommand(cmdContext *commandContext) *cobra.Command {
	var command = cobra.Command{
		Use:   "filter",
		Short: "Notification filters related commands",
		RunE: func(c *cobra.Command, args []string) error {
			return errors.New("select child command")
		},
	}
	command.AddCommand(newFilterRunCommand(cmdContext))
	command.AddCommand(newFilterGetCommand(cmdContext))

	return &command
}

// findFilter looks the filter up in the configuration first, then among the predefined filters.
func findFilter(cfg *settings.Config, name string) (triggers.Filter, bool) {
	for _, f := range cfg.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return builtin.LookupFilter(name)
}

func newFilterRunCommand(cmdContext *commandContext) *cobra.Command {
	var command = cobra.Command{
		Use:   "run NAME [PAYLOAD]",
		Short: "Evaluates specified filter condition and prints the result",
		Example: `
# Execute a predefined filter
push-relay tools filter run ignore-test-events ./test-event.json

# Execute a filter defined in the configuration file against a payload read from stdin
cat ./event.json | push-relay tools filter run big-disks-only - --config ./config.yaml`,
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("expected at least one argument, got %d", len(args))
			}
			name := args[0]
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			r, cfg, err := cmdContext.getRelay()
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to parse config: %v\n", err)
				return nil
			}
			filter, ok := findFilter(cfg, name)
			if !ok {
				var names []string
				for _, f := range cfg.Filters {
					names = append(names, f.Name)
				}
				for _, f := range builtin.Filters {
					names = append(names, f.Name)
				}
				_, _ = fmt.Fprintf(cmdContext.stderr,
					"filter with name '%s' does not exist (found %s)\n", name, strings.Join(names, ", "))
				return nil
			}
			_, payload, err := cmdContext.loadPayload(path)
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to load payload: %v\n", err)
				return nil
			}
			svc, err := triggers.NewService([]triggers.Filter{filter})
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to compile filter %s: %v\n", name, err)
				return nil
			}
			res, notification := r.Render(log.NewEntry(log.StandardLogger()), payload)
			results := svc.Run(relay.FilterVars(res, notification, payload))

			w := tabwriter.NewWriter(cmdContext.stdout, 5, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "NAME\tCONDITION\tRESULT\n")
			for i := range results {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%v\n", results[i].Name, filter.When, results[i].Matched)
			}
			_ = w.Flush()
			return nil
		},
	}
	return &command
}

func newFilterGetCommand(cmdContext *commandContext) *cobra.Command {
	var (
		output string
	)
	var command = cobra.Command{
		Use: "get [NAME]",
		Example: `
# prints configured filters followed by the predefined ones
push-relay tools filter get
# print YAML formatted ignore-test-events filter definition
push-relay tools filter get ignore-test-events -o=yaml
`,
		Short: "Prints information about configured and predefined filters",
		RunE: func(c *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			cfg, err := cmdContext.getConfig()
			if err != nil {
				_, _ = fmt.Fprintf(cmdContext.stderr, "failed to parse config: %v\n", err)
				return nil
			}

			type item struct {
				triggers.Filter
				Enabled bool `json:"enabled"`
			}
			var items []item
			seen := map[string]bool{}
			for _, f := range cfg.Filters {
				seen[f.Name] = true
				if name == "" || f.Name == name {
					items = append(items, item{Filter: f, Enabled: true})
				}
			}
			for _, f := range builtin.Filters {
				if !seen[f.Name] && (name == "" || f.Name == name) {
					items = append(items, item{Filter: f})
				}
			}

			switch output {
			case "", "wide":
				w := tabwriter.NewWriter(cmdContext.stdout, 5, 0, 2, ' ', 0)
				_, _ = fmt.Fprintf(w, "NAME\tENABLED\tCONDITION\n")
				for _, i := range items {
					_, _ = fmt.Fprintf(w, "%s\t%v\t%s\n", i.Name, i.Enabled, i.When)
				}
				_ = w.Flush()
			case "name":
				for _, i := range items {
					_, _ = fmt.Fprintln(cmdContext.stdout, i.Name)
				}
			default:
				return misc.PrintFormatted(items, output, cmdContext.stdout)
			}
			return nil
		},
	}
	addOutputFlags(&command, &output)
	return &command
}
