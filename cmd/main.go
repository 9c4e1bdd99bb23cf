package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coolify-notifications/push-relay/cmd/tools"
	"github.com/coolify-notifications/push-relay/shared/version"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var command = cobra.Command{
		Use:     version.Name,
		Short:   "Relays Coolify webhook events to Expo push notifications",
		Version: version.Tag(),
		Run: func(c *cobra.Command, args []string) {
			c.HelpFunc()(c, args)
		},
	}
	command.AddCommand(newServerCommand())
	command.AddCommand(tools.NewToolsCommand())
	return &command
}
