package tools

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func withDebugLogs() func() {
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	return func() {
		log.SetLevel(level)
	}
}

func addOutputFlags(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "wide", "Output format. One of:json|yaml|wide|name")
}

func NewToolsCommand() *cobra.Command {
	var (
		cmdContext = commandContext{
			stdout:    os.Stdout,
			stderr:    os.Stderr,
			stdin:     os.Stdin,
			lookupEnv: os.LookupEnv,
		}
	)
	var command = cobra.Command{
		Use:   "tools",
		Short: "Set of CLI commands that helps to configure the relay",
		Run: func(c *cobra.Command, args []string) {
			c.HelpFunc()(c, args)
		},
	}

	command.AddCommand(newEventCommand(&cmdContext))
	command.AddCommand(newFilterCommand(&cmdContext))
	command.AddCommand(newPushCommand(&cmdContext))

	command.PersistentFlags().StringVar(&cmdContext.configPath,
		"config", os.Getenv("CONFIG_PATH"), "Configuration file location")
	return &command
}
