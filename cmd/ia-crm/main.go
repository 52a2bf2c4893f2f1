package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "ia-crm",
		Short:         "Command line client for the IA-CRM backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.complete()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "Base URL of the CRM backend")
	flags.StringVar(&opts.credentialsFile, "credentials-file", "", "Path to the credentials file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	root.AddCommand(newLoginCommand(opts))
	root.AddCommand(newLogoutCommand(opts))
	root.AddCommand(newStatusCommand(opts))
	root.AddCommand(newClientsCommand(opts))
	root.AddCommand(newAppointmentsCommand(opts))
	root.AddCommand(newChatCommand(opts))

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
