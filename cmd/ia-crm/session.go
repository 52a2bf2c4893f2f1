package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Terminate the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			opts.log.Info("logged out")
			return nil
		},
	}
}

func newStatusCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether a usable session is stored",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if client.SessionActive(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), "session: active")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session: none (run `ia-crm login`)")
			return nil
		},
	}
}
