package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newAppointmentsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Manage meeting appointments",
	}
	cmd.AddCommand(newAppointmentsListCommand(opts))
	return cmd
}

func newAppointmentsListCommand(opts *globalOptions) *cobra.Command {
	var clientID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments, optionally filtered by client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter *uuid.UUID
			if clientID != "" {
				id, err := uuid.Parse(clientID)
				if err != nil {
					return fmt.Errorf("invalid client id: %w", err)
				}
				filter = &id
			}

			client, crm, err := opts.newAPI()
			if err != nil {
				return err
			}
			defer client.Close()

			records, err := crm.Appointments.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSCHEDULED\tDURATION\tSTATUS")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%dm\t%s\n",
					r.ID,
					r.ScheduledAt.Local().Format(time.RFC3339),
					r.DurationMinutes,
					r.Status,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Filter by client UUID")
	return cmd
}
