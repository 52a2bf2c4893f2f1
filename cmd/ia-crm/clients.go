package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nickdtt/ia-crm/api"
)

func newClientsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage marketing clients",
	}
	cmd.AddCommand(newClientsListCommand(opts))
	cmd.AddCommand(newClientsCreateCommand(opts))
	return cmd
}

func newClientsListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, crm, err := opts.newAPI()
			if err != nil {
				return err
			}
			defer client.Close()

			records, err := crm.Clients.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tSEGMENT")
			for _, r := range records {
				segment := "-"
				if r.Segment != nil {
					segment = string(*r.Segment)
				}
				fmt.Fprintf(tw, "%s\t%s %s\t%s\t%s\n", r.ID, r.FirstName, r.LastName, r.Phone, segment)
			}
			return tw.Flush()
		},
	}
}

func newClientsCreateCommand(opts *globalOptions) *cobra.Command {
	var in api.ClientCreate
	var segment string
	var companyName string
	var email string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if segment != "" {
				s := api.Segment(segment)
				in.Segment = &s
			}
			if companyName != "" {
				in.CompanyName = &companyName
			}
			if email != "" {
				in.Email = &email
			}

			client, crm, err := opts.newAPI()
			if err != nil {
				return err
			}
			defer client.Close()

			record, err := crm.Clients.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created client %s (%s %s)\n", record.ID, record.FirstName, record.LastName)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.FirstName, "first-name", "", "First name")
	flags.StringVar(&in.LastName, "last-name", "", "Last name")
	flags.StringVar(&in.Phone, "phone", "", "Phone with country code, e.g. +5511987654321")
	flags.StringVar(&email, "email", "", "Email (optional)")
	flags.StringVar(&companyName, "company", "", "Company name (optional)")
	flags.StringVar(&segment, "segment", "", "Market segment, e.g. clinica_medica (optional)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
