package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	iacrm "github.com/Nickdtt/ia-crm"
)

func newLoginCommand(opts *globalOptions) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the CRM backend and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &email); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}
			if password == "" {
				pw, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = pw
			}

			client, err := opts.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Login(cmd.Context(), email, password); err != nil {
				if errors.Is(err, iacrm.ErrInvalidCredentials) {
					return errors.New("invalid email or password")
				}
				return err
			}

			opts.log.WithFields(logrus.Fields{
				"email":       email,
				"credentials": opts.credentialsFile,
			}).Info("logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted; prefer the prompt)")

	return cmd
}

// promptPassword reads the password without echo when stdin is a terminal,
// falling back to a plain line read for piped input.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var pw string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &pw); err != nil && !errors.Is(err, os.ErrClosed) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
