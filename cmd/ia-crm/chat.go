package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newChatCommand(opts *globalOptions) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the CRM chat agent interactively",
		Long: `Opens an interactive session with the chat agent. Type messages and press
enter; type /reset to clear the agent's session memory and /quit to leave.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			client, crm, err := opts.newAPI()
			if err != nil {
				return err
			}
			defer client.Close()

			opts.log.WithField("session_id", sessionID).Debug("chat session started")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			out := cmd.OutOrStdout()
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())

				switch line {
				case "":
					continue
				case "/quit":
					return nil
				case "/reset":
					result, err := crm.Chat.ResetSession(cmd.Context(), sessionID)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, result.Message)
					continue
				}

				reply, err := crm.Chat.SendMessage(cmd.Context(), sessionID, line)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, reply.Response)
			}
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Chat session id (random when omitted)")
	return cmd
}
