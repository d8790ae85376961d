package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store answers authenticated requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.cscartClient()
			if err != nil {
				return err
			}
			outcome, err := client.Ping(cmd.Context())
			if err != nil {
				return err
			}
			if err := outcome.Err(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok (status %d)\n", outcome.StatusCode)
			return err
		},
	}
}

func newAuthCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Customer session keys",
	}

	send := &cobra.Command{
		Use:   "send <email>",
		Short: "Request a session key and login link for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cscartClient()
			if err != nil {
				return err
			}
			outcome, err := client.Auth.SendAuthRequest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printOutcome(cmd, outcome)
		},
	}

	session := &cobra.Command{
		Use:   "session <email>",
		Short: "Show the session stored for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.sessionStore()
			if err != nil {
				return err
			}
			found, ok, err := store.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no session stored for %s", args[0])
			}
			data, err := json.MarshalIndent(found, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.AddCommand(send, session)
	return cmd
}

func newAPIKeyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Vendor API keys",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "generate <vendor-email>",
		Short: "Generate an API key for a vendor account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.cscartClient()
			if err != nil {
				return err
			}
			outcome, err := client.APIKeys.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printOutcome(cmd, outcome)
		},
	})
	return cmd
}
