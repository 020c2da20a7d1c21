package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCredentialsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-credentials",
		Short: "Check that the configured API key is accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.openServices(cmd, false)
			if err != nil {
				return err
			}
			defer svc.Close()

			if _, err := svc.api.CredentialsOK(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key accepted")
			return nil
		},
	}
}
