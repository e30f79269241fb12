package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the local session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			if _, err := a.session.CheckPersistedSession(ctx); err != nil {
				return err
			}
			if err := a.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), success("Logged out"))
			return nil
		},
	}
}
