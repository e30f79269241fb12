package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUsersCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the people you can talk to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			session, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			profiles, err := a.roster.ListOtherUsers(ctx, session.IdentityID())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), failure(describe(err)))
			}
			renderProfiles(cmd.OutOrStdout(), profiles)
			return nil
		},
	}
}
