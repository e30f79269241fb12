package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoAmICmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			out := cmd.OutOrStdout()
			session, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()
			profile, err := a.profiles.Get(ctx, session.IdentityID())
			if err != nil {
				// The local session does not depend on the server
				fmt.Fprintf(out, "uid:   %s\n", session.IdentityID())
				fmt.Fprintln(out, muted("profile unavailable: "+describe(err)))
				return nil
			}
			fmt.Fprintf(out, "uid:   %s\n", profile.ID)
			fmt.Fprintf(out, "name:  %s\n", profile.DisplayName)
			fmt.Fprintf(out, "phone: %s\n", profile.PhoneNumber)
			return nil
		},
	}
}
