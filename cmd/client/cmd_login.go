package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(current func() *app) *cobra.Command {
	var flags struct {
		phone string
		name  string
	}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify a phone number and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			session, err := a.session.CheckPersistedSession(ctx)
			if err != nil {
				return err
			}
			if session.IsAuthenticated() {
				fmt.Fprintf(out, "Already logged in as %s\n", session.IdentityID())
				return nil
			}

			reqCtx, cancel := a.withTimeout(ctx)
			defer cancel()
			if err := a.session.RequestVerification(reqCtx, flags.phone, flags.name); err != nil {
				return fmt.Errorf("%s", describe(err))
			}

			in := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "Verification code: ")
				if !in.Scan() {
					return fmt.Errorf("no code entered")
				}
				confirmCtx, cancel := a.withTimeout(ctx)
				session, err = a.session.ConfirmVerification(confirmCtx, strings.TrimSpace(in.Text()))
				cancel()
				if err == nil {
					break
				}
				// The verification stays pending until it expires
				fmt.Fprintln(out, failure(describe(err)))
			}

			fmt.Fprintln(out, success(fmt.Sprintf("Logged in as %s (%s)", flags.name, session.IdentityID())))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.phone, "phone", "", "Phone number in international format, e.g. +15555550001 (required)")
	f.StringVar(&flags.name, "name", "", "Display name shown to other users (required)")
	_ = cmd.MarkFlagRequired("phone")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
