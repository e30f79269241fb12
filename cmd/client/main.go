// dm is the terminal client of dm-lab.
//
// Usage:
//
//	dm login --phone=+15555550001 --name=Alice
//	dm whoami
//	dm users
//	dm chat <peer-id>
//	dm logout
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// newRootCmd builds the command tree. The returned release func closes
// whatever the command opened, even when it failed.
func newRootCmd() (*cobra.Command, func()) {
	var a *app
	root := &cobra.Command{
		Use:           "dm",
		Short:         "Direct messages between verified phone numbers",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			a, err = newApp(config)
			return err
		},
	}
	current := func() *app { return a }
	root.AddCommand(
		newLoginCmd(current),
		newWhoAmICmd(current),
		newUsersCmd(current),
		newChatCmd(current),
		newLogoutCmd(current),
	)
	root.Version = version
	release := func() {
		if a != nil {
			_ = a.Close()
		}
	}
	return root, release
}

func main() {
	root, release := newRootCmd()
	err := root.Execute()
	release()
	if err != nil {
		fmt.Fprintln(os.Stderr, failure(err.Error()))
		os.Exit(1)
	}
}
