package cmd

import (
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	Long: `Tell the backend to invalidate the session and clear the local
credentials. The local session is cleared even if the backend call fails.`,
	RunE: run(runLogout),
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	if !store.IsAuthenticated() {
		printer.Info("not signed in")
		return nil
	}

	store.Logout(commandContext(cmd), client)
	printer.Success("signed out")
	printer.PrintHints("logout")
	return nil
}
