package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to CareHub",
	Long: `Authenticate against the CareHub backend and persist the session.

Examples:
  carectl login --email you@example.com --password secret`,
	RunE: run(runLogin),
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	creds := api.LoginCredentials{Email: email, Password: password}
	if err := store.Login(commandContext(cmd), client, creds); err != nil {
		return err
	}

	user := store.CurrentUser()
	printer.Success("signed in as %s (%s)", printer.Bold(user.Name), user.Role)
	printer.PrintHints("login")
	return nil
}
