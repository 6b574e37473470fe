package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Display the current session: identity, role, and access token expiry.

Examples:
  carectl whoami
  carectl whoami --json`,
	RunE: run(runWhoami),
}

func init() {
	rootCmd.AddCommand(whoamiCmd)

	whoamiCmd.Flags().Bool("json", false, "output as JSON")
}

func runWhoami(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	user := store.CurrentUser()
	if user == nil {
		printer.Info("not signed in")
		return nil
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		out := map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		}
		if expiry, ok := store.TokenExpiry(); ok {
			out["tokenExpiresAt"] = expiry.Format(time.RFC3339)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printer.Print("%s <%s>", printer.Bold(user.Name), user.Email)
	printer.Print("role: %s", user.Role)
	if expiry, ok := store.TokenExpiry(); ok {
		remaining := time.Until(expiry).Round(time.Second)
		if remaining > 0 {
			printer.Print("token expires in %s", remaining)
		} else {
			printer.Warning("access token expired %s ago", -remaining)
		}
	}
	printer.PrintHints("whoami")
	return nil
}
