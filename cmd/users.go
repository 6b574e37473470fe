package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/output"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (admin)",
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List every account",
	RunE:    run(runUsersList),
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)

	usersListCmd.Flags().Bool("json", false, "output as JSON")
}

func runUsersList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	list, err := client.ListUsers(ctx)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list.Users) == 0 {
		printer.Info("no accounts")
		return nil
	}

	table := output.NewQuietTable([]string{"ID", "NAME", "EMAIL", "ROLE"}, quiet)
	for _, u := range list.Users {
		table.AddRow([]string{u.ID, u.Name, u.Email, string(u.Role)})
	}
	table.Render()
	printer.Info("%d account(s)", list.Count)
	return nil
}
