package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/model"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a CareHub account",
	Long: `Create an account and sign in with it in one step.

The backend accepts the role you pick here, including doctor, without any
verification step. That matches the service's current behavior.

Examples:
  carectl register --name "Ada Jones" --email ada@example.com --password secret123
  carectl register --name "Dr. Okafor" --email o@example.com --password secret123 --role doctor`,
	RunE: run(runRegister),
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("name", "", "display name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password (min 8 characters)")
	registerCmd.Flags().String("role", "patient", "account role (patient or doctor)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	role, _ := cmd.Flags().GetString("role")

	input := api.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     model.Role(role),
	}
	if err := store.Register(commandContext(cmd), client, input); err != nil {
		return err
	}

	user := store.CurrentUser()
	printer.Success("account created, signed in as %s (%s)", printer.Bold(user.Name), user.Role)
	printer.PrintHints("register")
	return nil
}
