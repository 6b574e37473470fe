package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your account profile",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your display name",
	Long: `Change the profile fields of the signed-in account.

Examples:
  carectl profile update --name "New Name"`,
	RunE: run(runProfileUpdate),
}

var profilePasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change your password",
	Long: `Rotate the password of the signed-in account.

Examples:
  carectl profile passwd --old current-secret --new next-secret1`,
	RunE: run(runProfilePasswd),
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswdCmd)

	profileUpdateCmd.Flags().String("name", "", "new display name")

	profilePasswdCmd.Flags().String("old", "", "current password")
	profilePasswdCmd.Flags().String("new", "", "new password (min 8 characters)")
}

func runProfileUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	name, _ := cmd.Flags().GetString("name")

	user, err := client.UpdateProfile(ctx, api.UpdateProfileInput{Name: name})
	if err != nil {
		return err
	}

	// The backend confirmed the change; mirror it into the session
	if err := store.UpdateUser(*user); err != nil {
		return err
	}

	printer.Success("profile updated: %s", printer.Bold(user.Name))
	return nil
}

func runProfilePasswd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	oldPassword, _ := cmd.Flags().GetString("old")
	newPassword, _ := cmd.Flags().GetString("new")

	input := api.ChangePasswordInput{OldPassword: oldPassword, NewPassword: newPassword}
	if err := client.ChangePassword(ctx, input); err != nil {
		return err
	}

	printer.Success("password changed")
	return nil
}
