package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/output"
)

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "Browse the doctor directory",
}

var doctorsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List doctors",
	Long: `List doctors, optionally filtered by free-text search or specialization.
Filters left unset are omitted from the request entirely.

Examples:
  carectl doctors list
  carectl doctors list --search heart --specialization cardiology
  carectl doctors list --page 2 --limit 10 --json`,
	RunE: run(runDoctorsList),
}

var doctorsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a doctor's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runDoctorsGet),
}

var doctorsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish your doctor profile (doctor)",
	Long: `Create the doctor profile attached to your account so patients can find
and book you.

Examples:
  carectl doctors create --specialization cardiology --fees 120 --experience 8`,
	RunE: run(runDoctorsCreate),
}

var doctorsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a doctor profile (doctor)",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runDoctorsUpdate),
}

var doctorsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a doctor profile (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runDoctorsDelete),
}

func init() {
	rootCmd.AddCommand(doctorsCmd)
	doctorsCmd.AddCommand(doctorsListCmd)
	doctorsCmd.AddCommand(doctorsGetCmd)
	doctorsCmd.AddCommand(doctorsCreateCmd)
	doctorsCmd.AddCommand(doctorsUpdateCmd)
	doctorsCmd.AddCommand(doctorsDeleteCmd)

	doctorsListCmd.Flags().String("search", "", "free-text search")
	doctorsListCmd.Flags().String("specialization", "", "filter by specialization")
	doctorsListCmd.Flags().Int("page", 0, "result page")
	doctorsListCmd.Flags().Int("limit", 0, "page size")
	doctorsListCmd.Flags().Bool("json", false, "output as JSON")

	doctorsGetCmd.Flags().Bool("json", false, "output as JSON")

	for _, c := range []*cobra.Command{doctorsCreateCmd, doctorsUpdateCmd} {
		c.Flags().String("specialization", "", "medical specialization")
		c.Flags().Float64("fees", 0, "consultation fees")
		c.Flags().Int("experience", 0, "years of experience")
		c.Flags().String("bio", "", "short biography")
		c.Flags().String("img", "", "profile image URL")
	}
	doctorsUpdateCmd.Flags().Bool("active", true, "whether the profile is bookable")
}

func runDoctorsList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	search, _ := cmd.Flags().GetString("search")
	specialization, _ := cmd.Flags().GetString("specialization")
	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	list, err := client.ListDoctors(commandContext(cmd), api.DoctorSearch{
		Query:          search,
		Specialization: specialization,
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list.Data) == 0 {
		printer.Info("no doctors found")
		return nil
	}

	table := output.NewQuietTable([]string{"ID", "NAME", "SPECIALIZATION", "FEES", "EXPERIENCE", "ACTIVE"}, quiet)
	for _, d := range list.Data {
		active := "no"
		if d.Active {
			active = "yes"
		}
		table.AddRow([]string{
			d.ID,
			printer.Bold(d.User.Name),
			d.Specialization,
			strconv.FormatFloat(d.Fees, 'f', -1, 64),
			fmt.Sprintf("%d yrs", d.Experience),
			active,
		})
	}
	table.Render()

	printer.Info("page %d, %d doctor(s) total", max(list.Pagination.Page, 1), list.Pagination.Total)
	printer.PrintHints("doctors list")
	return nil
}

func runDoctorsGet(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	doctor, err := client.GetDoctor(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doctor)
	}

	printer.Header(doctor.User.Name)
	printer.Print("email:          %s", doctor.User.Email)
	if doctor.Specialization != "" {
		printer.Print("specialization: %s", doctor.Specialization)
	}
	if doctor.Fees > 0 {
		printer.Print("fees:           %s", strconv.FormatFloat(doctor.Fees, 'f', -1, 64))
	}
	if doctor.Experience > 0 {
		printer.Print("experience:     %d yrs", doctor.Experience)
	}
	if doctor.Bio != "" {
		printer.Print("bio:            %s", doctor.Bio)
	}
	if doctor.Active {
		printer.Print("status:         active")
	} else {
		printer.Print("status:         inactive")
	}
	printer.PrintHints("doctors get")
	return nil
}

func doctorInputFromFlags(cmd *cobra.Command) api.DoctorInput {
	specialization, _ := cmd.Flags().GetString("specialization")
	fees, _ := cmd.Flags().GetFloat64("fees")
	experience, _ := cmd.Flags().GetInt("experience")
	bio, _ := cmd.Flags().GetString("bio")
	img, _ := cmd.Flags().GetString("img")

	input := api.DoctorInput{
		Specialization: specialization,
		Fees:           fees,
		Experience:     experience,
		Bio:            bio,
		Img:            img,
	}
	if cmd.Flags().Changed("active") {
		active, _ := cmd.Flags().GetBool("active")
		input.Active = &active
	}
	return input
}

func runDoctorsCreate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	doctor, err := client.CreateDoctor(ctx, doctorInputFromFlags(cmd))
	if err != nil {
		return err
	}
	printer.Success("doctor profile %s published", doctor.ID)
	return nil
}

func runDoctorsUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	doctor, err := client.UpdateDoctor(ctx, args[0], doctorInputFromFlags(cmd))
	if err != nil {
		return err
	}
	printer.Success("doctor profile %s updated", doctor.ID)
	return nil
}

func runDoctorsDelete(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	if err := client.DeleteDoctor(ctx, args[0]); err != nil {
		return err
	}
	printer.Success("doctor %s removed", args[0])
	return nil
}
