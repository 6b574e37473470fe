package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/appointments"
	"github.com/carehub-project/carectl/internal/model"
	"github.com/carehub-project/carectl/internal/output"
)

var appointmentsCmd = &cobra.Command{
	Use:     "appointments",
	Aliases: []string{"appts"},
	Short:   "Manage your appointments",
}

var appointmentsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List appointments",
	Long: `List your appointments. Patients see their own bookings; doctors can
list their schedule with --doctor and an optional date range.

Examples:
  carectl appointments list
  carectl appointments list --filter upcoming
  carectl appointments list --doctor <profileId> --from 2025-06-01T00:00:00Z`,
	RunE: run(runAppointmentsList),
}

var appointmentsCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runAppointmentsCancel),
}

var appointmentsRescheduleCmd = &cobra.Command{
	Use:   "reschedule <id>",
	Short: "Move an appointment to a new slot",
	Long: `Reschedule an appointment.

Examples:
  carectl appointments reschedule <id> --start 2025-06-02T10:00:00Z --end 2025-06-02T10:30:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: run(runAppointmentsReschedule),
}

var appointmentsSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <pending|confirmed|cancelled|completed>",
	Short: "Change an appointment's status (doctor)",
	Args:  cobra.ExactArgs(2),
	RunE:  run(runAppointmentsSetStatus),
}

func init() {
	rootCmd.AddCommand(appointmentsCmd)
	appointmentsCmd.AddCommand(appointmentsListCmd)
	appointmentsCmd.AddCommand(appointmentsCancelCmd)
	appointmentsCmd.AddCommand(appointmentsRescheduleCmd)
	appointmentsCmd.AddCommand(appointmentsSetStatusCmd)

	appointmentsListCmd.Flags().String("filter", "all", "all, upcoming, past, or cancelled")
	appointmentsListCmd.Flags().String("doctor", "", "list a doctor's schedule by profile id")
	appointmentsListCmd.Flags().String("from", "", "start of date range (RFC 3339, with --doctor)")
	appointmentsListCmd.Flags().String("to", "", "end of date range (RFC 3339, with --doctor)")
	appointmentsListCmd.Flags().Bool("json", false, "output as JSON")

	appointmentsRescheduleCmd.Flags().String("start", "", "new start time (RFC 3339)")
	appointmentsRescheduleCmd.Flags().String("end", "", "new end time (RFC 3339)")
	_ = appointmentsRescheduleCmd.MarkFlagRequired("start")
	_ = appointmentsRescheduleCmd.MarkFlagRequired("end")
}

func runAppointmentsList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	filterName, _ := cmd.Flags().GetString("filter")
	filter, err := appointments.ParseFilter(filterName)
	if err != nil {
		return &output.CLIError{Summary: err.Error(), ExitCode: output.ExitUsageError}
	}

	list, err := fetchAppointments(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	visible := appointments.Apply(list, filter, now)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(visible)
	}

	counts := appointments.Count(list, now)
	printer.Info("all %d · upcoming %d · past %d · cancelled %d",
		counts.All, counts.Upcoming, counts.Past, counts.Cancelled)

	if len(visible) == 0 {
		if filter == appointments.FilterAll {
			printer.Info("no appointments")
		} else {
			printer.Info("no %s appointments", filter)
		}
		return nil
	}

	table := output.NewQuietTable([]string{"ID", "DOCTOR", "PATIENT", "START", "END", "STATUS", "REASON"}, quiet)
	for _, apt := range visible {
		table.AddRow([]string{
			apt.ID,
			apt.Doctor.DisplayName(),
			apt.Patient.DisplayName(),
			apt.Start.Local().Format("2006-01-02 15:04"),
			apt.End.Local().Format("15:04"),
			printer.StatusBadge(string(apt.Status)) + " " + string(apt.Status),
			apt.Reason,
		})
	}
	table.Render()
	printer.PrintHints("appointments list")
	return nil
}

// fetchAppointments picks the listing endpoint from the flags: a doctor's
// schedule when --doctor is set, otherwise the signed-in patient's bookings
func fetchAppointments(cmd *cobra.Command) ([]model.Appointment, error) {
	ctx := commandContext(cmd)

	doctorID, _ := cmd.Flags().GetString("doctor")
	if doctorID != "" {
		var dates api.DateRange
		if from, _ := cmd.Flags().GetString("from"); from != "" {
			t, err := parseRFC3339("from", from)
			if err != nil {
				return nil, err
			}
			dates.From = t
		}
		if to, _ := cmd.Flags().GetString("to"); to != "" {
			t, err := parseRFC3339("to", to)
			if err != nil {
				return nil, err
			}
			dates.To = t
		}
		return client.AppointmentsByDoctor(ctx, doctorID, dates)
	}

	user := store.CurrentUser()
	return client.AppointmentsByPatient(ctx, user.ID)
}

func runAppointmentsCancel(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	if err := client.CancelAppointment(ctx, args[0]); err != nil {
		return err
	}
	printer.Success("appointment %s cancelled", args[0])
	return nil
}

func runAppointmentsReschedule(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")

	start, err := parseRFC3339("start", startFlag)
	if err != nil {
		return err
	}
	end, err := parseRFC3339("end", endFlag)
	if err != nil {
		return err
	}

	apt, err := client.RescheduleAppointment(ctx, args[0], start, end)
	if err != nil {
		return err
	}
	printer.Success("appointment %s moved to %s", apt.ID, apt.Start.Local().Format("2006-01-02 15:04"))
	return nil
}

func runAppointmentsSetStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	status := model.AppointmentStatus(args[1])
	if !status.Valid() {
		return &output.CLIError{
			Summary:  "invalid status " + args[1] + ": must be pending, confirmed, cancelled, or completed",
			ExitCode: output.ExitUsageError,
		}
	}

	apt, err := client.SetAppointmentStatus(ctx, args[0], status)
	if err != nil {
		return err
	}
	printer.Success("appointment %s is now %s", apt.ID, apt.Status)
	printer.PrintHints("appointments set-status")
	return nil
}
