package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/output"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book an appointment",
	Long: `Book an appointment with a doctor. Pick a published slot by id, or give
an explicit start and end time.

Examples:
  carectl book --doctor <profileId> --slot <slotId> --reason "checkup"
  carectl book --doctor <profileId> --start 2025-06-01T10:00:00Z --end 2025-06-01T10:30:00Z`,
	RunE: run(runBook),
}

func init() {
	rootCmd.AddCommand(bookCmd)

	bookCmd.Flags().String("doctor", "", "doctor profile id")
	bookCmd.Flags().String("slot", "", "availability slot id")
	bookCmd.Flags().String("start", "", "start time (RFC 3339)")
	bookCmd.Flags().String("end", "", "end time (RFC 3339)")
	bookCmd.Flags().String("reason", "", "reason for the visit")
}

func runBook(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	doctorID, _ := cmd.Flags().GetString("doctor")
	slotID, _ := cmd.Flags().GetString("slot")
	reason, _ := cmd.Flags().GetString("reason")

	if doctorID == "" {
		return &output.CLIError{
			Summary:    "no doctor selected",
			Suggestion: "pass --doctor <profileId>; find one with 'carectl doctors list'",
			ExitCode:   output.ExitUsageError,
		}
	}

	var start, end time.Time
	switch {
	case slotID != "":
		slot, err := resolveSlot(cmd, doctorID, slotID)
		if err != nil {
			return err
		}
		start, end = slot.start, slot.end
	default:
		startFlag, _ := cmd.Flags().GetString("start")
		endFlag, _ := cmd.Flags().GetString("end")
		if startFlag == "" || endFlag == "" {
			return &output.CLIError{
				Summary:    "no time slot selected",
				Suggestion: "pass --slot <slotId> or both --start and --end; see 'carectl availability list <profileId>'",
				ExitCode:   output.ExitUsageError,
			}
		}
		var err error
		if start, err = parseRFC3339("start", startFlag); err != nil {
			return err
		}
		if end, err = parseRFC3339("end", endFlag); err != nil {
			return err
		}
	}

	apt, err := client.BookAppointment(ctx, api.BookingInput{
		DoctorID: doctorID,
		Start:    start,
		End:      end,
		Reason:   reason,
	})
	if err != nil {
		return err
	}

	printer.Success("appointment booked with %s on %s (%s)",
		printer.Bold(apt.Doctor.DisplayName()),
		apt.Start.Local().Format("2006-01-02 15:04"),
		apt.Status)
	printer.PrintHints("book")
	return nil
}

type slotWindow struct {
	start time.Time
	end   time.Time
}

// resolveSlot looks the slot id up in the doctor's published availability
func resolveSlot(cmd *cobra.Command, doctorID, slotID string) (slotWindow, error) {
	slots, err := client.Availability(commandContext(cmd), doctorID, api.AvailabilityQuery{})
	if err != nil {
		return slotWindow{}, err
	}
	for _, s := range slots {
		if s.ID == slotID {
			return slotWindow{start: s.Start, end: s.End}, nil
		}
	}
	return slotWindow{}, &output.CLIError{
		Summary:    "slot " + slotID + " not found for this doctor",
		Suggestion: "list open slots with 'carectl availability list " + doctorID + "'",
		ExitCode:   output.ExitUsageError,
	}
}
