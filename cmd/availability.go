package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/output"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Manage a doctor's bookable slots",
}

var availabilityListCmd = &cobra.Command{
	Use:     "list <doctorId>",
	Aliases: []string{"ls"},
	Short:   "List a doctor's published slots",
	Long: `List the bookable time windows a doctor has published. Date and
recurrence filters left unset are omitted from the request.

Examples:
  carectl availability list <profileId>
  carectl availability list <profileId> --from 2025-06-01T00:00:00Z --recurring WEEKLY`,
	Args: cobra.ExactArgs(1),
	RunE: run(runAvailabilityList),
}

var availabilityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a new slot (doctor)",
	Long: `Publish a bookable time window.

Examples:
  carectl availability add --doctor <profileId> --start 2025-06-01T10:00:00Z --end 2025-06-01T10:30:00Z
  carectl availability add --doctor <profileId> --start ... --end ... --recurring WEEKLY`,
	RunE: run(runAvailabilityAdd),
}

var availabilityUpdateCmd = &cobra.Command{
	Use:   "update <slotId>",
	Short: "Change a published slot (doctor)",
	Args:  cobra.ExactArgs(1),
	RunE:  run(runAvailabilityUpdate),
}

var availabilityRemoveCmd = &cobra.Command{
	Use:     "rm <slotId>",
	Aliases: []string{"remove", "delete"},
	Short:   "Withdraw a published slot (doctor)",
	Args:    cobra.ExactArgs(1),
	RunE:    run(runAvailabilityRemove),
}

func init() {
	rootCmd.AddCommand(availabilityCmd)
	availabilityCmd.AddCommand(availabilityListCmd)
	availabilityCmd.AddCommand(availabilityAddCmd)
	availabilityCmd.AddCommand(availabilityUpdateCmd)
	availabilityCmd.AddCommand(availabilityRemoveCmd)

	availabilityListCmd.Flags().String("from", "", "window start (RFC 3339)")
	availabilityListCmd.Flags().String("to", "", "window end (RFC 3339)")
	availabilityListCmd.Flags().String("recurring", "", "DAILY, WEEKLY, or MONTHLY")

	availabilityAddCmd.Flags().String("doctor", "", "doctor profile id")
	availabilityAddCmd.Flags().String("start", "", "slot start (RFC 3339)")
	availabilityAddCmd.Flags().String("end", "", "slot end (RFC 3339)")
	availabilityAddCmd.Flags().String("recurring", "", "DAILY, WEEKLY, or MONTHLY")
	_ = availabilityAddCmd.MarkFlagRequired("doctor")
	_ = availabilityAddCmd.MarkFlagRequired("start")
	_ = availabilityAddCmd.MarkFlagRequired("end")

	availabilityUpdateCmd.Flags().String("start", "", "new slot start (RFC 3339)")
	availabilityUpdateCmd.Flags().String("end", "", "new slot end (RFC 3339)")
	availabilityUpdateCmd.Flags().String("recurring", "", "DAILY, WEEKLY, or MONTHLY")
}

func runAvailabilityList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	var query api.AvailabilityQuery
	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := parseRFC3339("from", from)
		if err != nil {
			return err
		}
		query.From = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := parseRFC3339("to", to)
		if err != nil {
			return err
		}
		query.To = t
	}
	query.Recurring, _ = cmd.Flags().GetString("recurring")

	slots, err := client.Availability(commandContext(cmd), args[0], query)
	if err != nil {
		return err
	}

	if len(slots) == 0 {
		printer.Info("no available slots")
		return nil
	}

	table := output.NewQuietTable([]string{"ID", "START", "END", "RECURRING"}, quiet)
	for _, s := range slots {
		recurring := s.Recurring
		if recurring == "" {
			recurring = "-"
		}
		table.AddRow([]string{
			s.ID,
			s.Start.Local().Format("2006-01-02 15:04"),
			s.End.Local().Format("15:04"),
			recurring,
		})
	}
	table.Render()
	return nil
}

func runAvailabilityAdd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	doctorID, _ := cmd.Flags().GetString("doctor")
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	recurring, _ := cmd.Flags().GetString("recurring")

	start, err := parseRFC3339("start", startFlag)
	if err != nil {
		return err
	}
	end, err := parseRFC3339("end", endFlag)
	if err != nil {
		return err
	}

	slot, err := client.CreateAvailability(ctx, api.AvailabilityInput{
		Doctor:    doctorID,
		Start:     start,
		End:       end,
		Recurring: recurring,
	})
	if err != nil {
		return err
	}

	printer.Success("slot %s published: %s – %s", slot.ID,
		slot.Start.Local().Format("2006-01-02 15:04"), slot.End.Local().Format("15:04"))
	printer.PrintHints("availability add")
	return nil
}

func runAvailabilityUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	var update api.AvailabilityUpdate
	if startFlag, _ := cmd.Flags().GetString("start"); startFlag != "" {
		start, err := parseRFC3339("start", startFlag)
		if err != nil {
			return err
		}
		update.Start = &start
	}
	if endFlag, _ := cmd.Flags().GetString("end"); endFlag != "" {
		end, err := parseRFC3339("end", endFlag)
		if err != nil {
			return err
		}
		update.End = &end
	}
	if recurring, _ := cmd.Flags().GetString("recurring"); recurring != "" {
		update.Recurring = &recurring
	}

	if update.Start == nil && update.End == nil && update.Recurring == nil {
		return &output.CLIError{
			Summary:  "nothing to update: pass --start, --end, or --recurring",
			ExitCode: output.ExitUsageError,
		}
	}

	slot, err := client.UpdateAvailability(ctx, args[0], update)
	if err != nil {
		return err
	}
	printer.Success("slot %s updated", slot.ID)
	return nil
}

func runAvailabilityRemove(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()

	if err := client.DeleteAvailability(ctx, args[0]); err != nil {
		return err
	}
	printer.Success("slot %s withdrawn", args[0])
	return nil
}
