package cmd

import (
	"github.com/spf13/cobra"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/appointments"
	"github.com/carehub-project/carectl/internal/output"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read and write doctor reviews",
}

var reviewsListCmd = &cobra.Command{
	Use:     "list <doctorId>",
	Aliases: []string{"ls"},
	Short:   "List reviews for a doctor",
	Args:    cobra.ExactArgs(1),
	RunE:    run(runReviewsList),
}

var reviewsCreateCmd = &cobra.Command{
	Use:   "create <doctorId>",
	Short: "Submit a review for a doctor",
	Long: `Submit a rating and optional comment for a doctor you have seen.

You need at least one completed appointment with the doctor, and you can
only review a doctor once per completed visit.

Examples:
  carectl reviews create <doctorId> --rating 5 --comment "very thorough"`,
	Args: cobra.ExactArgs(1),
	RunE: run(runReviewsCreate),
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	reviewsCmd.AddCommand(reviewsListCmd)
	reviewsCmd.AddCommand(reviewsCreateCmd)

	reviewsCreateCmd.Flags().Int("rating", 0, "rating from 1 to 5")
	reviewsCreateCmd.Flags().String("comment", "", "optional comment")
}

func runReviewsList(cmd *cobra.Command, args []string) error {
	printer := newPrinter()

	reviews, err := client.ReviewsForDoctor(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	if len(reviews) == 0 {
		printer.Info("no reviews yet")
		return nil
	}

	table := output.NewQuietTable([]string{"PATIENT", "RATING", "COMMENT", "DATE"}, quiet)
	for _, r := range reviews {
		table.AddRow([]string{
			r.Patient.Name,
			stars(r.Rating),
			r.Comment,
			r.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	table.Render()
	return nil
}

func runReviewsCreate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}
	printer := newPrinter()
	doctorID := args[0]

	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")

	// Check eligibility before bothering the backend: a completed
	// appointment with this doctor and no review on record yet.
	user := store.CurrentUser()
	myAppointments, err := client.AppointmentsByPatient(ctx, user.ID)
	if err != nil {
		return err
	}
	reviews, err := client.ReviewsForDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	if !appointments.CanReview(myAppointments, reviews, user.ID, doctorID) {
		return &output.CLIError{
			Summary:    "you cannot review this doctor",
			Detail:     "a review requires a completed appointment with the doctor and no earlier review of yours",
			Suggestion: "check 'carectl appointments list --filter past'",
			ExitCode:   output.ExitUsageError,
		}
	}

	review, err := client.CreateReview(ctx, api.ReviewInput{
		DoctorID: doctorID,
		Rating:   rating,
		Comment:  comment,
	})
	if err != nil {
		return err
	}

	printer.Success("review submitted: %s", stars(review.Rating))
	printer.PrintHints("reviews create")
	return nil
}

func stars(rating int) string {
	out := make([]rune, 0, 5)
	for i := 1; i <= 5; i++ {
		if i <= rating {
			out = append(out, '★')
		} else {
			out = append(out, '☆')
		}
	}
	return string(out)
}
