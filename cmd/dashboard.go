package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carehub-project/carectl/internal/api"
	"github.com/carehub-project/carectl/internal/appointments"
	"github.com/carehub-project/carectl/internal/model"
	"github.com/carehub-project/carectl/internal/output"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show an overview of your appointments",
	Long: `Summarize your appointments. Patients see booking counts and their next
visits; doctors see today's schedule, pending requests, and their rating.`,
	RunE: run(runDashboard),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	if err := requireSession(ctx); err != nil {
		return err
	}

	user := store.CurrentUser()
	if user.Role == model.RoleDoctor {
		return doctorDashboard(ctx, user)
	}
	return patientDashboard(ctx, user)
}

func patientDashboard(ctx context.Context, user *model.User) error {
	printer := newPrinter()

	list, err := client.AppointmentsByPatient(ctx, user.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	stats := appointments.SummarizePatient(list, now)

	printer.Header(fmt.Sprintf("Welcome back, %s", user.Name))
	table := output.NewQuietTable([]string{"TOTAL", "UPCOMING", "PENDING"}, quiet)
	table.AddRow([]string{
		fmt.Sprintf("%d", stats.Total),
		fmt.Sprintf("%d", stats.Upcoming),
		fmt.Sprintf("%d", stats.Pending),
	})
	table.Render()

	upcoming := appointments.Apply(list, appointments.FilterUpcoming, now)
	if len(upcoming) > 0 {
		printer.Header("Next appointments")
		limit := min(len(upcoming), 3)
		for _, apt := range upcoming[:limit] {
			printer.Print("%s %s with %s — %s",
				printer.StatusBadge(string(apt.Status)),
				apt.Start.Local().Format("2006-01-02 15:04"),
				printer.Bold(apt.Doctor.DisplayName()),
				apt.Status)
		}
	}
	printer.PrintHints("dashboard")
	return nil
}

func doctorDashboard(ctx context.Context, user *model.User) error {
	printer := newPrinter()

	profile, err := findOwnProfile(ctx, user)
	if err != nil {
		return err
	}

	// Appointments and reviews are independent loads; fetch them together
	var (
		list    []model.Appointment
		reviews []model.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = client.AppointmentsByDoctor(gctx, profile.ID, api.DateRange{})
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = client.ReviewsForDoctor(gctx, profile.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Now()
	stats := appointments.SummarizeDoctor(list, reviews, now)

	printer.Header(fmt.Sprintf("Dr. %s — %s", user.Name, profile.Specialization))
	table := output.NewQuietTable([]string{"TODAY", "UPCOMING", "PENDING", "COMPLETED", "PATIENTS", "RATING"}, quiet)
	rating := "-"
	if stats.ReviewCount > 0 {
		rating = fmt.Sprintf("%.1f (%d)", stats.AverageRating, stats.ReviewCount)
	}
	table.AddRow([]string{
		fmt.Sprintf("%d", stats.Today),
		fmt.Sprintf("%d", stats.Upcoming),
		fmt.Sprintf("%d", stats.PendingUpcoming),
		fmt.Sprintf("%d", stats.Completed),
		fmt.Sprintf("%d", stats.Patients),
		rating,
	})
	table.Render()
	printer.PrintHints("dashboard")
	return nil
}

// findOwnProfile locates the doctor profile belonging to the signed-in user.
// The backend has no "my profile" endpoint, so this scans the directory the
// same way the web client does.
func findOwnProfile(ctx context.Context, user *model.User) (*model.DoctorProfile, error) {
	list, err := client.ListDoctors(ctx, api.DoctorSearch{Limit: 100})
	if err != nil {
		return nil, err
	}
	for i := range list.Data {
		if list.Data[i].User.ID == user.ID || list.Data[i].User.Email == user.Email {
			return &list.Data[i], nil
		}
	}
	return nil, &output.CLIError{
		Summary:    "doctor profile not found",
		Detail:     "no profile in the directory matches your account",
		Suggestion: "ask an administrator to create your doctor profile",
		ExitCode:   output.ExitAPIError,
	}
}
