package appointments

import (
	"time"

	"github.com/carehub-project/carectl/internal/model"
)

// PatientStats summarizes a patient's appointment list
type PatientStats struct {
	Total    int
	Upcoming int
	Pending  int
}

// SummarizePatient computes the patient dashboard counters
func SummarizePatient(list []model.Appointment, now time.Time) PatientStats {
	stats := PatientStats{Total: len(list)}
	for _, apt := range list {
		if apt.Status != model.StatusCancelled && apt.Start.After(now) {
			stats.Upcoming++
		}
		if apt.Status == model.StatusPending {
			stats.Pending++
		}
	}
	return stats
}

// DoctorStats summarizes a doctor's appointment list and reviews
type DoctorStats struct {
	Today           int
	Upcoming        int
	PendingUpcoming int
	Completed       int
	Patients        int
	AverageRating   float64
	ReviewCount     int
}

// SummarizeDoctor computes the doctor dashboard counters. Today counts
// same-calendar-day appointments that are not cancelled; Patients counts
// distinct patient references across the whole list.
func SummarizeDoctor(list []model.Appointment, reviews []model.Review, now time.Time) DoctorStats {
	stats := DoctorStats{}
	patients := make(map[string]struct{})

	for _, apt := range list {
		if apt.Status != model.StatusCancelled && sameDay(apt.Start, now) {
			stats.Today++
		}
		if apt.Status != model.StatusCancelled && apt.Start.After(now) {
			stats.Upcoming++
			if apt.Status == model.StatusPending {
				stats.PendingUpcoming++
			}
		}
		if apt.Status == model.StatusCompleted {
			stats.Completed++
		}
		if apt.Patient.ID != "" {
			patients[apt.Patient.ID] = struct{}{}
		}
	}
	stats.Patients = len(patients)

	stats.ReviewCount = len(reviews)
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		// One decimal, matching how the rating is displayed
		stats.AverageRating = float64(int(float64(sum)/float64(len(reviews))*10+0.5)) / 10
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CanReview reports whether a patient may submit a review for a doctor:
// at least one completed appointment with that doctor and no review of
// theirs on record yet. Submitting a review revokes permission until a new
// appointment completes.
func CanReview(list []model.Appointment, reviews []model.Review, patientID, doctorID string) bool {
	completed := false
	for _, apt := range list {
		if apt.Doctor.ID == doctorID && apt.Patient.ID == patientID && apt.Status == model.StatusCompleted {
			completed = true
			break
		}
	}
	if !completed {
		return false
	}

	for _, r := range reviews {
		if r.Patient.ID == patientID {
			return false
		}
	}
	return true
}
