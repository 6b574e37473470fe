// Package appointments derives read-only view state from appointment lists
// received from the backend. Every function here is a pure transform of
// (list, now); nothing mutates or reorders the input.
package appointments

import (
	"fmt"
	"time"

	"github.com/carehub-project/carectl/internal/model"
)

// Filter selects the subset of appointments relevant to a view
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterPast      Filter = "past"
	FilterCancelled Filter = "cancelled"
)

// ParseFilter validates a user-supplied filter name
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterUpcoming, FilterPast, FilterCancelled:
		return Filter(s), nil
	default:
		return FilterAll, fmt.Errorf("invalid filter %q: must be all, upcoming, past, or cancelled", s)
	}
}

// Apply returns the appointments matching the filter at the given instant.
// An appointment's membership in "upcoming" flips to "past" exactly once as
// now advances beyond its start; cancelled appointments belong to neither.
func Apply(list []model.Appointment, filter Filter, now time.Time) []model.Appointment {
	if filter == FilterAll {
		out := make([]model.Appointment, len(list))
		copy(out, list)
		return out
	}

	var out []model.Appointment
	for _, apt := range list {
		if matches(apt, filter, now) {
			out = append(out, apt)
		}
	}
	return out
}

func matches(apt model.Appointment, filter Filter, now time.Time) bool {
	switch filter {
	case FilterUpcoming:
		return apt.Status != model.StatusCancelled && apt.Start.After(now)
	case FilterPast:
		return apt.Status != model.StatusCancelled && !apt.Start.After(now)
	case FilterCancelled:
		return apt.Status == model.StatusCancelled
	default:
		return true
	}
}

// Counts holds per-filter totals for view tabs
type Counts struct {
	All       int
	Upcoming  int
	Past      int
	Cancelled int
}

// Count tallies the list under every filter at the given instant
func Count(list []model.Appointment, now time.Time) Counts {
	c := Counts{All: len(list)}
	for _, apt := range list {
		switch {
		case apt.Status == model.StatusCancelled:
			c.Cancelled++
		case apt.Start.After(now):
			c.Upcoming++
		default:
			c.Past++
		}
	}
	return c
}

// ApplyStatus returns a copy of the list with exactly the matching record's
// status replaced, mirroring a successful backend acknowledgment. No other
// field changes and the order is preserved.
func ApplyStatus(list []model.Appointment, id string, status model.AppointmentStatus) []model.Appointment {
	out := make([]model.Appointment, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = status
			break
		}
	}
	return out
}
