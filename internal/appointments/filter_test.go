package appointments

import (
	"testing"
	"time"

	"github.com/carehub-project/carectl/internal/model"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func makeAppointment(id string, start time.Time, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		ID:      id,
		Doctor:  model.DoctorRef{ID: "doc-1"},
		Patient: model.PatientRef{ID: "pat-1"},
		Start:   start,
		End:     start.Add(30 * time.Minute),
		Status:  status,
	}
}

func testList() []model.Appointment {
	return []model.Appointment{
		makeAppointment("a1", testNow.Add(2*time.Hour), model.StatusPending),
		makeAppointment("a2", testNow.Add(-2*time.Hour), model.StatusConfirmed),
		makeAppointment("a3", testNow.Add(4*time.Hour), model.StatusCancelled),
		makeAppointment("a4", testNow.Add(-24*time.Hour), model.StatusCompleted),
		makeAppointment("a5", testNow.Add(24*time.Hour), model.StatusConfirmed),
	}
}

func ids(list []model.Appointment) []string {
	out := make([]string, len(list))
	for i, apt := range list {
		out[i] = apt.ID
	}
	return out
}

func TestParseFilter_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Filter
	}{
		{"all", FilterAll},
		{"upcoming", FilterUpcoming},
		{"past", FilterPast},
		{"cancelled", FilterCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	if _, err := ParseFilter("tomorrow"); err == nil {
		t.Error("expected error for invalid filter, got nil")
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"a1", "a2", "a3", "a4", "a5"}},
		{FilterUpcoming, []string{"a1", "a5"}},
		{FilterPast, []string{"a2", "a4"}},
		{FilterCancelled, []string{"a3"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := ids(Apply(testList(), tt.filter, testNow))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply(%q) returned %v, want %v", tt.filter, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Apply(%q)[%d] = %s, want %s", tt.filter, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestApply_StartExactlyNowIsPast(t *testing.T) {
	list := []model.Appointment{makeAppointment("a1", testNow, model.StatusConfirmed)}

	if len(Apply(list, FilterUpcoming, testNow)) != 0 {
		t.Error("appointment starting exactly now must not be upcoming")
	}
	if len(Apply(list, FilterPast, testNow)) != 1 {
		t.Error("appointment starting exactly now must be past")
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	list := testList()
	before := ids(list)

	Apply(list, FilterUpcoming, testNow)
	Apply(list, FilterCancelled, testNow)

	after := ids(list)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input list was reordered: %v -> %v", before, after)
		}
	}
}

// An appointment's membership in "upcoming" flips to "past" exactly once as
// the evaluation instant advances past its start, with no data change.
func TestApply_TimeMonotonicTransition(t *testing.T) {
	start := testNow.Add(time.Hour)
	list := []model.Appointment{makeAppointment("a1", start, model.StatusConfirmed)}

	instants := []time.Time{
		start.Add(-time.Hour),
		start.Add(-time.Second),
		start, // boundary: at start it is already past
		start.Add(time.Second),
		start.Add(time.Hour),
	}

	transitions := 0
	wasUpcoming := false
	for i, now := range instants {
		upcoming := len(Apply(list, FilterUpcoming, now)) == 1
		past := len(Apply(list, FilterPast, now)) == 1

		if upcoming == past {
			t.Fatalf("at instant %d appointment is in both or neither of upcoming/past", i)
		}
		if i == 0 && !upcoming {
			t.Fatal("appointment must start out upcoming")
		}
		if wasUpcoming && !upcoming {
			transitions++
		}
		if !wasUpcoming && upcoming && i > 0 {
			t.Fatal("appointment moved back from past to upcoming")
		}
		wasUpcoming = upcoming
	}

	if transitions != 1 {
		t.Errorf("expected exactly one upcoming->past transition, got %d", transitions)
	}
}

func TestApply_Idempotent(t *testing.T) {
	first := ids(Apply(testList(), FilterUpcoming, testNow))
	second := ids(Apply(testList(), FilterUpcoming, testNow))

	if len(first) != len(second) {
		t.Fatalf("same inputs produced different results: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("same inputs produced different results: %v vs %v", first, second)
		}
	}
}

func TestCount(t *testing.T) {
	counts := Count(testList(), testNow)

	if counts.All != 5 {
		t.Errorf("All = %d, want 5", counts.All)
	}
	if counts.Upcoming != 2 {
		t.Errorf("Upcoming = %d, want 2", counts.Upcoming)
	}
	if counts.Past != 2 {
		t.Errorf("Past = %d, want 2", counts.Past)
	}
	if counts.Cancelled != 1 {
		t.Errorf("Cancelled = %d, want 1", counts.Cancelled)
	}
}

func TestApplyStatus_ReplacesSingleRecord(t *testing.T) {
	list := testList()
	updated := ApplyStatus(list, "a1", model.StatusConfirmed)

	if updated[0].Status != model.StatusConfirmed {
		t.Errorf("a1 status = %s, want confirmed", updated[0].Status)
	}
	if updated[0].ID != "a1" || !updated[0].Start.Equal(list[0].Start) || updated[0].Reason != list[0].Reason {
		t.Error("fields other than status changed on the updated record")
	}

	// every other record untouched
	for i := 1; i < len(list); i++ {
		if updated[i].Status != list[i].Status {
			t.Errorf("record %s status changed unexpectedly", list[i].ID)
		}
	}

	// original list untouched
	if list[0].Status != model.StatusPending {
		t.Error("ApplyStatus mutated its input")
	}
}

func TestApplyStatus_UnknownIDIsNoOp(t *testing.T) {
	list := testList()
	updated := ApplyStatus(list, "missing", model.StatusCompleted)

	for i := range list {
		if updated[i].Status != list[i].Status {
			t.Errorf("record %s changed for an unknown id", list[i].ID)
		}
	}
}
