package model

import (
	"encoding/json"
	"testing"
)

func TestDoctorRef_UnmarshalBareID(t *testing.T) {
	var apt Appointment
	payload := []byte(`{"_id":"a1","doctor":"doc-42","patient":"pat-7","status":"pending"}`)
	if err := json.Unmarshal(payload, &apt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if apt.Doctor.ID != "doc-42" {
		t.Errorf("doctor id = %q, want doc-42", apt.Doctor.ID)
	}
	if apt.Doctor.Embedded() {
		t.Error("bare id must not report an embedded profile")
	}
	if got := apt.Doctor.DisplayName(); got != "doc-42" {
		t.Errorf("display name = %q, want the id as fallback", got)
	}
}

func TestDoctorRef_UnmarshalEmbeddedProfile(t *testing.T) {
	var ref DoctorRef
	payload := []byte(`{"_id":"doc-42","user":{"_id":"u9","name":"Dr. Chen","email":"chen@example.com"},"specialization":"cardiology","active":true}`)
	if err := json.Unmarshal(payload, &ref); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !ref.Embedded() {
		t.Fatal("embedded profile not detected")
	}
	if ref.ID != "doc-42" {
		t.Errorf("id = %q, want doc-42", ref.ID)
	}
	if got := ref.DisplayName(); got != "Dr. Chen" {
		t.Errorf("display name = %q, want Dr. Chen", got)
	}
	if ref.Profile.Specialization != "cardiology" {
		t.Errorf("specialization = %q", ref.Profile.Specialization)
	}
}

func TestDoctorRef_MarshalRoundTrip(t *testing.T) {
	var bare DoctorRef
	if err := json.Unmarshal([]byte(`"doc-1"`), &bare); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(bare)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"doc-1"` {
		t.Errorf("bare ref marshalled as %s, want the plain id string", out)
	}

	var embedded DoctorRef
	if err := json.Unmarshal([]byte(`{"_id":"doc-1","user":{"name":"Dr. Chen"},"active":true}`), &embedded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err = json.Marshal(embedded)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var profile DoctorProfile
	if err := json.Unmarshal(out, &profile); err != nil {
		t.Fatalf("embedded ref did not marshal back to a profile object: %v", err)
	}
	if profile.User.Name != "Dr. Chen" {
		t.Errorf("round-tripped name = %q", profile.User.Name)
	}
}

func TestPatientRef_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantID   string
		wantName string
		embedded bool
	}{
		{
			name:    "bare id",
			payload: `"pat-7"`,
			wantID:  "pat-7",
		},
		{
			name:     "embedded with mongo id",
			payload:  `{"_id":"pat-7","name":"Bob","email":"bob@example.com","role":"patient"}`,
			wantID:   "pat-7",
			wantName: "Bob",
			embedded: true,
		},
		{
			name:     "embedded with plain id",
			payload:  `{"id":"pat-8","name":"Carol"}`,
			wantID:   "pat-8",
			wantName: "Carol",
			embedded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref PatientRef
			if err := json.Unmarshal([]byte(tt.payload), &ref); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if ref.ID != tt.wantID {
				t.Errorf("id = %q, want %q", ref.ID, tt.wantID)
			}
			if ref.Embedded() != tt.embedded {
				t.Errorf("Embedded() = %v, want %v", ref.Embedded(), tt.embedded)
			}
			if tt.embedded && ref.User.Name != tt.wantName {
				t.Errorf("name = %q, want %q", ref.User.Name, tt.wantName)
			}
		})
	}
}

func TestPatientRef_RejectsGarbage(t *testing.T) {
	var ref PatientRef
	if err := json.Unmarshal([]byte(`42`), &ref); err == nil {
		t.Error("numeric payload must be rejected")
	}
}

func TestStatusAndRoleValidity(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("status %q reported invalid", s)
		}
	}
	if AppointmentStatus("rescheduled").Valid() {
		t.Error("unknown status reported valid")
	}

	for _, r := range []Role{RolePatient, RoleDoctor, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("role %q reported invalid", r)
		}
	}
	if Role("nurse").Valid() {
		t.Error("unknown role reported valid")
	}
}
