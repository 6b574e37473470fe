package model

import (
	"encoding/json"
	"fmt"
)

// The backend denormalizes appointment parties inconsistently: a doctor or
// patient field may arrive as an embedded document or as a bare identifier.
// DoctorRef and PatientRef are tagged variants so call sites branch on
// Embedded() instead of sniffing the JSON shape.

// DoctorRef is either a bare doctor id or an embedded profile
type DoctorRef struct {
	ID      string
	Profile *DoctorProfile
}

// Embedded reports whether the full profile was delivered inline
func (r DoctorRef) Embedded() bool { return r.Profile != nil }

// DisplayName returns the doctor's name when embedded, otherwise the id
func (r DoctorRef) DisplayName() string {
	if r.Profile != nil {
		return r.Profile.User.Name
	}
	return r.ID
}

// UnmarshalJSON accepts either a JSON string (bare id) or an object
func (r *DoctorRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var profile DoctorProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("doctor reference is neither id nor profile: %w", err)
	}
	r.Profile = &profile
	r.ID = profile.ID
	return nil
}

// MarshalJSON writes back the same shape that was received
func (r DoctorRef) MarshalJSON() ([]byte, error) {
	if r.Profile != nil {
		return json.Marshal(r.Profile)
	}
	return json.Marshal(r.ID)
}

// PatientRef is either a bare user id or an embedded user record
type PatientRef struct {
	ID   string
	User *User
}

// Embedded reports whether the full user record was delivered inline
func (r PatientRef) Embedded() bool { return r.User != nil }

// DisplayName returns the patient's name when embedded, otherwise the id
func (r PatientRef) DisplayName() string {
	if r.User != nil {
		return r.User.Name
	}
	return r.ID
}

// UnmarshalJSON accepts either a JSON string (bare id) or an object
func (r *PatientRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var user struct {
		ID string `json:"_id"`
		User
	}
	if err := json.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("patient reference is neither id nor user: %w", err)
	}
	u := user.User
	if u.ID == "" {
		u.ID = user.ID
	}
	r.User = &u
	r.ID = u.ID
	return nil
}

// MarshalJSON writes back the same shape that was received
func (r PatientRef) MarshalJSON() ([]byte, error) {
	if r.User != nil {
		return json.Marshal(r.User)
	}
	return json.Marshal(r.ID)
}
