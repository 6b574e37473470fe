// Package model defines the wire records exchanged with the CareHub backend
package model

import "time"

// Role identifies the kind of account a user holds
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one the backend recognizes
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record owned by the session
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// UserSummary is the embedded user block inside a doctor profile
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DoctorProfile describes a doctor as listed and booked against
type DoctorProfile struct {
	ID             string      `json:"_id"`
	Img            string      `json:"img,omitempty"`
	User           UserSummary `json:"user"`
	Specialization string      `json:"specialization,omitempty"`
	Fees           float64     `json:"fees,omitempty"`
	Experience     int         `json:"experience,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	Active         bool        `json:"active"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Pagination accompanies paged list responses
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DoctorList is the envelope for GET /doctors
type DoctorList struct {
	Success    bool            `json:"success"`
	Data       []DoctorProfile `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// DoctorDetail is the envelope for a single doctor
type DoctorDetail struct {
	Success bool          `json:"success"`
	Data    DoctorProfile `json:"data"`
}

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether the status is one the backend recognizes
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is received from the backend and never constructed locally.
// Only its Status field is ever changed by this client, mirroring a
// successful status-change acknowledgment.
type Appointment struct {
	ID        string            `json:"_id"`
	Doctor    DoctorRef         `json:"doctor"`
	Patient   PatientRef        `json:"patient"`
	Start     time.Time         `json:"start"`
	End       time.Time         `json:"end"`
	Reason    string            `json:"reason,omitempty"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ReviewAuthor is the embedded patient block on a review
type ReviewAuthor struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Review is a patient's rating of a doctor
type Review struct {
	ID        string       `json:"_id"`
	Doctor    string       `json:"doctor"`
	Patient   ReviewAuthor `json:"patient"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Recurrence values accepted on availability slots
const (
	RecurDaily   = "DAILY"
	RecurWeekly  = "WEEKLY"
	RecurMonthly = "MONTHLY"
)

// AvailabilitySlot is a bookable time window published by a doctor
type AvailabilitySlot struct {
	ID        string    `json:"_id"`
	Doctor    string    `json:"doctor"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Recurring string    `json:"recurring,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
