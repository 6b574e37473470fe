package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/carehub-project/carectl/internal/model"
)

// BookingInput is the payload for POST /appointments. A booking needs a
// doctor and a chosen slot before it can leave the client.
type BookingInput struct {
	DoctorID string    `json:"doctorId" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required,gtfield=Start"`
	Reason   string    `json:"reason"`
}

// DateRange bounds a doctor's appointment listing. Zero times are omitted.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) values() url.Values {
	q := url.Values{}
	if !r.From.IsZero() {
		q.Set("from", r.From.Format(time.RFC3339))
	}
	if !r.To.IsZero() {
		q.Set("to", r.To.Format(time.RFC3339))
	}
	return q
}

// BookAppointment requests a new appointment in the given slot
func (c *Client) BookAppointment(ctx context.Context, input BookingInput) (*model.Appointment, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AppointmentsByPatient lists all appointments booked by a patient
func (c *Client) AppointmentsByPatient(ctx context.Context, patientID string) ([]model.Appointment, error) {
	var resp []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/patient/"+url.PathEscape(patientID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AppointmentsByDoctor lists a doctor's appointments, optionally bounded
func (c *Client) AppointmentsByDoctor(ctx context.Context, doctorID string, dates DateRange) ([]model.Appointment, error) {
	var resp []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/doctor/"+url.PathEscape(doctorID), dates.values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CancelAppointment cancels an appointment by id
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
}

// RescheduleAppointment moves an appointment to a new slot
func (c *Client) RescheduleAppointment(ctx context.Context, id string, newStart, newEnd time.Time) (*model.Appointment, error) {
	input := struct {
		NewStart time.Time `json:"newStart" validate:"required"`
		NewEnd   time.Time `json:"newEnd" validate:"required,gtfield=NewStart"`
	}{NewStart: newStart, NewEnd: newEnd}
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/reschedule", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetAppointmentStatus asks the backend to transition an appointment
func (c *Client) SetAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	body := map[string]model.AppointmentStatus{"status": status}
	var resp model.Appointment
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/status", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
