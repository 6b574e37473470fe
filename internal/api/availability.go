package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/carehub-project/carectl/internal/model"
)

// AvailabilityQuery holds the optional filters for a doctor's slot listing
type AvailabilityQuery struct {
	From      time.Time
	To        time.Time
	Recurring string
}

func (a AvailabilityQuery) values() url.Values {
	q := url.Values{}
	if !a.From.IsZero() {
		q.Set("from", a.From.Format(time.RFC3339))
	}
	if !a.To.IsZero() {
		q.Set("to", a.To.Format(time.RFC3339))
	}
	if a.Recurring != "" {
		q.Set("recurring", a.Recurring)
	}
	return q
}

// AvailabilityInput is the payload for POST /availability
type AvailabilityInput struct {
	Doctor    string    `json:"doctor" validate:"required"`
	Start     time.Time `json:"start" validate:"required"`
	End       time.Time `json:"end" validate:"required,gtfield=Start"`
	Recurring string    `json:"recurring,omitempty" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
}

// AvailabilityUpdate patches an existing slot; nil/zero fields are omitted
type AvailabilityUpdate struct {
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	Recurring *string    `json:"recurring,omitempty"`
}

// Availability lists a doctor's published slots
func (c *Client) Availability(ctx context.Context, doctorID string, query AvailabilityQuery) ([]model.AvailabilitySlot, error) {
	var resp []model.AvailabilitySlot
	if err := c.do(ctx, http.MethodGet, "/availability/doctor/"+url.PathEscape(doctorID), query.values(), nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateAvailability publishes a new bookable slot
func (c *Client) CreateAvailability(ctx context.Context, input AvailabilityInput) (*model.AvailabilitySlot, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.AvailabilitySlot
	if err := c.do(ctx, http.MethodPost, "/availability", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateAvailability patches a published slot
func (c *Client) UpdateAvailability(ctx context.Context, id string, update AvailabilityUpdate) (*model.AvailabilitySlot, error) {
	var resp model.AvailabilitySlot
	if err := c.do(ctx, http.MethodPatch, "/availability/"+url.PathEscape(id), nil, update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAvailability withdraws a published slot
func (c *Client) DeleteAvailability(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/availability/"+url.PathEscape(id), nil, nil, nil)
}
