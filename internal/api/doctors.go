package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/carehub-project/carectl/internal/model"
)

// DoctorSearch holds the optional filters for GET /doctors. Zero values
// mean the filter is omitted from the query string entirely.
type DoctorSearch struct {
	Query          string
	Specialization string
	Page           int
	Limit          int
}

func (s DoctorSearch) values() url.Values {
	q := url.Values{}
	if s.Query != "" {
		q.Set("q", s.Query)
	}
	if s.Specialization != "" {
		q.Set("specialization", s.Specialization)
	}
	if s.Page > 0 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 {
		q.Set("limit", strconv.Itoa(s.Limit))
	}
	return q
}

// DoctorInput is the payload for creating or updating a doctor profile
type DoctorInput struct {
	Specialization string  `json:"specialization,omitempty"`
	Fees           float64 `json:"fees,omitempty" validate:"omitempty,gte=0"`
	Experience     int     `json:"experience,omitempty" validate:"omitempty,gte=0"`
	Bio            string  `json:"bio,omitempty"`
	Img            string  `json:"img,omitempty"`
	Active         *bool   `json:"active,omitempty"`
}

// ListDoctors fetches the paged doctor directory
func (c *Client) ListDoctors(ctx context.Context, search DoctorSearch) (*model.DoctorList, error) {
	var resp model.DoctorList
	if err := c.do(ctx, http.MethodGet, "/doctors", search.values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetDoctor fetches a single doctor profile by id
func (c *Client) GetDoctor(ctx context.Context, id string) (*model.DoctorProfile, error) {
	var resp model.DoctorDetail
	if err := c.do(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateDoctor registers a new doctor profile
func (c *Client) CreateDoctor(ctx context.Context, input DoctorInput) (*model.DoctorProfile, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.DoctorDetail
	if err := c.do(ctx, http.MethodPost, "/doctors", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateDoctor patches an existing doctor profile
func (c *Client) UpdateDoctor(ctx context.Context, id string, input DoctorInput) (*model.DoctorProfile, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.DoctorDetail
	if err := c.do(ctx, http.MethodPatch, "/doctors/"+url.PathEscape(id), nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteDoctor removes a doctor profile
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/doctors/"+url.PathEscape(id), nil, nil, nil)
}
