package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carehub-project/carectl/internal/model"
)

// ReviewInput is the payload for POST /reviews
type ReviewInput struct {
	DoctorID string `json:"doctorId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment  string `json:"comment,omitempty"`
}

// CreateReview submits a rating for a doctor
func (c *Client) CreateReview(ctx context.Context, input ReviewInput) (*model.Review, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReviewsForDoctor lists every review left for a doctor
func (c *Client) ReviewsForDoctor(ctx context.Context, doctorID string) ([]model.Review, error) {
	var resp []model.Review
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(doctorID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
