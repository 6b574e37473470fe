package validate

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type reviewForm struct {
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
	Role   string `json:"role" validate:"omitempty,oneof=patient doctor"`
}

func TestValidate_PassesValidInput(t *testing.T) {
	v := New()
	if err := v.Validate(loginForm{Email: "a@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(loginForm{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("fields keyed as %v, want the json name %q", verr.Fields, "email")
	}
	if msg := verr.Fields["password"]; !strings.Contains(msg, "at least 8") {
		t.Errorf("password message = %q, want the min length spelled out", msg)
	}
}

func TestValidate_MessageOrderIsStable(t *testing.T) {
	v := New()
	err := v.Validate(loginForm{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	first := err.Error()
	second := v.Validate(loginForm{}).Error()
	if first != second {
		t.Errorf("message order unstable: %q vs %q", first, second)
	}
	if !strings.Contains(first, "email is required") {
		t.Errorf("message = %q, want a required-field mention", first)
	}
}

func TestValidate_RangeAndOneOf(t *testing.T) {
	v := New()
	err := v.Validate(reviewForm{Rating: 9, Role: "nurse"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if msg := verr.Fields["rating"]; !strings.Contains(msg, "at most 5") {
		t.Errorf("rating message = %q", msg)
	}
	if msg := verr.Fields["role"]; !strings.Contains(msg, "one of") {
		t.Errorf("role message = %q", msg)
	}
}

func TestIsValidation(t *testing.T) {
	v := New()
	err := v.Validate(loginForm{})
	if !IsValidation(err) {
		t.Error("validation error not recognized")
	}
	if !IsValidation(fmt.Errorf("wrapped: %w", err)) {
		t.Error("wrapped validation error not recognized")
	}
	if IsValidation(errors.New("plain")) {
		t.Error("plain error misrecognized as validation")
	}
}
