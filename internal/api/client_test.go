package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehub-project/carectl/internal/model"
	"github.com/carehub-project/carectl/internal/validate"
)

type staticCreds string

func (s staticCreds) AccessToken() string { return string(s) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, staticCreds(token), testLogger())
}

func TestLogin_DecodesAuthResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"), "login must go out anonymous")

		var creds LoginCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice@example.com", creds.Email)

		_ = json.NewEncoder(w).Encode(model.AuthResponse{
			Token:        "access-1",
			RefreshToken: "refresh-1",
			User:         model.User{ID: "u1", Name: "Alice", Email: creds.Email, Role: model.RolePatient},
		})
	}, "")

	resp, err := client.Login(context.Background(), LoginCredentials{
		Email:    "alice@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.Token)
	assert.Equal(t, "refresh-1", resp.RefreshToken)
	assert.Equal(t, model.RolePatient, resp.User.Role)
}

func TestDo_AttachesBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]model.Appointment{})
	}, "tok-123")

	_, err := client.AppointmentsByPatient(context.Background(), "p1")
	require.NoError(t, err)
}

func TestDo_Unauthorized_FiresHookOnceAndReturnsSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}, "stale")

	fired := 0
	client.OnSessionInvalidated(func() { fired++ })

	_, err := client.AppointmentsByPatient(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, fired, "hook must fire exactly once per 401")
}

func TestDo_BackendMessageSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "slot already booked"})
	}, "tok")

	_, err := client.BookAppointment(context.Background(), BookingInput{
		DoctorID: "d1",
		Start:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "slot already booked", apiErr.Error())
}

func TestDo_MalformedErrorBodyFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}, "tok")

	_, err := client.GetDoctor(context.Background(), "d1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed", apiErr.Message)
}

func TestDo_TransportFailureIsUnexpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(srv.URL, time.Second, staticCreds(""), testLogger())
	_, err := client.ListDoctors(context.Background(), DoctorSearch{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.False(t, IsUnauthorized(err))
}

func TestBookAppointment_PayloadShape(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(model.Appointment{ID: "a1", Status: model.StatusPending})
	}, "tok")

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	apt, err := client.BookAppointment(context.Background(), BookingInput{
		DoctorID: "D1",
		Start:    start,
		End:      start.Add(30 * time.Minute),
		Reason:   "checkup",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", apt.ID)

	assert.Equal(t, "D1", got["doctorId"])
	assert.Equal(t, "2025-06-01T10:00:00Z", got["start"])
	assert.Equal(t, "2025-06-01T10:30:00Z", got["end"])
	assert.Equal(t, "checkup", got["reason"])
}

func TestBookAppointment_RejectedBeforeNetwork(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, "tok")

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	_, err := client.BookAppointment(context.Background(), BookingInput{
		DoctorID: "D1",
		Start:    start,
		End:      start.Add(-time.Minute), // ends before it starts
	})
	require.Error(t, err)
	assert.True(t, validate.IsValidation(err))
	assert.False(t, called, "invalid input must never reach the backend")
}

func TestListDoctors_OmitsUnsetFilters(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "cardiology", q.Get("specialization"))
		assert.False(t, q.Has("q"), "empty query filter must be absent, not blank")
		assert.False(t, q.Has("page"))
		assert.False(t, q.Has("limit"))
		_ = json.NewEncoder(w).Encode(model.DoctorList{Success: true})
	}, "")

	_, err := client.ListDoctors(context.Background(), DoctorSearch{Specialization: "cardiology"})
	require.NoError(t, err)
}

func TestAppointmentsByDoctor_DateRangeQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2025-06-01T00:00:00Z", q.Get("from"))
		assert.False(t, q.Has("to"))
		_ = json.NewEncoder(w).Encode([]model.Appointment{})
	}, "tok")

	_, err := client.AppointmentsByDoctor(context.Background(), "d1", DateRange{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestCancelAppointment_EscapesID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/appointments/a%2F1/cancel", r.URL.EscapedPath())
		w.WriteHeader(http.StatusOK)
	}, "tok")

	require.NoError(t, client.CancelAppointment(context.Background(), "a/1"))
}

func TestRefreshToken_ReturnsNewAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refreshToken"])
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "access-2"})
	}, "")

	token, err := client.RefreshToken(context.Background(), "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
}
