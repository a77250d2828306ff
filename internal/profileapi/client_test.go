package profileapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kzone-booking-backend/internal/models"
)

func TestProbeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	assert.False(t, c.Available())
	c.Probe(context.Background())
	assert.True(t, c.Available())
}

func TestProbeUnhealthyStaysDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())
	assert.False(t, c.Available())
}

func TestProbeUnreachableStaysDegraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())
	assert.False(t, c.Available())
}

func TestProbeNotConfigured(t *testing.T) {
	c := NewClient("", time.Second)
	c.Probe(context.Background())
	assert.False(t, c.Available())
}

func TestRequestsShortCircuitWhenUnavailable(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	_, err := c.GetProfile(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrUnavailable)
	err = c.CreateUser(context.Background(), BackendUser{UID: "u1"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, calls, "no request may leave the client while degraded")
}

func TestGetProfileSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/auth/profile":
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(models.UserProfile{UID: "u1", Email: "kim@example.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())

	profile, err := c.GetProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.UID)
	assert.Equal(t, "kim@example.com", profile.Email)
}

func TestUpdateProfileSendsBody(t *testing.T) {
	var got models.ProfileUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/auth/profile":
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())

	phone := "010-1234-5678"
	require.NoError(t, c.UpdateProfile(context.Background(), "tok", models.ProfileUpdate{Phone: &phone}))
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)
	assert.Nil(t, got.DisplayName)
}

func TestErrorStatusIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())

	err := c.CreateUser(context.Background(), BackendUser{UID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDeleteUserPath(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		gotPath = r.URL.Path
		gotMethod = r.Method
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.Probe(context.Background())

	require.NoError(t, c.DeleteUser(context.Background(), "tok", "u1"))
	assert.Equal(t, "/auth/users/u1", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}
