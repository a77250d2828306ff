package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kzone-booking-backend/internal/models"
	"kzone-booking-backend/internal/session"
)

func TestWebSocketStreamsSessionEvents(t *testing.T) {
	manager := session.NewManager(newStubProvider(), newStubProfileStore(), offlineBackend{})
	wsHandler := NewWebSocketHandler(manager)

	r := chi.NewRouter()
	r.Get("/ws", wsHandler.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	sess, _, err := manager.SignUp(context.Background(), "kim@example.com", "secret1", "", "Kim")
	require.NoError(t, err)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + sess.Token()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// first message is the current state
	var ev session.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, session.EventAuthState, ev.Type)
	assert.Equal(t, session.StateAuthenticated, ev.State)
	require.NotNil(t, ev.User)
	assert.Equal(t, "kim@example.com", ev.User.Email)

	// then one message per transition
	require.NoError(t, sess.AddBooking(models.Booking{ID: "b1", ExperienceID: 2, Guests: 2}))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, session.EventBookingAdded, ev.Type)
	require.NotNil(t, ev.Booking)
	assert.Equal(t, "b1", ev.Booking.ID)
}

func TestWebSocketRejectsMissingOrBadToken(t *testing.T) {
	manager := session.NewManager(newStubProvider(), newStubProfileStore(), offlineBackend{})
	wsHandler := NewWebSocketHandler(manager)

	r := chi.NewRouter()
	r.Get("/ws", wsHandler.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws?token=bogus")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
