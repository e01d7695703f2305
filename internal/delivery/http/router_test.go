package http

import (
	"bytes"
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

	"eventmanager/internal/adapters/auth"
	"eventmanager/internal/domain"
	"eventmanager/internal/repository/memory"
	"eventmanager/internal/services"
)

type apiClient struct {
	t      *testing.T
	server *httptest.Server
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *apiClient) do(method, path, token string, body any) (int, envelope) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.server.URL+path, rd)
	require.NoError(c.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

func (c *apiClient) errorCode(env envelope) string {
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

func newTestAPI(t *testing.T) (*apiClient, *memory.Store, *auth.JWT) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	checker := services.NewAvailabilityChecker(store.Events())
	ledger := services.NewRegistrationLedger(store, store.Events(), store.Registrations(), logger, time.Second)
	users := services.NewUserService(store.Users(), logger, time.Second)
	jwt := auth.NewJWT("router-test")

	handler := NewRouter(logger, Services{
		Events:    services.NewEventService(store, store.Events(), store.Venues(), store.Users(), ledger, checker, logger, time.Second),
		Attendees: services.NewAttendeeService(store.Events(), ledger, time.Second),
		Venues:    services.NewVenueService(store.Venues(), checker, logger, time.Second),
		Users:     users,
		Stats:     services.NewStatsService(store.Events(), store.Users(), store.Venues(), store.Registrations(), time.Second),
		Verifier:  jwt,
	}, nil)
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &apiClient{t: t, server: server}, store, jwt
}

func TestRouter_EndToEnd(t *testing.T) {
	api, store, jwt := newTestAPI(t)
	ctx := context.Background()

	admin := domain.NewUser("Admin", "admin@example.com", domain.RoleAdmin, time.Now())
	require.NoError(t, store.Users().Create(ctx, admin))
	adminToken, err := jwt.Issue(admin.ID, admin.Email, time.Hour)
	require.NoError(t, err)

	token := func(id, email string) string {
		tok, err := jwt.Issue(id, email, time.Hour)
		require.NoError(t, err)
		return tok
	}
	createUser := func(name, email, role string) domain.User {
		status, env := api.do(http.MethodPost, "/admin/users", adminToken, map[string]string{"name": name, "email": email, "role": role})
		require.Equal(t, http.StatusCreated, status)
		var u domain.User
		require.NoError(t, json.Unmarshal(env.Data, &u))
		return u
	}

	status, _ := api.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	// Venue administration is admin-only.
	status, env := api.do(http.MethodPost, "/venues", adminToken, map[string]any{"name": "Main Hall", "address": "123 Main St", "capacity": 200})
	require.Equal(t, http.StatusCreated, status)
	var venue domain.Venue
	require.NoError(t, json.Unmarshal(env.Data, &venue))

	org := createUser("Olga", "olga@example.com", "organizer")
	u1 := createUser("Ann", "ann@example.com", "")
	u2 := createUser("Bob", "bob@example.com", "")
	u3 := createUser("Cid", "cid@example.com", "")
	orgToken := token(org.ID, org.Email)

	status, env = api.do(http.MethodPost, "/venues", orgToken, map[string]any{"name": "Shed"})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", api.errorCode(env))

	status, _ = api.do(http.MethodPost, "/events", "", map[string]any{"title": "Nope"})
	require.Equal(t, http.StatusUnauthorized, status)

	status, env = api.do(http.MethodPost, "/events", orgToken, map[string]any{
		"title": "A", "capacity": 2, "venue_id": venue.ID,
		"start": "2025-11-25T18:00:00Z", "end": "2025-11-25T20:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	var eventA domain.Event
	require.NoError(t, json.Unmarshal(env.Data, &eventA))

	status, env = api.do(http.MethodPost, "/events", orgToken, map[string]any{
		"title": "B", "venue_id": venue.ID, "start": "2025-11-25T19:00:00Z", "end": "2025-11-25T21:00:00Z",
	})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "venue_conflict", api.errorCode(env))

	status, env = api.do(http.MethodGet, "/venues/"+venue.ID+"/availability?start=2025-11-25T20:00:00Z&end=2025-11-25T21:00:00Z", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"venue_id":"`+venue.ID+`","available":true}`, string(env.Data))

	status, _ = api.do(http.MethodPost, "/events", orgToken, map[string]any{
		"title": "C", "venue_id": venue.ID, "start": "2025-11-25T20:00:00Z", "end": "2025-11-25T21:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)

	// Registration up to capacity.
	regPath := "/events/" + eventA.ID + "/registrations"
	status, _ = api.do(http.MethodPost, regPath, token(u1.ID, u1.Email), nil)
	require.Equal(t, http.StatusCreated, status)
	status, env = api.do(http.MethodPost, regPath, token(u1.ID, u1.Email), nil)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "already_registered", api.errorCode(env))
	status, _ = api.do(http.MethodPost, regPath, token(u2.ID, u2.Email), nil)
	require.Equal(t, http.StatusCreated, status)
	status, env = api.do(http.MethodPost, regPath, token(u3.ID, u3.Email), nil)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "event_full", api.errorCode(env))
	status, env = api.do(http.MethodPost, regPath, orgToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", api.errorCode(env))

	status, env = api.do(http.MethodDelete, regPath, token(u1.ID, u1.Email), nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"removed":true}`, string(env.Data))
	status, _ = api.do(http.MethodPost, regPath, token(u3.ID, u3.Email), nil)
	require.Equal(t, http.StatusCreated, status)

	// Attendee list is organizer/admin only and in registration order.
	status, _ = api.do(http.MethodGet, "/events/"+eventA.ID+"/attendees", token(u2.ID, u2.Email), nil)
	require.Equal(t, http.StatusForbidden, status)
	status, env = api.do(http.MethodGet, "/events/"+eventA.ID+"/attendees", orgToken, nil)
	require.Equal(t, http.StatusOK, status)
	var attendees []domain.Attendee
	require.NoError(t, json.Unmarshal(env.Data, &attendees))
	require.Len(t, attendees, 2)
	assert.Equal(t, u2.ID, attendees[0].UserID)
	assert.Equal(t, u3.ID, attendees[1].UserID)

	status, env = api.do(http.MethodGet, "/events/"+eventA.ID, "", nil)
	require.Equal(t, http.StatusOK, status)
	var detail domain.EventDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 2, detail.RegisteredCount)
	assert.Equal(t, "Main Hall", detail.Venue.Name)

	status, env = api.do(http.MethodGet, "/events?q=main+hall", "", nil)
	require.Equal(t, http.StatusOK, status)
	var list struct {
		Items      []domain.EventDetail `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 2, list.Pagination.Total)

	status, env = api.do(http.MethodGet, "/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var stats domain.Statistics
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.TotalEvents)
	assert.Equal(t, 2, stats.TotalRegistrations)
	assert.Equal(t, 5, stats.TotalUsers)

	// A deleted user's token stops working.
	status, _ = api.do(http.MethodDelete, "/admin/users/"+u3.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, _ = api.do(http.MethodGet, "/me/registrations", token(u3.ID, u3.Email), nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, env = api.do(http.MethodDelete, "/admin/users/"+admin.ID, adminToken, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "forbidden", api.errorCode(env))
}
