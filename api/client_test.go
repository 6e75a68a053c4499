package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrischez00/campel-fichajes/fichaje"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api", Token: "tok-1", Location: time.UTC})
}

func TestJoinDedupesAPIPrefix(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://host/api"})
	assert.Equal(t, "http://host/api/fichajes", c.join("/fichajes"))
	assert.Equal(t, "http://host/api/fichajes", c.join("fichajes"))
	assert.Equal(t, "http://host/api/fichajes", c.join("/api/fichajes"))
}

func TestFichajesSendsBearerAndSkipsBadRows(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fichajes", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"tipo":"entrada","timestamp":"2024-03-04T09:00:00","is_manual":false},
			{"tipo":"salida","timestamp":"no vale","is_manual":false},
			{"tipo":"salida","timestamp":"2024-03-04T13:00:00+00:00","is_manual":true,"motivo":"olvido"}
		]`))
	}))

	punches, err := c.Fichajes(context.Background())
	require.NoError(t, err)
	require.Len(t, punches, 2)
	assert.Equal(t, fichaje.Entrada, punches[0].Kind)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), punches[0].Timestamp)
	assert.True(t, punches[1].IsManual)
	assert.Equal(t, "olvido", punches[1].Motive)
}

func TestRefreshOn401RetriesOnce(t *testing.T) {
	var calls []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path+" "+r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/auth/refresh":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok-2"}`))
		case "/api/fichajes":
			if r.Header.Get("Authorization") != "Bearer tok-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`[]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	_, err := c.Fichajes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", c.Token())
	require.Len(t, calls, 3)
	assert.Equal(t, "/api/fichajes Bearer tok-1", calls[0])
	assert.Equal(t, "/api/fichajes Bearer tok-2", calls[2])
}

func TestRefreshFailureSurfacesOnce(t *testing.T) {
	hits := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := c.Fichajes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	// Original request plus one refresh attempt, never a retry loop.
	assert.Equal(t, 2, hits)
	assert.Empty(t, c.Token())
}

func TestErrorDetailFromBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Ya existe un fichaje de entrada"}`))
	}))

	err := c.Fichar(context.Background(), fichaje.Entrada)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ya existe un fichaje de entrada")
}

func TestFicharPostsForm(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/fichar", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "salida", r.PostForm.Get("tipo"))
		w.WriteHeader(http.StatusCreated)
	}))

	require.NoError(t, c.Fichar(context.Background(), fichaje.Salida))
}

func TestCrearAusenciaSendsIdempotencyKey(t *testing.T) {
	keys := map[string]bool{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ausencias", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		k := r.Header.Get("X-Idempotency-Key")
		require.NotEmpty(t, k)
		keys[k] = true
		w.WriteHeader(http.StatusCreated)
	}))

	req := AbsenceRequest{Tipo: "VACACIONES", FechaInicio: "2024-03-04", FechaFin: "2024-03-08"}
	require.NoError(t, c.CrearAusencia(context.Background(), req))
	require.NoError(t, c.CrearAusencia(context.Background(), req))
	// Each submission is its own intent and gets a fresh key.
	assert.Len(t, keys, 2)
}

func TestWorkingDaysQuery(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/calendar/working-days", r.URL.Path)
		assert.Equal(t, "2024-03-04", r.URL.Query().Get("start"))
		assert.Equal(t, "2024-03-08", r.URL.Query().Get("end"))
		w.Write([]byte(`{"working_days":5}`))
	}))

	n, err := c.WorkingDays(context.Background(), "2024-03-04", "2024-03-08")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestLoginStoresToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login-json", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "r1", HttpOnly: true})
		w.Write([]byte(`{"access_token":"tok-9"}`))
	}))
	c.setToken("")

	require.NoError(t, c.Login(context.Background(), "ana@campel.es", "secreto"))
	assert.Equal(t, "tok-9", c.Token())
}

func TestLoadConfigAppendsAPISuffix(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://backend:8000/")
	t.Setenv(EnvTZ, "UTC")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:8000/api", cfg.BaseURL)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestLoadConfigRejectsBadZone(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTZ, "Marte/Olympus")

	_, err := LoadConfig()
	assert.Error(t, err)
}
