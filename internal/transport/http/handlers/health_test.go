package http_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ping(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func TestHealthz(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthHandler().Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Run("all ok", func(t *testing.T) {
		h := NewHealthHandler(Check{Name: "db", Ping: ping(nil), Required: true})
		rr := httptest.NewRecorder()
		h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("required down", func(t *testing.T) {
		h := NewHealthHandler(Check{Name: "db", Ping: ping(errors.New("down")), Required: true})
		rr := httptest.NewRecorder()
		h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("optional down", func(t *testing.T) {
		h := NewHealthHandler(
			Check{Name: "db", Ping: ping(nil), Required: true},
			Check{Name: "redis", Ping: ping(errors.New("down"))},
		)
		rr := httptest.NewRecorder()
		h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "unavailable", body.Checks["redis"])
		assert.Equal(t, "ok", body.Checks["db"])
	})
}
