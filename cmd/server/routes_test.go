package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/clock"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/config"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/api/settings/endpoints"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/model"
)

type stubDevice struct{}

func (stubDevice) Settings(context.Context) (model.Settings, error) {
	return model.Settings{Alarms: []model.Alarm{{Hour: 7, Minute: 0}}}, nil
}

func (stubDevice) SaveSettings(context.Context, model.Settings) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

var _ clock.Device = stubDevice{}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	notifier, closeNotifier := InitNotifier(&config.Config{})
	t.Cleanup(closeNotifier)

	r := gin.New()
	RegisterRoutes(r, endpoints.NewSettingsController(stubDevice{}, notifier, time.Second), LoadTemplates())
	return r
}

func TestRoutesAreRegistered(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/healthz", "/", "/api/settings"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAPIPostRequiresJSON(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader("count=0"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestPagePostAcceptsForm(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("count=1&hour0=7&minute0=0"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), endpoints.SavedFlash)
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/settings", nil)
	req.Header.Set("Origin", "http://clock.local")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://clock.local", w.Header().Get("Access-Control-Allow-Origin"))
}
