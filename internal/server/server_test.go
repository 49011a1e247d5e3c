package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pantry-backend/internal/platform/config"
)

func newTestRouter(t *testing.T, mode string) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	cfg, err := config.Parse([]byte("mode: " + mode + "\ndatabase:\n  dbname: pantry\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	svc, err := NewServices(conn, cfg, nil)
	require.NoError(t, err)
	return NewRouter(cfg, zap.NewNop(), svc), mock
}

func TestStaffRoutesRequireToken(t *testing.T) {
	r, mock := newTestRouter(t, config.ModeDev)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/v1/inventory/items"},
		{http.MethodPost, "/api/v1/inventory/items"},
		{http.MethodDelete, "/api/v1/inventory/items/x?confirm=true"},
		{http.MethodPost, "/api/v1/scan"},
		{http.MethodGet, "/api/v1/shelves"},
		{http.MethodGet, "/api/v1/shelves/labels.csv"},
		{http.MethodGet, "/api/v1/volunteers/tasks"},
		{http.MethodPost, "/api/v1/volunteers/tasks/x/toggle"},
		{http.MethodGet, "/api/v1/suggestions"},
		{http.MethodPatch, "/api/v1/suggestions/x/status"},
		{http.MethodGet, "/api/v1/dashboard/stats"},
		{http.MethodGet, "/api/v1/dashboard/ws"},
		{http.MethodGet, "/api/v1/auth/session"},
		{http.MethodPost, "/api/v1/auth/register"},
	}
	for _, rt := range routes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", rt.method, rt.path)
	}
	// 認証で弾かれるので DB には一切触れない
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicSubmissionIsOpen(t *testing.T) {
	r, mock := newTestRouter(t, config.ModeDev)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/suggestions", strings.NewReader(`{"suggestion":"short"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterMisc(t *testing.T) {
	r, _ := newTestRouter(t, config.ModeDev)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/public/suggestions")
}

func TestSwaggerOnlyInDev(t *testing.T) {
	cfgRelease := "mode: release\ndatabase:\n  dbname: pantry\nauth:\n  jwt_secret: 0123456789abcdef0123\n"
	cfg, err := config.Parse([]byte(cfgRelease))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	conn, _, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	svc, err := NewServices(conn, cfg, nil)
	require.NoError(t, err)
	rel := NewRouter(cfg, zap.NewNop(), svc)

	w := httptest.NewRecorder()
	rel.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
