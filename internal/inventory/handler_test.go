package inventory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(st *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), newSvc(st))
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ListWithQuery(t *testing.T) {
	r := newTestRouter(newFakeStore(seed()...))
	w := do(r, http.MethodGet, "/api/v1/inventory/items?q=beans", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)
}

func TestHandler_CreateMissingFields(t *testing.T) {
	r := newTestRouter(newFakeStore())
	w := do(r, http.MethodPost, "/api/v1/inventory/items", `{"name":"Rice"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ARGUMENT")
}

func TestHandler_CreateReturnsLocation(t *testing.T) {
	r := newTestRouter(newFakeStore())
	w := do(r, http.MethodPost, "/api/v1/inventory/items", `{"name":"Rice","category":"Grains","quantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/api/v1/inventory/items/item-a", w.Header().Get("Location"))
}

func TestHandler_DeleteConfirmation(t *testing.T) {
	st := newFakeStore(seed()...)
	r := newTestRouter(st)

	w := do(r, http.MethodDelete, "/api/v1/inventory/items/rice", "")
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIRMATION_REQUIRED")
	assert.Zero(t, st.deleteCalls)

	w = do(r, http.MethodDelete, "/api/v1/inventory/items/rice?confirm=true", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, st.deleteCalls)
}

func TestHandler_GetNotFound(t *testing.T) {
	r := newTestRouter(newFakeStore())
	w := do(r, http.MethodGet, "/api/v1/inventory/items/zzz", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
