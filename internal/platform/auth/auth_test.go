package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pantry-backend/internal/platform/apierr"
)

type memStore struct {
	mu       sync.Mutex
	accounts map[string]*Account
	revoked  map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{accounts: map[string]*Account{}, revoked: map[string]time.Time{}}
}

func (m *memStore) GetByID(_ context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) Create(_ context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return 0, nil
	}
	delete(m.accounts, id)
	return 1, nil
}

func (m *memStore) UpdateID(_ context.Context, oldID, newID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[oldID]
	if !ok {
		return 0, nil
	}
	delete(m.accounts, oldID)
	a.ID = newID
	m.accounts[newID] = a
	return 1, nil
}

func (m *memStore) Revoke(_ context.Context, jti string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = exp
	return nil
}

func (m *memStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

func (m *memStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, k)
			n++
		}
	}
	return n, nil
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDs struct{ n int }

func (s *seqIDs) New() string {
	s.n++
	return strings.Repeat("0", 25) + string(rune('A'+s.n))
}

func newTestService(t *testing.T) (*Service, *memStore, *fixedClock) {
	t.Helper()
	st := newMemStore()
	svc := NewServiceWithStores(st, st, []byte("test-secret-0123456789"), time.Hour)
	clk := &fixedClock{t: time.Now().UTC().Truncate(time.Second)}
	svc.clock = clk
	svc.ids = &seqIDs{}

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	st.accounts["alice"] = &Account{ID: "alice", PasswordHash: string(hash), Role: RoleAdmin}
	st.accounts["bob"] = &Account{ID: "bob", PasswordHash: string(hash), Role: RoleStaff, IsDisabled: true}
	return svc, st, clk
}

func TestLoginAndVerify(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.UserID)

	sess, err := svc.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.UserID)
	assert.Equal(t, RoleAdmin, sess.Role)
	assert.Equal(t, res.User.TokenID, sess.TokenID)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apierr.Status(err))

	_, err = svc.Login(ctx, "nobody", "correct horse")
	assert.Equal(t, http.StatusUnauthorized, apierr.Status(err))

	_, err = svc.Login(ctx, "bob", "correct horse")
	assert.Equal(t, http.StatusForbidden, apierr.Status(err))
}

func TestVerify_ExpiredAndTampered(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, res.Token+"x")
	assert.Equal(t, http.StatusUnauthorized, apierr.Status(err))

	clk.t = clk.t.Add(2 * time.Hour)
	_, err = svc.Verify(ctx, res.Token)
	assert.Equal(t, http.StatusUnauthorized, apierr.Status(err))
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	sess, err := svc.Verify(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sess))

	_, err = svc.Verify(ctx, res.Token)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apierr.Status(err))
}

func TestRegisterAndRename(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	assert.Equal(t, http.StatusBadRequest, apierr.Status(svc.Register(ctx, "carol", "short", "")))
	assert.Equal(t, http.StatusBadRequest, apierr.Status(svc.Register(ctx, "carol", "long enough", "owner")))
	assert.ErrorIs(t, svc.Register(ctx, "alice", "long enough", ""), ErrAlreadyExists)

	require.NoError(t, svc.Register(ctx, "carol", "long enough", ""))
	assert.Equal(t, RoleStaff, st.accounts["carol"].Role)

	assert.ErrorIs(t, svc.ChangeID(ctx, "carol", "alice"), ErrAlreadyExists)
	assert.ErrorIs(t, svc.ChangeID(ctx, "nobody", "dave"), ErrNotFound)
	require.NoError(t, svc.ChangeID(ctx, "carol", "dave"))
	_, ok := st.accounts["dave"]
	assert.True(t, ok)

	require.NoError(t, svc.Delete(ctx, "dave"))
	assert.ErrorIs(t, svc.Delete(ctx, "dave"), ErrNotFound)
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")
	guarded := api.Group("", RequireAuth(svc))
	RegisterRoutes(api, guarded, svc)
	guarded.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey))
	})
	return r
}

func login(t *testing.T, r *gin.Engine, id string) string {
	t.Helper()
	w := httptest.NewRecorder()
	body := `{"id":"` + id + `","password":"correct horse"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

func TestRequireAuth(t *testing.T) {
	svc, st, _ := newTestService(t)
	r := newRouter(svc)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token := login(t, r, "alice")
		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("query token only for websocket upgrades", func(t *testing.T) {
		token := login(t, r, "alice")

		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami?token="+token, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/whoami?token="+token, nil)
		req.Header.Set("Upgrade", "websocket")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("logout then reuse", func(t *testing.T) {
		token := login(t, r, "alice")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin routes need admin role", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
		require.NoError(t, err)
		st.accounts["erin"] = &Account{ID: "erin", PasswordHash: string(hash), Role: RoleStaff}
		token := login(t, r, "erin")

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/accounts/alice", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
