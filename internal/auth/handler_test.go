package auth_test

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

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/shared"
	_ "github.com/forgemart/forgemart/testing"
)

type fakeStore struct {
	identity *auth.Identity
}

func (s *fakeStore) FindByEmail(_ context.Context, email string) (*auth.Identity, error) {
	if s.identity != nil && s.identity.Email == email {
		return s.identity, nil
	}
	return nil, shared.ErrNotFound
}

func (s *fakeStore) FindByID(_ context.Context, id int64) (*auth.Identity, error) {
	if s.identity != nil && s.identity.ID == id {
		return s.identity, nil
	}
	return nil, shared.ErrNotFound
}

// newRouter assembles login plus one guarded API route, the way the real
// router stacks the pieces.
func newRouter(t *testing.T, store auth.IdentityStore) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	codec := auth.NewTokenCodec("test-secret", time.Hour)
	resolver := auth.NewResolver(codec, store, logger, []string{"/auth"})
	guard := auth.Guard{Logger: logger}
	handler := auth.NewHandler(logger, auth.NewService(store, codec))

	r := chi.NewRouter()
	r.Use(resolver.Middleware)
	r.Route("/auth", handler.MountRoutes)
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(guard.Require(auth.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin)))
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	r.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
		p := auth.PrincipalFromContext(r.Context())
		require.NotNil(t, p)
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func storeWithUser(t *testing.T, role auth.Role) *fakeStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correcthorse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeStore{identity: &auth.Identity{
		ID:           42,
		Email:        "mario@test.local",
		PasswordHash: string(hash),
		Role:         role,
	}}
}

func doLogin(t *testing.T, router http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestLoginAndAccessProtectedRoute(t *testing.T) {
	router := newRouter(t, storeWithUser(t, auth.RoleUser))

	res := doLogin(t, router, "mario@test.local", "correcthorse")
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+payload.AccessToken)
	apiRes := httptest.NewRecorder()
	router.ServeHTTP(apiRes, req)
	assert.Equal(t, http.StatusOK, apiRes.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newRouter(t, storeWithUser(t, auth.RoleUser))

	unknown := doLogin(t, router, "nobody@test.local", "correcthorse")
	wrongPass := doLogin(t, router, "mario@test.local", "wrongpass")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	// The two failures must be outwardly indistinguishable.
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestLoginValidation(t *testing.T) {
	router := newRouter(t, storeWithUser(t, auth.RoleUser))

	missing := doLogin(t, router, "", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestGuardedRouteByRole(t *testing.T) {
	t.Run("user denied", func(t *testing.T) {
		router := newRouter(t, storeWithUser(t, auth.RoleUser))
		res := doLogin(t, router, "mario@test.local", "correcthorse")
		require.Equal(t, http.StatusOK, res.Code)
		token := tokenFrom(t, res)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		apiRes := httptest.NewRecorder()
		router.ServeHTTP(apiRes, req)
		assert.Equal(t, http.StatusForbidden, apiRes.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		router := newRouter(t, storeWithUser(t, auth.RoleAdmin))
		res := doLogin(t, router, "mario@test.local", "correcthorse")
		require.Equal(t, http.StatusOK, res.Code)
		token := tokenFrom(t, res)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		apiRes := httptest.NewRecorder()
		router.ServeHTTP(apiRes, req)
		assert.Equal(t, http.StatusOK, apiRes.Code)
	})
}

func TestTamperedTokenRejected(t *testing.T) {
	router := newRouter(t, storeWithUser(t, auth.RoleUser))
	res := doLogin(t, router, "mario@test.local", "correcthorse")
	require.Equal(t, http.StatusOK, res.Code)
	token := tokenFrom(t, res)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	apiRes := httptest.NewRecorder()
	router.ServeHTTP(apiRes, req)
	assert.Equal(t, http.StatusUnauthorized, apiRes.Code)
}

func tokenFrom(t *testing.T, res *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.AccessToken)
	return payload.AccessToken
}
