package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resolverFixture(t *testing.T) (*Resolver, *TokenCodec, *stubStore) {
	t.Helper()
	codec := NewTokenCodec("test-secret", time.Hour)
	store := storeWith(t, 42, "mario@test.local", "correcthorse", RoleUser)
	resolver := NewResolver(codec, store, discardLogger(), []string{"/auth", "/healthz"})
	return resolver, codec, store
}

// capture records the principal the resolver attached for the next handler.
func capture(principal **Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*principal = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestResolverExemptPaths(t *testing.T) {
	resolver, _, _ := resolverFixture(t)

	for _, path := range []string{"/auth/login", "/auth", "/healthz"} {
		var principal *Principal
		res := httptest.NewRecorder()
		resolver.Middleware(capture(&principal)).ServeHTTP(res, httptest.NewRequest(http.MethodPost, path, nil))

		assert.Equal(t, http.StatusNoContent, res.Code, "path %s", path)
		assert.Nil(t, principal, "path %s", path)
	}

	// A prefix match must not swallow sibling paths.
	res := httptest.NewRecorder()
	resolver.Middleware(capture(new(*Principal))).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/authors", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestResolverMissingHeader(t *testing.T) {
	resolver, _, _ := resolverFixture(t)

	for _, header := range []string{"", "Basic abc", "bearer lowercase", "Bearer"} {
		r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		res := httptest.NewRecorder()
		resolver.Middleware(capture(new(*Principal))).ServeHTTP(res, r)
		assert.Equal(t, http.StatusUnauthorized, res.Code, "header %q", header)
	}
}

func TestResolverInvalidToken(t *testing.T) {
	resolver, _, _ := resolverFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer not-a-valid-token")
	res := httptest.NewRecorder()
	resolver.Middleware(capture(new(*Principal))).ServeHTTP(res, r)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestResolverDeletedSubject(t *testing.T) {
	resolver, codec, store := resolverFixture(t)

	token, err := codec.Issue(42)
	require.NoError(t, err)
	delete(store.byID, 42)

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	resolver.Middleware(capture(new(*Principal))).ServeHTTP(res, r)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestResolverAttachesPrincipal(t *testing.T) {
	resolver, codec, _ := resolverFixture(t)

	token, err := codec.Issue(42)
	require.NoError(t, err)

	var principal *Principal
	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	res := httptest.NewRecorder()
	resolver.Middleware(capture(&principal)).ServeHTTP(res, r)

	assert.Equal(t, http.StatusNoContent, res.Code)
	require.NotNil(t, principal)
	assert.Equal(t, int64(42), principal.Identity.ID)
	assert.True(t, principal.HasAuthority(RoleUser))
}
