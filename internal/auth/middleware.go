package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forgemart/forgemart/internal/platform/httpx"
	"github.com/forgemart/forgemart/internal/shared"
)

const bearerPrefix = "Bearer "

// Resolver authenticates each inbound request from its bearer token and
// attaches the resolved principal to the request context. It is installed
// once at the top of the router, so resolution runs exactly once per
// request, before route dispatch and before any policy check.
type Resolver struct {
	codec  *TokenCodec
	store  IdentityStore
	logger *slog.Logger
	exempt []string
}

// NewResolver constructs a resolver. Paths under any of the exempt
// prefixes pass through unauthenticated with no principal attached.
func NewResolver(codec *TokenCodec, store IdentityStore, logger *slog.Logger, exempt []string) *Resolver {
	prefixes := make([]string, 0, len(exempt))
	for _, p := range exempt {
		p = strings.TrimSpace(p)
		if p != "" {
			prefixes = append(prefixes, strings.TrimSuffix(p, "/"))
		}
	}
	return &Resolver{codec: codec, store: store, logger: logger, exempt: prefixes}
}

// Middleware returns the http middleware performing identity resolution.
// Every failure surfaces as the same generic 401; the distinct causes are
// kept in operator logs only.
func (rs *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rs.exempted(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			rs.logger.Warn("authorization header missing or malformed", slog.String("path", r.URL.Path))
			httpx.Unauthorized(w)
			return
		}

		subjectID, err := rs.codec.VerifyAndDecode(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			rs.logger.Warn("bearer token rejected", slog.String("path", r.URL.Path))
			httpx.Unauthorized(w)
			return
		}

		identity, err := rs.store.FindByID(r.Context(), subjectID)
		if err != nil {
			// The subject may have been deleted after the token was issued.
			// Outwardly identical to an invalid token, logged apart for
			// diagnosis.
			if errors.Is(err, shared.ErrNotFound) {
				rs.logger.Warn("token subject no longer exists", slog.Int64("subject", subjectID))
			} else {
				rs.logger.Error("identity lookup during resolution", slog.Any("error", err))
			}
			httpx.Unauthorized(w)
			return
		}

		ctx := ContextWithPrincipal(r.Context(), NewPrincipal(*identity))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (rs *Resolver) exempted(path string) bool {
	for _, prefix := range rs.exempt {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
