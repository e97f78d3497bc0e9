package auth

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forgemart/forgemart/internal/platform/httpx"
)

// Policy is a boolean predicate over the resolved principal and the request
// parameters, evaluated once immediately before a protected operation runs.
// Policies are composed at route-registration time; a predicate that
// references the principal evaluates to deny when none is attached.
type Policy func(r *http.Request, p *Principal) bool

// HasRole allows principals carrying the given role.
func HasRole(role Role) Policy {
	return func(_ *http.Request, p *Principal) bool {
		return p.HasAuthority(role)
	}
}

// HasAnyRole allows principals carrying at least one of the given roles.
func HasAnyRole(roles ...Role) Policy {
	return func(_ *http.Request, p *Principal) bool {
		for _, role := range roles {
			if p.HasAuthority(role) {
				return true
			}
		}
		return false
	}
}

// IsOwner allows the principal whose id equals the named path parameter.
func IsOwner(param string) Policy {
	return func(r *http.Request, p *Principal) bool {
		if p == nil {
			return false
		}
		id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
		if err != nil {
			return false
		}
		return p.Identity.ID == id
	}
}

// OwnerIs allows the principal with the given id. Used for ownership checks
// on ids that only become known after the request body is decoded.
func OwnerIs(ownerID int64) Policy {
	return func(_ *http.Request, p *Principal) bool {
		return p != nil && p.Identity.ID == ownerID
	}
}

// AnyOf combines policies with OR, short-circuiting left to right.
func AnyOf(policies ...Policy) Policy {
	return func(r *http.Request, p *Principal) bool {
		for _, policy := range policies {
			if policy(r, p) {
				return true
			}
		}
		return false
	}
}

// AllOf combines policies with AND, short-circuiting left to right.
func AllOf(policies ...Policy) Policy {
	return func(r *http.Request, p *Principal) bool {
		for _, policy := range policies {
			if !policy(r, p) {
				return false
			}
		}
		return true
	}
}

// Evaluate runs a policy against the principal attached to the request.
func Evaluate(r *http.Request, policy Policy) bool {
	return policy(r, PrincipalFromContext(r.Context()))
}

// Guard turns policies into route middleware. A denied request gets the
// uniform 403 body; which predicate failed stays out of the response.
type Guard struct {
	Logger *slog.Logger
}

// Require rejects the request with 403 unless the policy allows it.
func (g Guard) Require(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Evaluate(r, policy) {
				next.ServeHTTP(w, r)
				return
			}
			if g.Logger != nil {
				g.Logger.Warn("authorization denied", slog.String("path", r.URL.Path))
			}
			httpx.Forbidden(w)
		})
	}
}
