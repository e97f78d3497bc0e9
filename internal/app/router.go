package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/forgemart/forgemart/internal/addresses"
	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/categories"
	"github.com/forgemart/forgemart/internal/orders"
	"github.com/forgemart/forgemart/internal/products"
	"github.com/forgemart/forgemart/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Config *Config

	Middleware []func(http.Handler) http.Handler

	AuthHandler      *auth.Handler
	UsersHandler     *users.Handler
	ProductsHandler  *products.Handler
	CategoryHandler  *categories.Handler
	OrdersHandler    *orders.Handler
	AddressesHandler *addresses.Handler
}

// NewRouter constructs the chi.Router with Forgemart defaults. Everything
// under /api requires a resolved principal; /auth and /healthz are on the
// resolver allow-list.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range params.Middleware {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		params.UsersHandler.MountRegistrationRoutes(r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/categories", params.CategoryHandler.MountRoutes)
		r.Route("/orders", params.OrdersHandler.MountRoutes)
		r.Route("/addresses", params.AddressesHandler.MountRoutes)
	})

	return r
}
