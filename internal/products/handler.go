package products

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the product catalog.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   auth.Guard
}

func NewHandler(logger *slog.Logger, service *Service, guard auth.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers product routes on the provided router. Reads are
// open to any authenticated principal; writes need a staff role.
func (h *Handler) MountRoutes(r chi.Router) {
	staff := auth.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin)

	r.Get("/", h.list)
	r.Get("/search", h.search)
	r.Get("/filter", h.filter)
	r.Get("/available", h.available)
	r.With(h.guard.Require(staff)).Post("/", h.create)
	r.With(h.guard.Require(staff)).Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.logger.Error("search products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) filter(w http.ResponseWriter, r *http.Request) {
	minPrice, err := strconv.ParseFloat(r.URL.Query().Get("min_price"), 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "min_price must be a number")
		return
	}
	maxPrice, err := strconv.ParseFloat(r.URL.Query().Get("max_price"), 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "max_price must be a number")
		return
	}
	list, err := h.service.FilterByPrice(r.Context(), minPrice, maxPrice)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) available(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Available(r.Context())
	if err != nil {
		h.logger.Error("list available products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var product Product
	if err := httpx.DecodeJSON(r, &product); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
