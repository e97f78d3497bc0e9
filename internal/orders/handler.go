package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/platform/httpx"
)

// Handler wires HTTP endpoints for orders.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     auth.Guard
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, guard auth.Guard) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRoutes registers order routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	staff := auth.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin)
	staffOrOwner := auth.AnyOf(staff, auth.IsOwner("userId"))

	r.Post("/", h.create)
	r.With(h.guard.Require(staff)).Get("/", h.list)
	r.With(h.guard.Require(staff)).Get("/status", h.listByStatus)
	r.With(h.guard.Require(staffOrOwner)).Get("/user/{userId}", h.listByUser)
	r.With(h.guard.Require(staffOrOwner)).Get("/user/{userId}/total", h.totalByUser)
}

// create authorizes against the body-declared buyer: only that user, or a
// superadmin, may place the order. The check runs after decode, before any
// business logic.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input CreateOrderInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if !auth.Evaluate(r, auth.AnyOf(auth.OwnerIs(input.UserID), auth.HasRole(auth.RoleSuperAdmin))) {
		h.logger.Warn("order placement denied", slog.Int64("buyer", input.UserID))
		httpx.Forbidden(w)
		return
	}

	order, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("place order", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listByStatus(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByStatus(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	list, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) totalByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	total, err := h.service.TotalSpentByUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{"total": total})
}
