package addresses

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/platform/httpx"
)

// Handler wires HTTP endpoints for delivery addresses.
type Handler struct {
	logger  *slog.Logger
	service *Service
	guard   auth.Guard
}

func NewHandler(logger *slog.Logger, service *Service, guard auth.Guard) *Handler {
	return &Handler{logger: logger, service: service, guard: guard}
}

// MountRoutes registers address routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	ownerOrSuper := auth.AnyOf(auth.IsOwner("userId"), auth.HasRole(auth.RoleSuperAdmin))

	r.With(h.guard.Require(ownerOrSuper)).Post("/user/{userId}", h.create)
	r.With(h.guard.Require(ownerOrSuper)).Get("/user/{userId}", h.getByUser)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	var address Address
	if err := httpx.DecodeJSON(r, &address); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}
	address.UserID = userID

	created, err := h.service.Create(r.Context(), address)
	if err != nil {
		h.logger.Warn("create address", slog.Any("error", err), slog.Int64("user_id", userID))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) getByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	address, err := h.service.GetByUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, address)
}
