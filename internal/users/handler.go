package users

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/forgemart/forgemart/internal/auth"
	"github.com/forgemart/forgemart/internal/platform/httpx"
)

const maxImageUpload = 10 << 20 // 10 MiB

// Handler wires HTTP endpoints for account management and registration.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	guard     auth.Guard
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard auth.Guard) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		guard:     guard,
		validator: validator.New(),
	}
}

// MountRegistrationRoutes registers the open registration endpoints. They
// are mounted under the allow-listed auth prefix and need no token.
func (h *Handler) MountRegistrationRoutes(r chi.Router) {
	r.Post("/register", h.register(auth.RoleUser))
	r.Post("/register/admin", h.register(auth.RoleAdmin))
	r.Post("/register/superadmin", h.register(auth.RoleSuperAdmin))
}

// MountRoutes registers the protected account management API.
func (h *Handler) MountRoutes(r chi.Router) {
	staff := auth.HasAnyRole(auth.RoleAdmin, auth.RoleSuperAdmin)

	r.With(h.guard.Require(staff)).Get("/", h.list)
	r.With(h.guard.Require(staff)).Post("/", h.create)
	r.With(h.guard.Require(auth.AnyOf(staff, auth.IsOwner("id")))).Get("/{id}", h.get)
	r.With(h.guard.Require(staff)).Delete("/{id}", h.delete)
	r.With(h.guard.Require(auth.AnyOf(auth.IsOwner("id"), auth.HasRole(auth.RoleSuperAdmin)))).
		Patch("/{id}/profile-image", h.uploadProfileImage)
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=4,max=20"`
	Password  string `json:"password" validate:"required,min=8"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

func (h *Handler) register(role auth.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
			return
		}

		user, err := h.service.Register(r.Context(), RegisterInput{
			Username:  req.Username,
			Password:  req.Password,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}, role)
		if err != nil {
			h.logger.Warn("register user", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, user)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

// create lets staff provision a regular account through the management API.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	h.register(auth.RoleUser)(w, r)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadProfileImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid user id")
		return
	}
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "expected multipart form with a file field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "missing file field")
		return
	}
	defer file.Close()

	user, err := h.service.SetProfileImage(r.Context(), id, header.Filename, file)
	if err != nil {
		h.logger.Error("upload profile image", slog.Any("error", err), slog.Int64("user_id", id))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
