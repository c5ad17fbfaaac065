package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/app"
	"github.com/lucasmendez/rolegate/middleware"
	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/utils"
)

// UserResponse is the public projection of an account record
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewUserResponse builds a UserResponse from a user record
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetCurrentUserHandler returns the account bound to the request by the auth
// middleware
func GetCurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := middleware.Authenticated(r.Context())
		if err != nil {
			// Reaching here means the route was registered without the
			// gating middleware.
			deps.Logger.Error("authenticated user missing from context",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "Authentication error")
			return
		}

		_ = utils.WriteOK(w, NewUserResponse(user))
	}
}

// ListUsersHandler lists accounts, newest first. Admin only.
func ListUsersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		users, err := deps.UserService.List(r.Context(), limit, offset)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		responses := make([]UserResponse, 0, len(users))
		for _, user := range users {
			responses = append(responses, NewUserResponse(*user))
		}

		_ = utils.WriteOK(w, responses)
	}
}

// GetUserHandler returns a single account by ID. Admin only.
func GetUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid user ID")
			return
		}

		user, err := deps.UserService.GetByID(r.Context(), id)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, NewUserResponse(*user))
	}
}

// DeleteUserHandler removes an account. Admin only.
func DeleteUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid user ID")
			return
		}

		if err := deps.UserService.Delete(r.Context(), id); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		utils.WriteNoContent(w)
	}
}
