package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/app"
	"github.com/lucasmendez/rolegate/utils"
)

// tokenCookieName is the cookie the login handler sets and the auth
// middleware reads.
const tokenCookieName = "token"

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterHandler creates a new account
func RegisterHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid request body")
			return
		}

		if err := utils.ValidateStruct(&req); err != nil {
			_ = utils.WriteBadRequest(w, err.Error())
			return
		}

		user, err := deps.AuthService.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteCreated(w, NewUserResponse(*user))
	}
}

// LoginHandler verifies credentials, sets the token cookie and returns the
// signed token
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid request body")
			return
		}

		if err := utils.ValidateStruct(&req); err != nil {
			_ = utils.WriteBadRequest(w, err.Error())
			return
		}

		signed, user, err := deps.AuthService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookieName,
			Value:    signed,
			Path:     "/",
			MaxAge:   deps.Config.Auth.CookieMaxAge,
			HttpOnly: true,
			Secure:   deps.Config.Auth.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		deps.Logger.Debug("login succeeded", zap.String("user_id", user.ID.String()))

		_ = utils.WriteOK(w, map[string]string{"token": signed})
	}
}

// LogoutHandler expires the token cookie. The route is gated, so only
// authenticated callers reach it.
func LogoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     tokenCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   deps.Config.Auth.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		_ = utils.WriteOK(w, nil)
	}
}
