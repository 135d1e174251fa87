package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pettrackr/internal/domain/owners"
	"pettrackr/internal/middleware"
)

type CookieOptions struct {
	Name   string
	Secure bool
}

func RegisterRoutes(r chi.Router, svc *Service, cookie CookieOptions) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", loginHandler(svc, cookie))
		ar.Post("/logout", logoutHandler(svc, cookie))
		ar.Get("/me", meHandler(svc))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginHandler godoc
// @Summary Login
// @Description Valida credenciales, abre sesión y setea la cookie HttpOnly de sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} owners.OwnerResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "invalid email or password"
// @Router /auth/login [post]
func loginHandler(svc *Service, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, o, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, owners.ErrInvalidCredentials) {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    sess.ID,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, owners.ToResponse(o))
	}
}

// logoutHandler godoc
// @Summary Logout
// @Description Invalida la sesión actual (si existe) y borra la cookie.
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logoutHandler(svc *Service, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookie.Name); err == nil {
			if err := svc.Logout(r.Context(), c.Value); err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cookie.Name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// meHandler godoc
// @Summary Owner de la sesión actual
// @Tags auth
// @Produce json
// @Success 200 {object} owners.OwnerResponse
// @Failure 401 {string} string "unauthorized"
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.UserID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		o, err := svc.Me(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, owners.ErrNotFound) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, owners.ToResponse(o))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
