package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes monta el alta de cuenta (sin sesión).
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/owners/register", registerOwnerHandler(svc))
}

// RegisterRoutes se monta dentro de /owners/{ownerId}, ya protegido por
// RequireAuth + RequireOwner.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/", getOwnerHandler(svc))
	r.Patch("/", updateOwnerHandler(svc))
	r.Delete("/", deleteOwnerHandler(svc))
}

type registerOwnerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type updateOwnerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// OwnerResponse nunca incluye el hash. Lo reutiliza /auth/me.
type OwnerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// registerOwnerHandler godoc
// @Summary Registrar owner
// @Description Crea una cuenta nueva. El email se normaliza a minúsculas y debe ser único.
// @Tags owners
// @Accept json
// @Produce json
// @Param payload body registerOwnerRequest true "Datos de la cuenta"
// @Success 201 {object} OwnerResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 409 {string} string "email already registered"
// @Router /owners/register [post]
func registerOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(o))
	}
}

// getOwnerHandler godoc
// @Summary Perfil del owner
// @Tags owners
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Success 200 {object} OwnerResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerId} [get]
func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.GetByID(r.Context(), chi.URLParam(r, "ownerId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(o))
	}
}

// updateOwnerHandler godoc
// @Summary Actualizar owner (PATCH)
// @Description Solo se modifican los campos presentes.
// @Tags owners
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param payload body updateOwnerRequest true "Campos a modificar"
// @Success 200 {object} OwnerResponse
// @Failure 400 {string} string "invalid json / campos inválidos"
// @Failure 409 {string} string "email already registered"
// @Router /owners/{ownerId} [patch]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateOwnerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "ownerId"), UpdateInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponse(o))
	}
}

// deleteOwnerHandler godoc
// @Summary Borrar cuenta
// @Description Borra el owner junto con sus mascotas y todos sus registros.
// @Tags owners
// @Param ownerId path string true "ID del owner"
// @Success 204
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerId} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "ownerId")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ToResponse(o Owner) OwnerResponse {
	return OwnerResponse{
		ID:        o.ID,
		Name:      o.Name,
		Email:     o.Email,
		Phone:     o.Phone,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
