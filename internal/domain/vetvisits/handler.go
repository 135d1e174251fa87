package vetvisits

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pettrackr/internal/domain/pets"
)

const dateLayout = "2006-01-02"

// RegisterRoutes se monta dentro de /owners/{ownerId}/pets/{petId}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vet-visits", func(vr chi.Router) {
		vr.Get("/", listVisitsHandler(svc))
		vr.Post("/", createVisitHandler(svc))
		vr.Get("/{visitId}", getVisitHandler(svc))
		vr.Patch("/{visitId}", updateVisitHandler(svc))
		vr.Delete("/{visitId}", deleteVisitHandler(svc))
	})
}

type createVisitRequest struct {
	VisitDate      string `json:"visitDate"`     // YYYY-MM-DD
	NextVisitDate  string `json:"nextVisitDate"` // opcional
	VetName        string `json:"vetName"`
	ReasonForVisit string `json:"reasonForVisit"`
	Notes          string `json:"notes"`
}

type updateVisitRequest struct {
	VisitDate      *string         `json:"visitDate"`
	NextVisitDate  json.RawMessage `json:"nextVisitDate"`
	VetName        *string         `json:"vetName"`
	ReasonForVisit *string         `json:"reasonForVisit"`
	Notes          *string         `json:"notes"`
}

type visitResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"petId"`
	VisitDate      string    `json:"visitDate"`
	NextVisitDate  *string   `json:"nextVisitDate"`
	VetName        string    `json:"vetName"`
	ReasonForVisit string    `json:"reasonForVisit"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// listVisitsHandler godoc
// @Summary Listar visitas al veterinario
// @Description La más reciente primero.
// @Tags vet-visits
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 200 {array} visitResponse
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId}/vet-visits [get]
func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		items, err := svc.List(r.Context(), p.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createVisitHandler godoc
// @Summary Registrar visita
// @Tags vet-visits
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param payload body createVisitRequest true "Visita"
// @Success 201 {object} visitResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /owners/{ownerId}/pets/{petId}/vet-visits [post]
func createVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		var req createVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var visit time.Time
		if strings.TrimSpace(req.VisitDate) != "" {
			t, err := time.Parse(dateLayout, req.VisitDate)
			if err != nil {
				http.Error(w, "visitDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			visit = t
		}
		var next *time.Time
		if strings.TrimSpace(req.NextVisitDate) != "" {
			t, err := time.Parse(dateLayout, req.NextVisitDate)
			if err != nil {
				http.Error(w, "nextVisitDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			next = &t
		}

		v, err := svc.Create(r.Context(), p.ID, CreateInput{
			VisitDate:      visit,
			NextVisitDate:  next,
			VetName:        req.VetName,
			ReasonForVisit: req.ReasonForVisit,
			Notes:          req.Notes,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(v))
	}
}

func getVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		v, err := svc.Get(r.Context(), p.ID, chi.URLParam(r, "visitId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

// updateVisitHandler godoc
// @Summary Actualizar visita (PATCH)
// @Tags vet-visits
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param visitId path string true "ID de la visita"
// @Param payload body updateVisitRequest true "Campos a modificar"
// @Success 200 {object} visitResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "vet visit not found"
// @Router /owners/{ownerId}/pets/{petId}/vet-visits/{visitId} [patch]
func updateVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updateVisitRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			VetName:        req.VetName,
			ReasonForVisit: req.ReasonForVisit,
			Notes:          req.Notes,
		}
		if req.VisitDate != nil {
			t, err := time.Parse(dateLayout, *req.VisitDate)
			if err != nil {
				http.Error(w, "visitDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.VisitDate = &t
		}
		next, err := parseOptionalDate(req.NextVisitDate)
		if err != nil {
			http.Error(w, "nextVisitDate must be YYYY-MM-DD or null", http.StatusBadRequest)
			return
		}
		in.NextVisitDate = next

		v, err := svc.Update(r.Context(), p.ID, chi.URLParam(r, "visitId"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(v))
	}
}

// deleteVisitHandler godoc
// @Summary Borrar visita
// @Tags vet-visits
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param visitId path string true "ID de la visita"
// @Success 204
// @Failure 404 {string} string "vet visit not found"
// @Router /owners/{ownerId}/pets/{petId}/vet-visits/{visitId} [delete]
func deleteVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		if err := svc.Delete(r.Context(), p.ID, chi.URLParam(r, "visitId")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseOptionalDate(raw json.RawMessage) (OptionalDate, error) {
	if len(raw) == 0 {
		return OptionalDate{}, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return OptionalDate{Present: true}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return OptionalDate{}, err
	}
	if strings.TrimSpace(s) == "" {
		return OptionalDate{Present: true}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return OptionalDate{}, err
	}
	return OptionalDate{Present: true, Value: &t}, nil
}

func toResponse(v VetVisit) visitResponse {
	out := visitResponse{
		ID:             v.ID,
		PetID:          v.PetID,
		VisitDate:      v.VisitDate.Format(dateLayout),
		VetName:        v.VetName,
		ReasonForVisit: v.ReasonForVisit,
		Notes:          v.Notes,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if v.NextVisitDate != nil {
		s := v.NextVisitDate.Format(dateLayout)
		out.NextVisitDate = &s
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "vet visit not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
