package medications

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

var errBadDate = errors.New("dates must be YYYY-MM-DD")

// RegisterRoutes se monta dentro de /owners/{ownerId}/pets/{petId}.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Post("/", createMedicationHandler(svc))
		mr.Get("/{medicationId}", getMedicationHandler(svc))
		mr.Patch("/{medicationId}", updateMedicationHandler(svc))
		mr.Delete("/{medicationId}", deleteMedicationHandler(svc))
	})
}

type createMedicationRequest struct {
	Name             string  `json:"name"`
	DosageAmount     float64 `json:"dosageAmount"`
	DosageUnit       string  `json:"dosageUnit"`
	Frequency        string  `json:"frequency"`
	TimeToAdminister string  `json:"timeToAdminister"` // HH:MM
	StartDate        string  `json:"startDate"`        // YYYY-MM-DD
	EndDate          string  `json:"endDate"`          // opcional
}

type updateMedicationRequest struct {
	Name             *string         `json:"name"`
	DosageAmount     *float64        `json:"dosageAmount"`
	DosageUnit       *string         `json:"dosageUnit"`
	Frequency        *string         `json:"frequency"`
	TimeToAdminister *string         `json:"timeToAdminister"`
	StartDate        *string         `json:"startDate"`
	EndDate          json.RawMessage `json:"endDate"` // null = en curso
}

type medicationResponse struct {
	ID               string    `json:"id"`
	PetID            string    `json:"petId"`
	Name             string    `json:"name"`
	DosageAmount     float64   `json:"dosageAmount"`
	DosageUnit       string    `json:"dosageUnit"`
	Frequency        string    `json:"frequency"`
	TimeToAdminister string    `json:"timeToAdminister"`
	StartDate        string    `json:"startDate"`
	EndDate          *string   `json:"endDate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// listMedicationsHandler godoc
// @Summary Listar medicaciones de una mascota
// @Tags medications
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 200 {array} medicationResponse
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId}/medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		items, err := svc.List(r.Context(), p.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Crear medicación
// @Tags medications
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param payload body createMedicationRequest true "Medicación; endDate vacío = en curso"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /owners/{ownerId}/pets/{petId}/medications [post]
func createMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var start time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := time.Parse(dateLayout, req.StartDate)
			if err != nil {
				http.Error(w, errBadDate.Error(), http.StatusBadRequest)
				return
			}
			start = t
		}
		var end *time.Time
		if strings.TrimSpace(req.EndDate) != "" {
			t, err := time.Parse(dateLayout, req.EndDate)
			if err != nil {
				http.Error(w, errBadDate.Error(), http.StatusBadRequest)
				return
			}
			end = &t
		}

		m, err := svc.Create(r.Context(), p.ID, CreateInput{
			Name:             req.Name,
			DosageAmount:     req.DosageAmount,
			DosageUnit:       req.DosageUnit,
			Frequency:        req.Frequency,
			TimeToAdminister: req.TimeToAdminister,
			StartDate:        start,
			EndDate:          end,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(m))
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		m, err := svc.Get(r.Context(), p.ID, chi.URLParam(r, "medicationId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicación (PATCH)
// @Description "endDate": null marca el tratamiento como en curso.
// @Tags medications
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param medicationId path string true "ID de la medicación"
// @Param payload body updateMedicationRequest true "Campos a modificar"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "medication not found"
// @Router /owners/{ownerId}/pets/{petId}/medications/{medicationId} [patch]
func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updateMedicationRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:             req.Name,
			DosageAmount:     req.DosageAmount,
			DosageUnit:       req.DosageUnit,
			Frequency:        req.Frequency,
			TimeToAdminister: req.TimeToAdminister,
		}
		if req.StartDate != nil {
			t, err := time.Parse(dateLayout, *req.StartDate)
			if err != nil {
				http.Error(w, errBadDate.Error(), http.StatusBadRequest)
				return
			}
			in.StartDate = &t
		}
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			http.Error(w, errBadDate.Error(), http.StatusBadRequest)
			return
		}
		in.EndDate = end

		m, err := svc.Update(r.Context(), p.ID, chi.URLParam(r, "medicationId"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(m))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicación
// @Tags medications
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param medicationId path string true "ID de la medicación"
// @Success 204
// @Failure 404 {string} string "medication not found"
// @Router /owners/{ownerId}/pets/{petId}/medications/{medicationId} [delete]
func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		if err := svc.Delete(r.Context(), p.ID, chi.URLParam(r, "medicationId")); err != nil {
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

func toResponse(m Medication) medicationResponse {
	out := medicationResponse{
		ID:               m.ID,
		PetID:            m.PetID,
		Name:             m.Name,
		DosageAmount:     m.DosageAmount,
		DosageUnit:       string(m.DosageUnit),
		Frequency:        m.Frequency,
		TimeToAdminister: m.TimeToAdminister,
		StartDate:        m.StartDate.Format(dateLayout),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.EndDate != nil {
		s := m.EndDate.Format(dateLayout)
		out.EndDate = &s
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
