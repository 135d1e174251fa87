package feeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pettrackr/internal/domain/pets"
)

// RegisterRoutes se monta dentro de /owners/{ownerId}/pets/{petId};
// la mascota ya viene validada en el contexto (pets.PetContext).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/feeding-schedules", func(fr chi.Router) {
		fr.Get("/", listSchedulesHandler(svc))
		fr.Post("/", createScheduleHandler(svc))
		fr.Get("/{scheduleId}", getScheduleHandler(svc))
		fr.Patch("/{scheduleId}", updateScheduleHandler(svc))
		fr.Delete("/{scheduleId}", deleteScheduleHandler(svc))
	})
}

type createScheduleRequest struct {
	Time         string  `json:"time"` // HH:MM
	FoodType     string  `json:"foodType"`
	Quantity     float64 `json:"quantity"`
	QuantityUnit string  `json:"quantityUnit"`
}

type updateScheduleRequest struct {
	Time         *string  `json:"time"`
	FoodType     *string  `json:"foodType"`
	Quantity     *float64 `json:"quantity"`
	QuantityUnit *string  `json:"quantityUnit"`
}

type scheduleResponse struct {
	ID           string    `json:"id"`
	PetID        string    `json:"petId"`
	Time         string    `json:"time"`
	FoodType     string    `json:"foodType"`
	Quantity     float64   `json:"quantity"`
	QuantityUnit string    `json:"quantityUnit"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// listSchedulesHandler godoc
// @Summary Listar comidas de una mascota
// @Description Ordenadas por hora ascendente.
// @Tags feeding
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 200 {array} scheduleResponse
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId}/feeding-schedules [get]
func listSchedulesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		items, err := svc.List(r.Context(), p.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]scheduleResponse, 0, len(items))
		for _, sc := range items {
			out = append(out, toResponse(sc))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createScheduleHandler godoc
// @Summary Crear comida
// @Tags feeding
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param payload body createScheduleRequest true "time HH:MM; quantityUnit CUPS|GRAMS|OUNCES|CANS"
// @Success 201 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /owners/{ownerId}/pets/{petId}/feeding-schedules [post]
func createScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		var req createScheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sc, err := svc.Create(r.Context(), p.ID, CreateInput{
			Time:         req.Time,
			FoodType:     req.FoodType,
			Quantity:     req.Quantity,
			QuantityUnit: req.QuantityUnit,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toResponse(sc))
	}
}

func getScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		sc, err := svc.Get(r.Context(), p.ID, chi.URLParam(r, "scheduleId"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sc))
	}
}

// updateScheduleHandler godoc
// @Summary Actualizar comida (PATCH)
// @Tags feeding
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param scheduleId path string true "ID de la comida"
// @Param payload body updateScheduleRequest true "Campos a modificar"
// @Success 200 {object} scheduleResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "feeding schedule not found"
// @Router /owners/{ownerId}/pets/{petId}/feeding-schedules/{scheduleId} [patch]
func updateScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updateScheduleRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sc, err := svc.Update(r.Context(), p.ID, chi.URLParam(r, "scheduleId"), UpdateInput{
			Time:         req.Time,
			FoodType:     req.FoodType,
			Quantity:     req.Quantity,
			QuantityUnit: req.QuantityUnit,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toResponse(sc))
	}
}

// deleteScheduleHandler godoc
// @Summary Borrar comida
// @Tags feeding
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param scheduleId path string true "ID de la comida"
// @Success 204
// @Failure 404 {string} string "feeding schedule not found"
// @Router /owners/{ownerId}/pets/{petId}/feeding-schedules/{scheduleId} [delete]
func deleteScheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := pets.FromContext(r.Context())

		if err := svc.Delete(r.Context(), p.ID, chi.URLParam(r, "scheduleId")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toResponse(sc Schedule) scheduleResponse {
	return scheduleResponse{
		ID:           sc.ID,
		PetID:        sc.PetID,
		Time:         sc.Time,
		FoodType:     sc.FoodType,
		Quantity:     sc.Quantity,
		QuantityUnit: string(sc.QuantityUnit),
		CreatedAt:    sc.CreatedAt,
		UpdatedAt:    sc.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "feeding schedule not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
