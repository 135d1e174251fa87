package pets

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

// RegisterRoutes se monta dentro de /owners/{ownerId} (ya con RequireAuth + RequireOwner).
// children cuelgan de /pets/{petId} con la mascota ya resuelta en el contexto.
func RegisterRoutes(r chi.Router, svc *Service, maxPhotoBytes int64, children ...func(chi.Router)) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Route("/{petId}", func(one chi.Router) {
			one.Use(PetContext(svc))

			one.Get("/", getPetHandler())
			one.Patch("/", updatePetHandler(svc))
			one.Delete("/", deletePetHandler(svc))
			one.Post("/photo", uploadPhotoHandler(svc, maxPhotoBytes))
			one.Get("/qr-code", qrCodeHandler(svc))

			for _, mount := range children {
				mount(one)
			}
		})
	})
}

type createPetRequest struct {
	Name          string  `json:"name"`
	Species       string  `json:"species"`
	Breed         string  `json:"breed"`
	BirthDate     string  `json:"birthDate"` // YYYY-MM-DD opcional
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit"`
	ActivityLevel string  `json:"activityLevel"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar. birthDate se trata aparte (admite null).
	Name          *string         `json:"name"`
	Species       *string         `json:"species"`
	Breed         *string         `json:"breed"`
	BirthDate     json.RawMessage `json:"birthDate"`
	Weight        *float64        `json:"weight"`
	WeightUnit    *string         `json:"weightUnit"`
	ActivityLevel *string         `json:"activityLevel"`
}

type petResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Name          string    `json:"name"`
	Species       string    `json:"species"`
	Breed         string    `json:"breed"`
	BirthDate     *string   `json:"birthDate,omitempty"`
	Weight        float64   `json:"weight"`
	WeightUnit    string    `json:"weightUnit"`
	ActivityLevel string    `json:"activityLevel"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// listPetsHandler godoc
// @Summary Listar mascotas del owner
// @Description 404 si el owner no existe; 200 con [] si no tiene mascotas.
// @Tags pets
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Success 200 {array} petResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "owner not found"
// @Router /owners/{ownerId}/pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), chi.URLParam(r, "ownerId"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Tags pets
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Router /owners/{ownerId}/pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(dateLayout, req.BirthDate)
			if err != nil {
				http.Error(w, "birthDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), chi.URLParam(r, "ownerId"), CreateInput{
			Name:          req.Name,
			Species:       req.Species,
			Breed:         req.Breed,
			BirthDate:     bd,
			Weight:        req.Weight,
			WeightUnit:    req.WeightUnit,
			ActivityLevel: req.ActivityLevel,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Perfil de mascota
// @Tags pets
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId} [get]
func getPetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota (PATCH)
// @Description Solo se modifican los campos presentes. "birthDate": null limpia la fecha.
// @Tags pets
// @Accept json
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de negocio"
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bd, err := parseOptionalDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birthDate must be YYYY-MM-DD or null", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), p.OwnerID, p.ID, UpdateInput{
			Name:          req.Name,
			Species:       req.Species,
			Breed:         req.Breed,
			BirthDate:     bd,
			Weight:        req.Weight,
			WeightUnit:    req.WeightUnit,
			ActivityLevel: req.ActivityLevel,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Borrar mascota
// @Description Borra la mascota con sus comidas, medicaciones, visitas y foto.
// @Tags pets
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 204
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())
		if err := svc.Delete(r.Context(), p.OwnerID, p.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadPhotoHandler godoc
// @Summary Subir foto de mascota
// @Description multipart/form-data, campo "file". JPEG o PNG, hasta 5MB. Se guarda como JPEG de 1024px máx.
// @Tags pets
// @Accept multipart/form-data
// @Produce json
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Param file formData file true "Imagen"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "formato no soportado / falta file"
// @Failure 413 {string} string "file too large"
// @Router /owners/{ownerId}/pets/{petId}/photo [post]
func uploadPhotoHandler(svc *Service, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())

		// margen para los headers del multipart
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+64<<10)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > maxBytes {
			http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
			return
		}

		updated, err := svc.SetPhoto(r.Context(), p.OwnerID, p.ID, file)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// qrCodeHandler godoc
// @Summary QR de mascota perdida
// @Description PNG 300x300 con nombre, especie y raza de la mascota y el contacto del owner.
// @Tags pets
// @Produce png
// @Param ownerId path string true "ID del owner"
// @Param petId path string true "ID de la mascota"
// @Success 200 {file} binary
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerId}/pets/{petId}/qr-code [get]
func qrCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, _ := FromContext(r.Context())

		png, err := svc.QRCode(r.Context(), p.OwnerID, p.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="pet-`+p.ID+`-qr.png"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}

// parseOptionalDate: RawMessage vacío = campo ausente; "null" = limpiar la fecha.
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

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		Species:       p.Species,
		Breed:         p.Breed,
		Weight:        p.Weight,
		WeightUnit:    string(p.WeightUnit),
		ActivityLevel: string(p.ActivityLevel),
		PhotoURL:      p.PhotoURL,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.BirthDate != nil {
		s := p.BirthDate.Format(dateLayout)
		out.BirthDate = &s
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrOwnerNotFound):
		http.Error(w, "owner not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en cada módulo (owners, pets, feeding...) a propósito.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
