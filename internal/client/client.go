package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"pettrackr/internal/platform/httpclient"
)

// Client habla con el API de PetTrackr. La cookie de sesión la maneja el
// cookie jar; el cliente nunca la lee.
type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if hc.BaseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrBadRequest)
	}
	if _, err := hc.WithCookieJar(); err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	return mapError(c.http.DoJSON(ctx, method, path, nil, in, out))
}

func ownerPath(ownerID string) string {
	return "/owners/" + url.PathEscape(ownerID)
}

func petPath(ownerID, petID string) string {
	return ownerPath(ownerID) + "/pets/" + url.PathEscape(petID)
}

// ---- auth ----

func (c *Client) Register(ctx context.Context, in RegisterInput) (Owner, error) {
	var out Owner
	err := c.doJSON(ctx, http.MethodPost, "/owners/register", in, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (Owner, error) {
	if err := required("email", email); err != nil {
		return Owner{}, err
	}
	if err := required("password", password); err != nil {
		return Owner{}, err
	}
	var out Owner
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Logout borra la cookie local aunque el server falle.
func (c *Client) Logout(ctx context.Context) error {
	defer c.http.ClearCookies()
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (Owner, error) {
	var out Owner
	err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out)
	return out, err
}

// ---- owner ----

func (c *Client) GetOwner(ctx context.Context, ownerID string) (Owner, error) {
	if err := required("ownerId", ownerID); err != nil {
		return Owner{}, err
	}
	var out Owner
	err := c.doJSON(ctx, http.MethodGet, ownerPath(ownerID), nil, &out)
	return out, err
}

func (c *Client) UpdateOwner(ctx context.Context, ownerID string, patch OwnerPatch) (Owner, error) {
	if err := required("ownerId", ownerID); err != nil {
		return Owner{}, err
	}
	var out Owner
	err := c.doJSON(ctx, http.MethodPatch, ownerPath(ownerID), patch, &out)
	return out, err
}

func (c *Client) DeleteOwner(ctx context.Context, ownerID string) error {
	if err := required("ownerId", ownerID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, ownerPath(ownerID), nil, nil)
}

// ---- pets ----

func (c *Client) ListPets(ctx context.Context, ownerID string) ([]Pet, error) {
	if err := required("ownerId", ownerID); err != nil {
		return nil, err
	}
	var out []Pet
	if err := c.doJSON(ctx, http.MethodGet, ownerPath(ownerID)+"/pets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPet(ctx context.Context, ownerID, petID string) (Pet, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return Pet{}, err
	}
	var out Pet
	err := c.doJSON(ctx, http.MethodGet, petPath(ownerID, petID), nil, &out)
	return out, err
}

func (c *Client) CreatePet(ctx context.Context, ownerID string, in PetInput) (Pet, error) {
	if err := required("ownerId", ownerID); err != nil {
		return Pet{}, err
	}
	if err := required("name", in.Name); err != nil {
		return Pet{}, err
	}
	var out Pet
	err := c.doJSON(ctx, http.MethodPost, ownerPath(ownerID)+"/pets", in, &out)
	return out, err
}

func (c *Client) UpdatePet(ctx context.Context, ownerID, petID string, patch PetPatch) (Pet, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return Pet{}, err
	}
	var out Pet
	err := c.doJSON(ctx, http.MethodPatch, petPath(ownerID, petID), patch, &out)
	return out, err
}

func (c *Client) DeletePet(ctx context.Context, ownerID, petID string) error {
	if err := requirePet(ownerID, petID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, petPath(ownerID, petID), nil, nil)
}

// UploadPetPhoto manda la imagen como multipart "file".
func (c *Client) UploadPetPhoto(ctx context.Context, ownerID, petID, filename string, r io.Reader) (Pet, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return Pet{}, err
	}
	if filename == "" {
		filename = "photo"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Pet{}, err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return Pet{}, err
	}
	if err := mw.Close(); err != nil {
		return Pet{}, err
	}

	res, err := c.http.Do(ctx, http.MethodPost, petPath(ownerID, petID)+"/photo",
		map[string]string{"Accept": "application/json"}, &body, mw.FormDataContentType())
	if err != nil {
		return Pet{}, mapError(err)
	}

	var out Pet
	if err := decodeJSON(res.Body, &out); err != nil {
		return Pet{}, err
	}
	return out, nil
}

// PetQRCode devuelve el PNG tal cual lo genera el server.
func (c *Client) PetQRCode(ctx context.Context, ownerID, petID string) ([]byte, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return nil, err
	}
	res, err := c.http.Do(ctx, http.MethodGet, petPath(ownerID, petID)+"/qr-code",
		map[string]string{"Accept": "image/png"}, nil, "")
	if err != nil {
		return nil, mapError(err)
	}
	return res.Body, nil
}

// ---- feeding ----

func (c *Client) ListFeedingSchedules(ctx context.Context, ownerID, petID string) ([]FeedingSchedule, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return nil, err
	}
	var out []FeedingSchedule
	if err := c.doJSON(ctx, http.MethodGet, petPath(ownerID, petID)+"/feeding-schedules", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFeedingSchedule(ctx context.Context, ownerID, petID string, in FeedingInput) (FeedingSchedule, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return FeedingSchedule{}, err
	}
	var out FeedingSchedule
	err := c.doJSON(ctx, http.MethodPost, petPath(ownerID, petID)+"/feeding-schedules", in, &out)
	return out, err
}

func (c *Client) UpdateFeedingSchedule(ctx context.Context, ownerID, petID, scheduleID string, patch FeedingPatch) (FeedingSchedule, error) {
	if err := requireChild(ownerID, petID, "scheduleId", scheduleID); err != nil {
		return FeedingSchedule{}, err
	}
	var out FeedingSchedule
	err := c.doJSON(ctx, http.MethodPatch, petPath(ownerID, petID)+"/feeding-schedules/"+url.PathEscape(scheduleID), patch, &out)
	return out, err
}

func (c *Client) DeleteFeedingSchedule(ctx context.Context, ownerID, petID, scheduleID string) error {
	if err := requireChild(ownerID, petID, "scheduleId", scheduleID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, petPath(ownerID, petID)+"/feeding-schedules/"+url.PathEscape(scheduleID), nil, nil)
}

// ---- medications ----

func (c *Client) ListMedications(ctx context.Context, ownerID, petID string) ([]Medication, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return nil, err
	}
	var out []Medication
	if err := c.doJSON(ctx, http.MethodGet, petPath(ownerID, petID)+"/medications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateMedication(ctx context.Context, ownerID, petID string, in MedicationInput) (Medication, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return Medication{}, err
	}
	var out Medication
	err := c.doJSON(ctx, http.MethodPost, petPath(ownerID, petID)+"/medications", in, &out)
	return out, err
}

func (c *Client) UpdateMedication(ctx context.Context, ownerID, petID, medicationID string, patch MedicationPatch) (Medication, error) {
	if err := requireChild(ownerID, petID, "medicationId", medicationID); err != nil {
		return Medication{}, err
	}
	var out Medication
	err := c.doJSON(ctx, http.MethodPatch, petPath(ownerID, petID)+"/medications/"+url.PathEscape(medicationID), patch, &out)
	return out, err
}

func (c *Client) DeleteMedication(ctx context.Context, ownerID, petID, medicationID string) error {
	if err := requireChild(ownerID, petID, "medicationId", medicationID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, petPath(ownerID, petID)+"/medications/"+url.PathEscape(medicationID), nil, nil)
}

// ---- vet visits ----

func (c *Client) ListVetVisits(ctx context.Context, ownerID, petID string) ([]VetVisit, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return nil, err
	}
	var out []VetVisit
	if err := c.doJSON(ctx, http.MethodGet, petPath(ownerID, petID)+"/vet-visits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVetVisit(ctx context.Context, ownerID, petID string, in VetVisitInput) (VetVisit, error) {
	if err := requirePet(ownerID, petID); err != nil {
		return VetVisit{}, err
	}
	var out VetVisit
	err := c.doJSON(ctx, http.MethodPost, petPath(ownerID, petID)+"/vet-visits", in, &out)
	return out, err
}

func (c *Client) UpdateVetVisit(ctx context.Context, ownerID, petID, visitID string, patch VetVisitPatch) (VetVisit, error) {
	if err := requireChild(ownerID, petID, "visitId", visitID); err != nil {
		return VetVisit{}, err
	}
	var out VetVisit
	err := c.doJSON(ctx, http.MethodPatch, petPath(ownerID, petID)+"/vet-visits/"+url.PathEscape(visitID), patch, &out)
	return out, err
}

func (c *Client) DeleteVetVisit(ctx context.Context, ownerID, petID, visitID string) error {
	if err := requireChild(ownerID, petID, "visitId", visitID); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, petPath(ownerID, petID)+"/vet-visits/"+url.PathEscape(visitID), nil, nil)
}

func requirePet(ownerID, petID string) error {
	if err := required("ownerId", ownerID); err != nil {
		return err
	}
	return required("petId", petID)
}

func requireChild(ownerID, petID, name, id string) error {
	if err := requirePet(ownerID, petID); err != nil {
		return err
	}
	return required(name, id)
}

func decodeJSON(raw []byte, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: unmarshal json: %w", err)
	}
	return nil
}
