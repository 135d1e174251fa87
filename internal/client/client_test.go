package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/client"
	"pettrackr/internal/config"
	"pettrackr/internal/platform/httpclient"
	"pettrackr/internal/router"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Upload.Dir = t.TempDir()
	h, err := router.NewRouter(router.Options{Config: cfg})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, url string) *client.Client {
	t.Helper()
	c, err := client.New(url, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestClient_FullFlowAgainstAPI(t *testing.T) {
	ctx := context.Background()
	ts := newAPI(t)
	c := newClient(t, ts.URL)

	_, err := c.Me(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	owner, err := c.Register(ctx, client.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "555", Password: "supersecret",
	})
	require.NoError(t, err)

	_, err = c.Register(ctx, client.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "555", Password: "supersecret",
	})
	require.ErrorIs(t, err, client.ErrConflict)

	logged, err := c.Login(ctx, "ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, logged.ID)

	pets, err := c.ListPets(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, pets)

	pet, err := c.CreatePet(ctx, owner.ID, client.PetInput{Name: "Milo", Species: "dog", Weight: 10})
	require.NoError(t, err)
	assert.Equal(t, "KG", pet.WeightUnit)

	weight := 11.0
	pet, err = c.UpdatePet(ctx, owner.ID, pet.ID, client.PetPatch{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 11.0, pet.Weight)

	fs, err := c.CreateFeedingSchedule(ctx, owner.ID, pet.ID, client.FeedingInput{
		Time: "8:05", FoodType: "kibble", Quantity: 1, QuantityUnit: "CUPS",
	})
	require.Error(t, err, "hora sin cero a la izquierda no es HH:MM")
	assert.ErrorIs(t, err, client.ErrBadRequest)

	fs, err = c.CreateFeedingSchedule(ctx, owner.ID, pet.ID, client.FeedingInput{
		Time: "08:05", FoodType: "kibble", Quantity: 1, QuantityUnit: "CUPS",
	})
	require.NoError(t, err)

	med, err := c.CreateMedication(ctx, owner.ID, pet.ID, client.MedicationInput{
		Name: "Apoquel", DosageAmount: 5, DosageUnit: "MG", Frequency: "daily",
		TimeToAdminister: "20:00", StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, med.EndDate)

	end := "2026-02-01"
	med, err = c.UpdateMedication(ctx, owner.ID, pet.ID, med.ID, client.MedicationPatch{EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, med.EndDate)
	assert.Equal(t, end, *med.EndDate)

	visit, err := c.CreateVetVisit(ctx, owner.ID, pet.ID, client.VetVisitInput{
		VisitDate: "2026-03-01", VetName: "Dr. Vega", ReasonForVisit: "checkup",
	})
	require.NoError(t, err)

	visits, err := c.ListVetVisits(ctx, owner.ID, pet.ID)
	require.NoError(t, err)
	require.Len(t, visits, 1)

	png, err := c.PetQRCode(ctx, owner.ID, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	require.NoError(t, c.DeleteFeedingSchedule(ctx, owner.ID, pet.ID, fs.ID))
	require.NoError(t, c.DeleteVetVisit(ctx, owner.ID, pet.ID, visit.ID))
	require.NoError(t, c.DeleteMedication(ctx, owner.ID, pet.ID, med.ID))

	feed, err := c.ListFeedingSchedules(ctx, owner.ID, pet.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)

	require.NoError(t, c.DeletePet(ctx, owner.ID, pet.ID))
	_, err = c.GetPet(ctx, owner.ID, pet.ID)
	require.ErrorIs(t, err, client.ErrNotFound)

	_, err = c.GetOwner(ctx, "someone-else")
	require.ErrorIs(t, err, client.ErrForbidden)

	require.NoError(t, c.Logout(ctx))
	_, err = c.ListPets(ctx, owner.ID)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestClient_ErrorMappingKeepsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/owners/o1/pets":
			http.Error(w, "owner not found", http.StatusNotFound)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c := newClient(t, ts.URL)

	_, err := c.ListPets(context.Background(), "o1")
	require.ErrorIs(t, err, client.ErrNotFound)
	var he *httpclient.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "owner not found", he.Body)

	_, err = c.ListFeedingSchedules(context.Background(), "o1", "p1")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, httpclient.StatusCode(err))
	assert.False(t, errors.Is(err, client.ErrNotFound))
}

func TestClient_RequiredFields(t *testing.T) {
	c := newClient(t, "http://127.0.0.1:1")

	_, err := c.ListPets(context.Background(), "")
	assert.ErrorIs(t, err, client.ErrBadRequest)

	_, err = c.ListMedications(context.Background(), "o1", "")
	assert.ErrorIs(t, err, client.ErrBadRequest)

	_, err = c.Login(context.Background(), "", "x")
	assert.ErrorIs(t, err, client.ErrBadRequest)
}

func TestClient_RequiresBaseURL(t *testing.T) {
	_, err := client.New("", time.Second)
	require.Error(t, err)
}
