package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/client"
	"pettrackr/internal/config"
	"pettrackr/internal/dashboard"
	"pettrackr/internal/platform/lifecycle"
	"pettrackr/internal/router"
	"pettrackr/internal/session"
)

func seededAPI(t *testing.T) string {
	t.Helper()
	cfg := config.Default()
	cfg.Upload.Dir = t.TempDir()
	h, err := router.NewRouter(router.Options{Config: cfg})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	ctx := context.Background()
	c, err := client.New(ts.URL, 5*time.Second)
	require.NoError(t, err)

	owner, err := c.Register(ctx, client.RegisterInput{
		Name: "Ana", Email: "ana@example.com", Phone: "555", Password: "supersecret",
	})
	require.NoError(t, err)
	_, err = c.Login(ctx, "ana@example.com", "supersecret")
	require.NoError(t, err)

	pet, err := c.CreatePet(ctx, owner.ID, client.PetInput{Name: "Milo", Species: "dog"})
	require.NoError(t, err)
	_, err = c.CreateFeedingSchedule(ctx, owner.ID, pet.ID, client.FeedingInput{
		Time: "08:00", FoodType: "kibble", Quantity: 1, QuantityUnit: "CUPS",
	})
	require.NoError(t, err)
	_, err = c.CreateMedication(ctx, owner.ID, pet.ID, client.MedicationInput{
		Name: "Apoquel", DosageAmount: 5, DosageUnit: "MG", Frequency: "daily",
		TimeToAdminister: "07:00", StartDate: "2026-01-01",
	})
	require.NoError(t, err)
	return ts.URL
}

func TestRun_PrintsAgenda(t *testing.T) {
	url := seededAPI(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-url", url, "-email", "ana@example.com", "-password", "supersecret"}, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "TIME")
	assert.Contains(t, lines[1], "07:00")
	assert.Contains(t, lines[1], "Apoquel 5 MG (daily)")
	assert.Contains(t, lines[2], "08:00")
	assert.Contains(t, lines[2], "1 CUPS kibble")
}

func TestRun_BadCredentialsExitsWithSessionCode(t *testing.T) {
	url := seededAPI(t)

	var out, errOut bytes.Buffer
	code := run([]string{"-url", url, "-email", "ana@example.com", "-password", "nope-nope"}, &out, &errOut)
	assert.Equal(t, exitSessionExpired, code)
	assert.Empty(t, out.String())
}

func TestRun_ServerDownExitsWithError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"-url", "http://127.0.0.1:1", "-email", "a@b.c", "-password", "x"}, &out, &errOut)
	assert.Equal(t, exitError, code)
}

func TestPrintAgenda_EmptyStates(t *testing.T) {
	var buf bytes.Buffer
	printAgenda(&buf, dashboard.Dashboard{})
	assert.Equal(t, "No pets registered yet.\n", buf.String())

	buf.Reset()
	printAgenda(&buf, dashboard.Dashboard{Pets: []client.Pet{{ID: "p1"}}})
	assert.Equal(t, "Nothing scheduled for today.\n", buf.String())
}

type recordingAuth struct{ order *[]string }

func (a recordingAuth) Me(context.Context) (client.Owner, error) {
	return client.Owner{ID: "o1"}, nil
}
func (a recordingAuth) Login(context.Context, string, string) (client.Owner, error) {
	return client.Owner{ID: "o1"}, nil
}
func (a recordingAuth) Logout(context.Context) error {
	*a.order = append(*a.order, "logout")
	return nil
}

func TestRegisterShutdown_StopsRemindersBeforeLogout(t *testing.T) {
	var order []string
	sess := session.New(recordingAuth{order: &order})
	require.NoError(t, sess.Init(context.Background()))

	lc := lifecycle.New(time.Second, nil)
	registerShutdown(lc, sess, func(context.Context) error {
		order = append(order, "reminders")
		// un tick en curso todavía tiene sesión
		assert.Equal(t, session.StateAuthenticated, sess.State())
		return nil
	})

	require.NoError(t, lc.Shutdown(context.Background()))
	assert.Equal(t, []string{"reminders", "logout"}, order)
	assert.Equal(t, session.StateUnauthenticated, sess.State())
}
