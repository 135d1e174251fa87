package router_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pettrackr/internal/config"
	"pettrackr/internal/router"
	"pettrackr/internal/seed"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Upload.Dir = t.TempDir()

	h, err := router.NewRouter(router.Options{Config: cfg})
	require.NoError(t, err)

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

// browser simula un navegador: cookie jar propio por usuario.
type browser struct {
	t    *testing.T
	base string
	http *http.Client
}

func newBrowser(t *testing.T, base string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: base, http: &http.Client{Jar: jar}}
}

func (b *browser) do(method, path string, body any) (int, []byte) {
	b.t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, b.base+path, rdr)
	require.NoError(b.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := b.http.Do(req)
	require.NoError(b.t, err)
	defer res.Body.Close()

	out, _ := io.ReadAll(res.Body)
	return res.StatusCode, out
}

func (b *browser) decode(method, path string, body any, wantStatus int, out any) {
	b.t.Helper()
	st, raw := b.do(method, path, body)
	require.Equalf(b.t, wantStatus, st, "%s %s body=%s", method, path, string(raw))
	if out != nil {
		require.NoError(b.t, json.Unmarshal(raw, out))
	}
}

type idResp struct {
	ID string `json:"id"`
}

func signUp(t *testing.T, b *browser, email string) string {
	t.Helper()
	var owner idResp
	b.decode("POST", "/owners/register", map[string]any{
		"name":     "Ana",
		"email":    email,
		"phone":    "555-0101",
		"password": "supersecret",
	}, http.StatusCreated, &owner)
	require.NotEmpty(t, owner.ID)

	b.decode("POST", "/auth/login", map[string]any{
		"email":    email,
		"password": "supersecret",
	}, http.StatusOK, nil)
	return owner.ID
}

func TestHTTP_EndToEnd_OwnerPetsAgenda(t *testing.T) {
	ts := newServer(t)
	ana := newBrowser(t, ts.URL)

	// 1) sin sesión: /auth/me => 401
	{
		st, _ := ana.do("GET", "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, st)
	}

	ownerID := signUp(t, ana, "ana@example.com")

	// 2) con sesión
	{
		var me idResp
		ana.decode("GET", "/auth/me", nil, http.StatusOK, &me)
		assert.Equal(t, ownerID, me.ID)
	}

	// 3) sin mascotas => []
	{
		st, body := ana.do("GET", "/owners/"+ownerID+"/pets", nil)
		require.Equal(t, http.StatusOK, st)
		assert.JSONEq(t, `[]`, string(body))
	}

	// 4) alta de mascota y registros hijos
	var pet idResp
	ana.decode("POST", "/owners/"+ownerID+"/pets", map[string]any{
		"name":      "Milo",
		"species":   "dog",
		"breed":     "mixed",
		"birthDate": "2020-05-01",
		"weight":    12.5,
	}, http.StatusCreated, &pet)
	petPath := "/owners/" + ownerID + "/pets/" + pet.ID

	ana.decode("POST", petPath+"/feeding-schedules", map[string]any{
		"time": "18:00", "foodType": "kibble", "quantity": 1, "quantityUnit": "CUPS",
	}, http.StatusCreated, nil)
	ana.decode("POST", petPath+"/feeding-schedules", map[string]any{
		"time": "08:00", "foodType": "kibble", "quantity": 1, "quantityUnit": "CUPS",
	}, http.StatusCreated, nil)
	ana.decode("POST", petPath+"/medications", map[string]any{
		"name": "Apoquel", "dosageAmount": 5.4, "dosageUnit": "MG", "frequency": "daily",
		"timeToAdminister": "20:00", "startDate": "2026-01-01",
	}, http.StatusCreated, nil)
	ana.decode("POST", petPath+"/vet-visits", map[string]any{
		"visitDate": "2026-02-10", "vetName": "Dr. Vega", "reasonForVisit": "checkup",
	}, http.StatusCreated, nil)

	// 5) feeding ordenado por hora
	{
		var items []struct {
			Time string `json:"time"`
		}
		ana.decode("GET", petPath+"/feeding-schedules", nil, http.StatusOK, &items)
		require.Len(t, items, 2)
		assert.Equal(t, "08:00", items[0].Time)
		assert.Equal(t, "18:00", items[1].Time)
	}
	{
		var meds []struct {
			TimeToAdminister string  `json:"timeToAdminister"`
			EndDate          *string `json:"endDate"`
		}
		ana.decode("GET", petPath+"/medications", nil, http.StatusOK, &meds)
		require.Len(t, meds, 1)
		assert.Equal(t, "20:00", meds[0].TimeToAdminister)
		assert.Nil(t, meds[0].EndDate)
	}

	// 6) PATCH parcial
	{
		var updated struct {
			Name    string  `json:"name"`
			Species string  `json:"species"`
			Weight  float64 `json:"weight"`
		}
		ana.decode("PATCH", petPath, map[string]any{"weight": 13}, http.StatusOK, &updated)
		assert.Equal(t, "Milo", updated.Name)
		assert.Equal(t, "dog", updated.Species)
		assert.Equal(t, 13.0, updated.Weight)
	}

	// 7) QR
	{
		res, err := ana.http.Get(ts.URL + petPath + "/qr-code")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "image/png", res.Header.Get("Content-Type"))
	}

	// 8) borrar mascota: los hijos desaparecen con ella
	{
		st, _ := ana.do("DELETE", petPath, nil)
		require.Equal(t, http.StatusNoContent, st)

		st, _ = ana.do("GET", petPath+"/feeding-schedules", nil)
		assert.Equal(t, http.StatusNotFound, st)
	}

	// 9) logout => 401 en rutas protegidas
	{
		st, _ := ana.do("POST", "/auth/logout", nil)
		require.Equal(t, http.StatusNoContent, st)

		st, _ = ana.do("GET", "/owners/"+ownerID+"/pets", nil)
		assert.Equal(t, http.StatusUnauthorized, st)
	}
}

func TestHTTP_OtherOwnerIsForbidden(t *testing.T) {
	ts := newServer(t)
	ana := newBrowser(t, ts.URL)
	bob := newBrowser(t, ts.URL)

	anaID := signUp(t, ana, "ana@example.com")
	_ = signUp(t, bob, "bob@example.com")

	var pet idResp
	ana.decode("POST", "/owners/"+anaID+"/pets", map[string]any{
		"name": "Milo", "species": "dog",
	}, http.StatusCreated, &pet)

	st, _ := bob.do("GET", "/owners/"+anaID+"/pets", nil)
	assert.Equal(t, http.StatusForbidden, st)

	st, _ = bob.do("GET", "/owners/"+anaID+"/pets/"+pet.ID+"/medications", nil)
	assert.Equal(t, http.StatusForbidden, st)
}

func TestHTTP_DuplicateEmailAndBadLogin(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts.URL)

	_ = signUp(t, b, "ana@example.com")

	st, _ := b.do("POST", "/owners/register", map[string]any{
		"name": "Otra", "email": "ANA@example.com", "phone": "1", "password": "supersecret",
	})
	assert.Equal(t, http.StatusConflict, st)

	st, _ = b.do("POST", "/auth/login", map[string]any{
		"email": "ana@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_DeleteOwnerEndsSession(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts.URL)
	ownerID := signUp(t, b, "ana@example.com")

	b.decode("POST", "/owners/"+ownerID+"/pets", map[string]any{
		"name": "Milo", "species": "dog",
	}, http.StatusCreated, nil)

	st, _ := b.do("DELETE", "/owners/"+ownerID, nil)
	require.Equal(t, http.StatusNoContent, st)

	// la cookie sigue en el jar pero el owner ya no existe
	st, _ = b.do("GET", "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_PhotoUploadIsServed(t *testing.T) {
	ts := newServer(t)
	b := newBrowser(t, ts.URL)
	ownerID := signUp(t, b, "ana@example.com")

	var pet idResp
	b.decode("POST", "/owners/"+ownerID+"/pets", map[string]any{
		"name": "Milo", "species": "dog",
	}, http.StatusCreated, &pet)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{255, 0, 0, 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "milo.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", ts.URL+"/owners/"+ownerID+"/pets/"+pet.ID+"/photo", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := b.http.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated struct {
		PhotoURL string `json:"photoUrl"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	require.NotEmpty(t, updated.PhotoURL)

	photo, err := http.Get(ts.URL + updated.PhotoURL)
	require.NoError(t, err)
	defer photo.Body.Close()
	assert.Equal(t, http.StatusOK, photo.StatusCode)
	assert.Equal(t, "image/jpeg", photo.Header.Get("Content-Type"))
}

func TestHTTP_SeedCreatesDemoAccounts(t *testing.T) {
	cfg := config.Default()
	cfg.Upload.Dir = t.TempDir()
	h, err := router.NewRouter(router.Options{Config: cfg, Seed: true})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	john := newBrowser(t, ts.URL)
	var me idResp
	john.decode("POST", "/auth/login", map[string]any{
		"email":    "john.smith@example.com",
		"password": seed.DemoPassword,
	}, http.StatusOK, &me)

	var list []idResp
	john.decode("GET", "/owners/"+me.ID+"/pets", nil, http.StatusOK, &list)
	assert.Len(t, list, 2)
}

func TestHTTP_Health(t *testing.T) {
	ts := newServer(t)
	res, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
