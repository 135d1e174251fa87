package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_DecodesAndSendsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Milo"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "pets", nil, map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Milo", out.Name)
}

func TestDoJSON_NonSuccessReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	err = c.DoJSON(context.Background(), http.MethodGet, "/auth/me", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))

	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "nope", he.Body)
}

func TestCookieJar_CarriesSessionCookie(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "sid", Value: "abc", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
		default:
			ck, err := r.Cookie("sid")
			if err != nil || ck.Value != "abc" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)
	_, err = c.WithCookieJar()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.DoJSON(ctx, http.MethodPost, "/login", nil, nil, nil))
	require.NoError(t, c.DoJSON(ctx, http.MethodGet, "/me", nil, nil, nil))

	c.ClearCookies()
	err = c.DoJSON(ctx, http.MethodGet, "/me", nil, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
}

func TestResolveURL_RelativeWithoutBase(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/pets")
	assert.Error(t, err)

	u, err := c.resolveURL("http://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/x", u)
}
