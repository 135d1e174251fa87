package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestIDHeader = "X-Request-Id"

// RequestID usa chimw.RequestID para generar/propagar el id y además lo devuelve
// en la respuesta, así el cliente puede citarlo al reportar un error.
func RequestID(next http.Handler) http.Handler {
	return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(requestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	}))
}

func RequestIDFrom(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
