package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/lingopath/backend/pkg/ctxutil"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a correlation ID. A client-supplied
// X-Request-Id is kept; otherwise a fresh UUID is generated. The ID is
// echoed in the response header and stored in the context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
