package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/iho/finances/internal/usecase"
)

// IdempotencyKeyHeader is the header clients send to deduplicate
// mutating requests.
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	idempotencyTTL   = 24 * time.Hour
	processingMarker = "processing"
	replayHeader     = "X-Idempotency-Replay"
)

// IdempotencyMiddleware replays cached responses for repeated keyed
// requests so retried POSTs and PUTs apply once.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" || !isMutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		seen, cached, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if seen && cached != nil && string(cached) != processingMarker {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(replayHeader, "true")
			w.Write(cached)
			return
		}

		rec := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(rec, r)

		// Only successful responses are worth replaying; a failed
		// request should be retryable with the same key.
		if rec.statusCode >= 200 && rec.statusCode < 300 {
			m.store.Update(r.Context(), key, rec.body.Bytes(), idempotencyTTL)
		}
	})
}

func isMutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

type responseRecorder struct {
	http.ResponseWriter

	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
