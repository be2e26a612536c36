package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 5 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:        pool,
		redisClient: redisClient,
	}
}

// Liveness returns 200 while the process is running.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness returns 200 only when every backing store answers a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	checks := []struct {
		name string
		ping func(context.Context) error
	}{
		{"postgres", func(ctx context.Context) error { return h.pool.Ping(ctx) }},
		{"redis", func(ctx context.Context) error { return h.redisClient.Ping(ctx).Err() }},
	}

	status := map[string]string{"status": "ready"}
	for _, c := range checks {
		if err := c.ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, c.name+" unhealthy", err.Error())
			return
		}
		status[c.name] = "ok"
	}

	writeJSON(w, http.StatusOK, status)
}
