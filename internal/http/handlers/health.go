package handlers

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker is anything that can report whether a dependency is reachable
type HealthChecker interface {
	Check(ctx context.Context) error
}

type checkStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]checkStatus `json:"checks"`
}

// Health runs every checker and answers 503 if any of them fails
func Health(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := healthStatus{
			Status:    "healthy",
			Timestamp: time.Now(),
			Checks:    make(map[string]checkStatus, len(checkers)),
		}
		for name, c := range checkers {
			if err := c.Check(ctx); err != nil {
				health.Status = "unhealthy"
				health.Checks[name] = checkStatus{Status: "unhealthy", Message: err.Error()}
				continue
			}
			health.Checks[name] = checkStatus{Status: "healthy"}
		}

		status := http.StatusOK
		if health.Status != "healthy" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, health)
	}
}
