package observability

import (
	"context"
	"net/http"
)

// ReadyCheck reports whether a subsystem is ready; nil means ready.
type ReadyCheck func(ctx context.Context) error

// HealthHandler returns an [http.Handler] for liveness checks at /healthz.
// It always returns HTTP 200 with {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		writeStatus(rw, http.StatusOK)
	})
}

// ReadyHandler returns an [http.Handler] for readiness checks at /readyz.
// It runs all provided checks; if any fail it returns HTTP 503. With no
// checks, or all passing, it returns HTTP 200.
func ReadyHandler(checks ...ReadyCheck) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		for _, check := range checks {
			if err := check(hr.Context()); err != nil {
				writeStatus(rw, http.StatusServiceUnavailable)

				return
			}
		}

		writeStatus(rw, http.StatusOK)
	})
}

func writeStatus(rw http.ResponseWriter, code int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)

	body := `{"status":"ok"}`
	if code != http.StatusOK {
		body = `{"status":"unavailable"}`
	}

	_, _ = rw.Write([]byte(body))
}
