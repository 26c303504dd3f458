package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"go-clinic-scheduling/pkg/response"

	"github.com/sirupsen/logrus"
)

const readinessTimeout = 2 * time.Second

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	log    *logrus.Logger
	checks map[string]HealthCheck
}

func NewHealthHandler(log *logrus.Logger, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{log: log, checks: checks}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

// Ready runs every check and answers 503 if any fails
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.log.Warnf("Readiness check %s failed: %+v", name, err)
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "up"
	}

	if !healthy {
		response.Error(w, http.StatusServiceUnavailable, "not ready", status)
		return
	}
	response.Success(w, http.StatusOK, "ready", status)
}
