// Package http provides the liveness, readiness and version endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"ghappkit/internal/adapters/github"
	"ghappkit/internal/core/version"
	phttp "ghappkit/internal/platform/net/http"
)

// Prober checks that the GitHub credentials are usable
type Prober interface {
	Check(stdctx.Context) github.ProbeResult
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Probe is optional; readiness reports the check as skipped without it
	Probe Prober
	// ProbeTimeout bounds one readiness check, 2s when zero
	ProbeTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the health routes
func Register(r phttp.Router, d Deps) {
	if d.ProbeTimeout <= 0 {
		d.ProbeTimeout = 2 * time.Second
	}
	h := &handlers{deps: d}

	phttp.GetJSON(r, "/live", h.live)
	r.Get("/ready", phttp.Handle(h.ready))
	phttp.GetJSON(r, "/version", h.version)
}

// LiveResponse is the liveness payload
type LiveResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name      string `json:"name"`
	Status    string `json:"status"` // ok degraded fail skipped
	Remaining int    `json:"remaining,omitempty"`
	Reset     string `json:"reset,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// @Summary Liveness probe
// @Tags Meta
// @Produce json
// @Success 200 {object} LiveResponse "ok"
// @Router /meta/live [get]
func (h *handlers) live(_ *http.Request) (any, error) {
	return LiveResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// ready answers 503 when the credentials are rejected or GitHub is unreachable
//
// @Summary Readiness probe with the GitHub credential check
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok or degraded"
// @Failure 503 {object} ReadyResponse "credentials rejected or GitHub unreachable"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) phttp.Response {
	check := ReadyCheck{Name: "github", Status: "skipped"}
	if h.deps.Probe != nil {
		ctx, cancel := stdctx.WithTimeout(r.Context(), h.deps.ProbeTimeout)
		res := h.deps.Probe.Check(ctx)
		cancel()
		check = ReadyCheck{Name: "github", Status: res.Status, Remaining: res.Remaining, Error: res.Error}
		if !res.Reset.IsZero() {
			check.Reset = res.Reset.UTC().Format(time.RFC3339)
		}
	}

	overall := github.StatusOK
	switch check.Status {
	case github.StatusFail:
		overall = github.StatusFail
	case github.StatusDegraded:
		overall = github.StatusDegraded
	}

	status := http.StatusOK
	if overall == github.StatusFail {
		status = http.StatusServiceUnavailable
	}
	return phttp.Response{Status: status, Body: ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{check},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
