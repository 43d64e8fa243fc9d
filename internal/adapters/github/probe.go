package github

import (
	"context"
	"time"

	perr "ghappkit/internal/platform/errors"
)

// Probe statuses
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusFail     = "fail"
)

// ProbeResult is the outcome of one credential check
type ProbeResult struct {
	Status    string    `json:"status"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset,omitzero"`
	Error     string    `json:"error,omitempty"`
}

// Probe checks that the configured credentials can reach the API
type Probe struct{ c *Client }

// NewProbe constructs a Probe using the given GitHub client
func NewProbe(c *Client) *Probe { return &Probe{c: c} }

// Check reads the rate limit: fail when rejected or unreachable, degraded when the quota is spent
func (p *Probe) Check(ctx context.Context) ProbeResult {
	rl, err := p.c.RateLimit(ctx)
	if err != nil {
		res := ProbeResult{Status: StatusFail, Error: err.Error()}
		if perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
			res.Status = StatusDegraded
		}
		return res
	}
	res := ProbeResult{Status: StatusOK, Remaining: rl.Remaining, Reset: rl.Reset}
	if rl.Remaining <= 0 {
		res.Status = StatusDegraded
	}
	return res
}
