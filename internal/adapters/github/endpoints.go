package github

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	perr "ghappkit/internal/platform/errors"
)

// RateLimit performs GET /rate_limit. The call does not count against the quota,
// which makes it the cheapest way to check that credentials work
func (c *Client) RateLimit(ctx context.Context) (RateLimit, error) {
	b, err := c.Request(ctx, http.MethodGet, "/rate_limit", nil)
	if err != nil {
		return RateLimit{}, err
	}
	var doc rateLimitDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return RateLimit{}, perr.Wrapf(err, perr.ErrorCodeJSON, "github decode rate_limit")
	}
	core := doc.Resources.Core
	out := RateLimit{Limit: core.Limit, Remaining: core.Remaining, Used: core.Used}
	if core.Reset > 0 {
		out.Reset = time.Unix(core.Reset, 0).UTC()
	}
	return out, nil
}
