package middleware

import (
	"bytes"
	"io"
	"net/http"

	perr "ghappkit/internal/platform/errors"
	phttp "ghappkit/internal/platform/net/http"
)

// maxBody caps webhook bodies; GitHub caps payloads at 25MB
const maxBody = 25 << 20

// Verifier authenticates a request from its raw body
type Verifier interface {
	Verify(r *http.Request, body []byte) error
}

// Auth buffers the body, runs v over it, and restores the body for the next handler
// A nil Verifier lets every request through
func Auth(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				next.ServeHTTP(w, r)
				return
			}
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
			_ = r.Body.Close()
			if err != nil {
				phttp.RespondError(w, r, perr.Wrap(err, perr.ErrorCodePayload, "read body"))
				return
			}
			if err := v.Verify(r, body); err != nil {
				phttp.RespondError(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
