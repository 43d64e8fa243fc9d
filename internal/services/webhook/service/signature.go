package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	perr "ghappkit/internal/platform/errors"
)

// SignatureHeader carries the HMAC-SHA256 of the body keyed with the webhook secret
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// Signature verifies webhook deliveries against the shared secret
type Signature struct {
	secret []byte
}

// NewSignature returns a verifier for secret; an empty secret returns nil (no verification)
func NewSignature(secret string) *Signature {
	if secret == "" {
		return nil
	}
	return &Signature{secret: []byte(secret)}
}

// Sign returns the header value GitHub sends for body
func (s *Signature) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Verify implements middleware.Verifier
func (s *Signature) Verify(r *http.Request, body []byte) error {
	got := r.Header.Get(SignatureHeader)
	if got == "" {
		return perr.Unauthorizedf("missing %s header", SignatureHeader)
	}
	hexSum, ok := strings.CutPrefix(got, signaturePrefix)
	if !ok {
		return perr.Unauthorizedf("unsupported signature format")
	}
	sum, err := hex.DecodeString(hexSum)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnauthorized, "malformed signature")
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(sum, mac.Sum(nil)) {
		return perr.Unauthorizedf("signature mismatch")
	}
	return nil
}
