package security

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerAuth guards the HTTP API with a single shared token. When disabled
// every request passes, which is the default for a purely local setup.
type BearerAuth struct {
	Enabled bool
	Token   string
}

func (a BearerAuth) Authorize(r *http.Request) bool {
	if !a.Enabled {
		return true
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	candidate, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	candidate = strings.TrimSpace(candidate)
	if len(candidate) != len(a.Token) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(a.Token)) == 1
}
