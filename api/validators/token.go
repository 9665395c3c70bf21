package validators

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from the Authorization header, with or
// without the "Bearer" prefix. Returns "" when absent.
func BearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
