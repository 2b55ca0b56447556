package telemetry

import (
	"net/url"
	"strings"
)

var sensitiveParams = []string{"key", "api_key", "apikey", "token", "access_token", "client_secret", "password"}

// RedactURL masks the values of query parameters that usually carry
// credentials. Unparsable input is returned without its query.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		before, _, _ := strings.Cut(raw, "?")
		return before
	}
	u.User = nil
	if u.RawQuery == "" {
		return u.String()
	}

	query := u.Query()
	for key := range query {
		for _, sensitive := range sensitiveParams {
			if strings.EqualFold(key, sensitive) {
				query.Set(key, "REDACTED")
				break
			}
		}
	}
	u.RawQuery = query.Encode()
	return u.String()
}
