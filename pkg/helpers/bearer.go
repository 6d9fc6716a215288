package helpers

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearerToken pulls the raw token out of an Authorization header.
// Anything that is not exactly `Bearer <token>` with a non-empty token
// reports false.
func ExtractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
