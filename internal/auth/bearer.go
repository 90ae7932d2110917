package auth

import (
	"errors"
	"strings"
)

const bearerPrefix = "Bearer "

var ErrNoBearerToken = errors.New("no valid authorization token provided")

// ExtractBearer returns the opaque token from an Authorization header.
// The header must carry the literal "Bearer " prefix; anything else is
// rejected so malformed credentials never reach the session store.
func ExtractBearer(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrNoBearerToken
	}

	token := header[len(bearerPrefix):]
	if token == "" {
		return "", ErrNoBearerToken
	}

	return token, nil
}
