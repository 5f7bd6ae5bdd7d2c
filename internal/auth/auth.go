package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/safetemp/pkg/utils"
)

var (
	ErrNoAuthHeader  = errors.New("authorization header not found")
	ErrInvalidApiKey = errors.New("invalid api key")
)

func ParseApiKey(r *http.Request) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthHeader
	}

	var apiKey string
	n, err := fmt.Sscanf(authHeader, "ApiKey %s", &apiKey)
	if n != 1 || err != nil {
		return "", ErrNoAuthHeader
	}

	return apiKey, nil
}

// RequireApiKey guards the operator actions (PUT and DELETE) behind the given key.
// Reads and evaluations stay open. An empty key disables the check.
func RequireApiKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if apiKey == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut && r.Method != http.MethodDelete {
				next.ServeHTTP(w, r)
				return
			}

			key, err := ParseApiKey(r)
			if err == nil && subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				err = ErrInvalidApiKey
			}

			if err != nil {
				slog.Warn("rejected operator request", "method", r.Method, "path", r.URL.Path, "error", err)
				utils.RespondWithError(w, http.StatusUnauthorized, "Couldn't validate the API key", err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
