package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smartkitchen/kitchen/pkg/errors"
)

// RequireToken guards mutating requests with an HS256 bearer token.
// Safe methods pass through. An empty secret disables the guard.
func RequireToken(secret, issuer string) func(next http.Handler) http.Handler {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)

	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				WriteError(w, r, errors.NewUnauthorizedError("Bearer token required"), 0)
				return
			}

			if _, err := parser.Parse(token, func(*jwt.Token) (interface{}, error) { return key, nil }); err != nil {
				WriteError(w, r, errors.NewUnauthorizedError("Invalid token").WithCause(err), 0)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IssueToken signs an operator token, used by tooling and tests
func IssueToken(secret, issuer, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
