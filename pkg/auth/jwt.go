package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/getzep/contactner/config"
	"github.com/getzep/contactner/internal"
	"github.com/getzep/contactner/pkg/server/handlertools"
)

const JwtAlg = "HS256"

// Issuer is set on every token this service hands out.
const Issuer = "contactner"

var log = internal.GetLogger()

var ErrUnauthorized = errors.New("unauthorized")

var ErrSecretNotSet = errors.New(
	"auth secret not set. Ensure CONTACTNER_AUTH_SECRET is set in your environment",
)

// GenerateToken signs a token for subject with the configured secret. A zero
// ttl yields a token that never expires.
func GenerateToken(cfg *config.Config, subject string, ttl time.Duration) (string, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Middleware rejects requests that don't carry a valid bearer token signed
// with the configured secret.
func Middleware(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return nil, ErrSecretNotSet
	}
	log.Info("JWT authentication enabled for the upload endpoint")

	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	verifier := jwtauth.Verifier(tokenAuth)

	return func(next http.Handler) http.Handler {
		return verifier(authenticator(next))
	}, nil
}

// authenticator rejects requests whose token the verifier could not accept,
// answering with the JSON error body every other failure uses.
func authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			handlertools.RenderError(
				w,
				fmt.Errorf("%w: %s", ErrUnauthorized, err.Error()),
				http.StatusUnauthorized,
			)
			return
		}
		if token == nil {
			handlertools.RenderError(w, ErrUnauthorized, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
