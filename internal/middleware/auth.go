// file: internal/middleware/auth.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"prophezeiung/internal/config"
	"prophezeiung/internal/contextutils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Authenticator verifies bearer tokens minted by the external identity
// collaborator and loads the caller's user ID into the request context.
// Token issuance, refresh and the rest of the authentication ceremony
// live outside this service.
type Authenticator struct {
	secret []byte
	issuer string
	logger *zap.Logger
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(cfg config.AuthConfig, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid bearer token
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.identify(r)
		if err != nil {
			a.logger.Debug("Authentication rejected",
				zap.Error(err),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", getClientIP(r)),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := contextutils.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the caller's identity when a valid token is
// present but never rejects the request.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, err := a.identify(r); err == nil {
			r = r.WithContext(contextutils.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// identify parses and validates the bearer token and returns the
// subject user ID.
func (a *Authenticator) identify(r *http.Request) (int64, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, fmt.Errorf("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, fmt.Errorf("invalid authorization header format")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer))
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("token not valid")
	}

	var userID int64
	if _, err := fmt.Sscan(claims.Subject, &userID); err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid subject claim %q", claims.Subject)
	}

	return userID, nil
}
