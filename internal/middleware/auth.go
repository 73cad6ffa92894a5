// Package middleware provides the HTTP middleware wrapped around the access
// service routes.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/odpi/itinfra/internal/errors"
	"github.com/odpi/itinfra/internal/httputil"
	"github.com/odpi/itinfra/internal/logging"
)

// Claims are the JWT claims accepted by the access service. The caller is
// UserID when present, otherwise the subject.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Caller returns the authenticated user.
func (c *Claims) Caller() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// AuthMiddleware verifies HS256 bearer tokens and binds the caller to the
// {userId} route variable.
type AuthMiddleware struct {
	secret    []byte
	issuer    string
	logger    *logging.Logger
	skipPaths map[string]bool
}

// NewAuthMiddleware creates the middleware. An empty issuer accepts any.
func NewAuthMiddleware(secret, issuer string, logger *logging.Logger, skipPaths []string) *AuthMiddleware {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}
	return &AuthMiddleware{
		secret:    []byte(secret),
		issuer:    issuer,
		logger:    logging.New("auth", loggerOf(logger)),
		skipPaths: skip,
	}
}

// Handler returns the middleware handler.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.respondError(w, r, errors.Unauthorized("missing Authorization header"))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			m.respondError(w, r, errors.Unauthorized("invalid Authorization header format"))
			return
		}

		claims, err := m.validateToken(parts[1])
		if err != nil {
			m.respondError(w, r, err)
			return
		}

		caller := claims.Caller()
		if routeUser, ok := mux.Vars(r)["userId"]; ok && routeUser != caller {
			m.respondError(w, r, errors.UserNotAuthorized(caller, r.Method+" "+r.URL.Path).
				WithDetails("requestedUserId", routeUser))
			return
		}

		ctx := logging.WithUserID(r.Context(), caller)
		m.logger.WithContext(ctx).Debug("authentication successful")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) validateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.InvalidToken(err)
	}
	if !token.Valid {
		return nil, errors.InvalidToken(nil)
	}
	if claims.Caller() == "" {
		return nil, errors.InvalidToken(nil).WithDetails("reason", "token names no user")
	}
	return claims, nil
}

func (m *AuthMiddleware) respondError(w http.ResponseWriter, r *http.Request, err error) {
	resp := httputil.Failure(err)
	m.logger.LogSecurityEvent(r.Context(), "authentication_failed", map[string]interface{}{
		"path":   r.URL.Path,
		"method": r.Method,
		"status": resp.RelatedHTTPCode,
		"reason": resp.ExceptionErrorMessage,
	})
	httputil.WriteJSON(w, resp.RelatedHTTPCode, resp)
}

// NewToken signs an HS256 token for userID valid for ttl.
func NewToken(secret, issuer, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// GetUserID extracts the authenticated caller from the context.
func GetUserID(ctx context.Context) string {
	return logging.GetUserID(ctx)
}
