package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/casting-agency/api/auth0"
	"github.com/casting-agency/api/utils"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// TokenVerifier validates a raw bearer token and returns its claims
type TokenVerifier interface {
	VerifyToken(ctx context.Context, rawToken string) (*auth0.Claims, error)
}

// AuthMiddleware guards protected routes with token verification and
// permission enforcement
type AuthMiddleware struct {
	verifier TokenVerifier
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequirePermission wraps a handler so it only runs for requests carrying
// a verified token that grants the given permission. The verified claims
// are placed in the request context for the wrapped handler; the gate
// itself performs no business logic.
func (m *AuthMiddleware) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := chimw.GetReqID(ctx)

			token, headerErr := bearerToken(r)
			if headerErr != nil {
				m.logger.Warn("bearer token extraction failed",
					zap.String("request_id", requestID),
					zap.String("code", headerErr.Code))
				_ = utils.WriteAuthError(w, headerErr)
				return
			}

			claims, err := m.verifier.VerifyToken(ctx, token)
			if err != nil {
				m.rejectVerification(w, requestID, err)
				return
			}

			if permErr := auth0.CheckPermission(claims, permission); permErr != nil {
				authErr, _ := auth0.AsAuthError(permErr)
				m.logger.Warn("permission check failed",
					zap.String("request_id", requestID),
					zap.String("required_permission", permission),
					zap.String("code", authErr.Code))
				_ = utils.WriteAuthError(w, authErr)
				return
			}

			m.logger.Debug("authorization successful",
				zap.String("request_id", requestID),
				zap.String("sub", claims.Subject),
				zap.String("required_permission", permission))

			next.ServeHTTP(w, r.WithContext(WithClaims(ctx, claims)))
		})
	}
}

// rejectVerification writes the boundary response for a failed token
// verification. Authorization failures keep their taxonomy code;
// signing-key infrastructure failures are not the caller's fault and map
// to a 500.
func (m *AuthMiddleware) rejectVerification(w http.ResponseWriter, requestID string, err error) {
	if authErr, ok := auth0.AsAuthError(err); ok {
		m.logger.Warn("token verification failed",
			zap.String("request_id", requestID),
			zap.String("code", authErr.Code))
		_ = utils.WriteAuthError(w, authErr)
		return
	}

	m.logger.Error("signing key retrieval failed",
		zap.String("request_id", requestID),
		zap.Error(err))
	_ = utils.WriteInternalServerError(w, "unable to verify credentials")
}

// bearerToken extracts the raw token from the Authorization header.
// The header must be exactly `Bearer <token>`.
func bearerToken(r *http.Request) (string, *auth0.Error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth0.NewError(auth0.CodeMissingHeader, "authorization header is expected")
	}

	parts := strings.Split(header, " ")
	if parts[0] != "Bearer" {
		return "", auth0.NewError(auth0.CodeMalformedHeader, `authorization header must start with "Bearer"`)
	}
	if len(parts) == 1 || parts[1] == "" {
		return "", auth0.NewError(auth0.CodeMalformedHeader, "token not found")
	}
	if len(parts) > 2 {
		return "", auth0.NewError(auth0.CodeMalformedHeader, "authorization header must be a bearer token")
	}

	return parts[1], nil
}
