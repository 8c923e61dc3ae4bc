package auth0

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified token payload handed to protected handlers.
// Nothing downstream reparses the raw token.
type Claims struct {
	jwt.RegisteredClaims

	// Permissions is the granted-permissions claim. A nil slice means the
	// claim was absent from the payload, which is distinct from an empty
	// permission list.
	Permissions []string `json:"permissions"`
}

// HasPermissionsClaim reports whether the permissions claim was present
// in the token payload at all
func (c *Claims) HasPermissionsClaim() bool {
	return c.Permissions != nil
}

// Validator verifies a token's signature, structure, and standard claims
// against the provider's published signing keys
type Validator struct {
	issuer   string
	audience string
	keys     *KeyCache
}

// NewValidator creates a Validator for the given provider domain and API
// audience, resolving signing keys through the supplied cache
func NewValidator(domain, audience string, keys *KeyCache) *Validator {
	return &Validator{
		issuer:   fmt.Sprintf("https://%s/", domain),
		audience: audience,
		keys:     keys,
	}
}

// VerifyToken validates the raw compact JWT and returns its claims.
// Authorization failures come back as *Error with a taxonomy code;
// signing-key infrastructure failures come back as plain errors wrapping
// ErrJWKSFetchFailed.
func (v *Validator) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, NewError(CodeInvalidHeader, "kid not found in token header")
		}

		keySet, err := v.keys.CurrentKeySet(ctx)
		if err != nil {
			return nil, err
		}

		publicKey, ok := keySet.Key(kid)
		if !ok {
			return nil, NewError(CodeUnknownKey, "no signing key found for token key id")
		}

		return publicKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, v.classifyError(err)
	}

	return claims, nil
}

// classifyError maps parse failures onto the error taxonomy. Errors the
// keyfunc already classified, and infrastructure errors, pass through.
func (v *Validator) classifyError(err error) error {
	if authErr, ok := AsAuthError(err); ok {
		return authErr
	}
	if errors.Is(err, ErrJWKSFetchFailed) {
		return err
	}

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return NewError(CodeInvalidHeader, "token is structurally invalid")
	case errors.Is(err, jwt.ErrTokenExpired):
		return NewError(CodeTokenExpired, "token is expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return NewError(CodeInvalidSignature, "token signature verification failed")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return NewError(CodeInvalidClaims, "token issued by an unexpected issuer")
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return NewError(CodeInvalidClaims, "token not intended for this audience")
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return NewError(CodeInvalidClaims, "token is missing a required claim")
	default:
		return NewError(CodeInvalidHeader, "unable to parse authentication token")
	}
}
