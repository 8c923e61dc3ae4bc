package auth0

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testKid      = "test-key-1"
	testDomain   = "casting.example.com"
	testAudience = "casting-agency-api"
)

// testIssuer matches what NewValidator derives from testDomain
const testIssuer = "https://" + testDomain + "/"

// newSigningKey generates an RSA keypair for test tokens
func newSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// jwksDocument builds a JWKS JSON document publishing the given keys
func jwksDocument(t *testing.T, keys map[string]*rsa.PublicKey) []byte {
	t.Helper()
	doc := JWKS{}
	for kid, pub := range keys {
		doc.Keys = append(doc.Keys, JWK{
			Kid: kid,
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// newJWKSServer serves a JWKS document for the given keys
func newJWKSServer(t *testing.T, keys map[string]*rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := jwksDocument(t, keys)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(doc)
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestKeyCache builds a KeyCache pointed at the test server
func newTestKeyCache(t *testing.T, jwksURL string) *KeyCache {
	t.Helper()
	return NewKeyCache(KeyCacheConfig{
		Domain:  testDomain,
		JWKSURL: jwksURL,
	})
}

// signToken signs a token with the given key and kid
func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

// validClaims returns claims that pass all checks with the given permissions
func validClaims(permissions []string) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "auth0|user-1",
			Audience:  jwt.ClaimStrings{testAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Permissions: permissions,
	}
}
