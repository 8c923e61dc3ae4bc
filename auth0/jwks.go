package auth0

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// ErrJWKSFetchFailed is returned when the signing-key set cannot be
// retrieved or decoded. This is an infrastructure failure, not an
// authorization failure, and maps to a 500 at the boundary.
var ErrJWKSFetchFailed = errors.New("failed to fetch JWKS")

// JWKS represents the JSON Web Key Set published by the identity provider
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single JSON Web Key
type JWK struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeySet is an immutable snapshot of the provider's signing keys, indexed
// by key ID. A snapshot is built in full before it is published, so
// concurrent readers never observe a partially populated set.
type KeySet struct {
	keys map[string]*rsa.PublicKey
}

// Key returns the public key for the given key ID
func (s *KeySet) Key(kid string) (*rsa.PublicKey, bool) {
	key, ok := s.keys[kid]
	return key, ok
}

// Len returns the number of keys in the snapshot
func (s *KeySet) Len() int {
	return len(s.keys)
}

// KeyCacheConfig holds configuration for KeyCache
type KeyCacheConfig struct {
	// Domain is the identity provider domain, e.g. "tenant.auth0.com"
	Domain string
	// JWKSURL overrides the well-known URL derived from Domain. Used in tests.
	JWKSURL string
	// CacheTTL bounds how long a snapshot is served before the next
	// verification triggers a refresh. Defaults to 1 hour.
	CacheTTL time.Duration
	// HTTPTimeout bounds the JWKS fetch. Defaults to 10 seconds.
	HTTPTimeout time.Duration
}

// KeyCache fetches and caches the identity provider's signing-key set.
// It is owned by the composition root and passed by reference into the
// Validator; refreshes replace the snapshot wholesale.
type KeyCache struct {
	jwksURL    string
	httpClient *http.Client
	ttl        time.Duration

	mu       sync.RWMutex
	snapshot *KeySet
	expires  time.Time
}

// NewKeyCache creates a KeyCache for the given provider
func NewKeyCache(cfg KeyCacheConfig) *KeyCache {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 1 * time.Hour
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = fmt.Sprintf("https://%s/.well-known/jwks.json", cfg.Domain)
	}

	return &KeyCache{
		jwksURL: jwksURL,
		ttl:     cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// CurrentKeySet returns the cached snapshot, refreshing it when stale
func (c *KeyCache) CurrentKeySet(ctx context.Context) (*KeySet, error) {
	c.mu.RLock()
	if c.snapshot != nil && time.Now().Before(c.expires) {
		defer c.mu.RUnlock()
		return c.snapshot, nil
	}
	c.mu.RUnlock()

	return c.Refresh(ctx)
}

// Refresh fetches the JWKS document and publishes a new snapshot
func (c *KeyCache) Refresh(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJWKSFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrJWKSFetchFailed, resp.StatusCode)
	}

	var jwks JWKS
	if err := json.NewDecoder(resp.Body).Decode(&jwks); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrJWKSFetchFailed, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(jwks.Keys))
	for i := range jwks.Keys {
		jwk := &jwks.Keys[i]
		if jwk.Kty != "RSA" || jwk.Kid == "" {
			continue
		}
		publicKey, err := jwkToRSAPublicKey(jwk)
		if err != nil {
			return nil, fmt.Errorf("%w: key %s: %v", ErrJWKSFetchFailed, jwk.Kid, err)
		}
		keys[jwk.Kid] = publicKey
	}

	snapshot := &KeySet{keys: keys}

	c.mu.Lock()
	c.snapshot = snapshot
	c.expires = time.Now().Add(c.ttl)
	c.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops the cached snapshot, forcing the next call to refresh
func (c *KeyCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.expires = time.Time{}
}

// jwkToRSAPublicKey converts an RSA JWK (base64url modulus and exponent)
// to an rsa.PublicKey
func jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)

	var e int
	for _, b := range eBytes {
		e = e*256 + int(b)
	}

	return &rsa.PublicKey{N: n, E: e}, nil
}
