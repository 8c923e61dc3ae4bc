package auth0

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCacheRefresh(t *testing.T) {
	key := newSigningKey(t)
	server := newJWKSServer(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})
	cache := newTestKeyCache(t, server.URL)

	keySet, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, keySet.Len())

	got, ok := keySet.Key(testKid)
	require.True(t, ok)
	assert.Zero(t, got.N.Cmp(key.PublicKey.N))
	assert.Equal(t, key.PublicKey.E, got.E)

	_, ok = keySet.Key("other-key")
	assert.False(t, ok)
}

func TestKeyCacheServesCachedSnapshot(t *testing.T) {
	key := newSigningKey(t)
	doc := jwksDocument(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write(doc)
	}))
	defer server.Close()

	cache := newTestKeyCache(t, server.URL)

	first, err := cache.CurrentKeySet(context.Background())
	require.NoError(t, err)
	second, err := cache.CurrentKeySet(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), fetches.Load())
}

func TestKeyCacheInvalidateForcesRefresh(t *testing.T) {
	key := newSigningKey(t)
	doc := jwksDocument(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		_, _ = w.Write(doc)
	}))
	defer server.Close()

	cache := newTestKeyCache(t, server.URL)

	first, err := cache.CurrentKeySet(context.Background())
	require.NoError(t, err)

	cache.Invalidate()

	second, err := cache.CurrentKeySet(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), fetches.Load())
}

func TestKeyCacheRefreshReplacesSnapshotWholesale(t *testing.T) {
	oldKey := newSigningKey(t)
	newKey := newSigningKey(t)

	docs := [][]byte{
		jwksDocument(t, map[string]*rsa.PublicKey{"old-key": &oldKey.PublicKey}),
		jwksDocument(t, map[string]*rsa.PublicKey{"new-key": &newKey.PublicKey}),
	}
	var fetches atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := fetches.Add(1)
		_, _ = w.Write(docs[(n-1)%2])
	}))
	defer server.Close()

	cache := newTestKeyCache(t, server.URL)

	first, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	_, ok := first.Key("old-key")
	assert.True(t, ok)

	second, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	_, ok = second.Key("new-key")
	assert.True(t, ok)
	_, ok = second.Key("old-key")
	assert.False(t, ok, "rotated key must not survive a refresh")

	// The earlier snapshot is untouched; concurrent readers holding it
	// keep a consistent view.
	_, ok = first.Key("old-key")
	assert.True(t, ok)
}

func TestKeyCacheFetchFailures(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		cache := newTestKeyCache(t, server.URL)
		_, err := cache.CurrentKeySet(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJWKSFetchFailed)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		cache := newTestKeyCache(t, server.URL)
		_, err := cache.CurrentKeySet(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJWKSFetchFailed)
	})

	t.Run("unreachable host", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		cache := newTestKeyCache(t, server.URL)
		_, err := cache.CurrentKeySet(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJWKSFetchFailed)
	})

	t.Run("fetch failure is not an authorization error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		cache := newTestKeyCache(t, server.URL)
		_, err := cache.CurrentKeySet(context.Background())
		require.Error(t, err)
		_, isAuthErr := AsAuthError(err)
		assert.False(t, isAuthErr)
	})
}

func TestKeyCacheSkipsNonRSAKeys(t *testing.T) {
	key := newSigningKey(t)
	doc := jwksDocument(t, map[string]*rsa.PublicKey{testKid: &key.PublicKey})

	// Splice an EC key into the document; it must be ignored, not fatal.
	var jwks JWKS
	require.NoError(t, json.Unmarshal(doc, &jwks))
	jwks.Keys = append(jwks.Keys, JWK{Kid: "ec-key", Kty: "EC"})
	spliced, err := json.Marshal(jwks)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(spliced)
	}))
	defer server.Close()

	cache := newTestKeyCache(t, server.URL)
	keySet, err := cache.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, keySet.Len())
}
