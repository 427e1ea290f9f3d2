package trust

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{APIURL: srv.URL, Token: "test-token"}, nil)
	return NewVerifier(client, nil)
}

func TestVerifyHappyPath(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verify", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"trust_score": 0.82, "is_verified": true}`))
	})

	got := v.Verify(context.Background(), "abc123", "document excerpt")
	assert.Equal(t, 0.82, got.Score)
	assert.True(t, got.Verified)
	assert.Equal(t, SourceNetwork, got.Source)
}

func TestVerifyClampsOutOfRangeScores(t *testing.T) {
	cases := []struct {
		name string
		body string
		want float64
	}{
		{"above one", `{"trust_score": 1.7, "is_verified": true}`, 1.0},
		{"negative", `{"trust_score": -0.3, "is_verified": false}`, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			got := v.Verify(context.Background(), "abc123", "")
			assert.Equal(t, tc.want, got.Score)
			assert.Equal(t, SourceNetwork, got.Source)
		})
	}
}

func TestVerifyFallsBackOnServerError(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	got := v.Verify(context.Background(), "abc123", "")
	assert.Equal(t, 0.0, got.Score)
	assert.False(t, got.Verified)
	assert.Equal(t, SourceFallback, got.Source)
}

func TestVerifyFallsBackOnMalformedResponse(t *testing.T) {
	v := newTestVerifier(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	})

	got := v.Verify(context.Background(), "abc123", "")
	assert.Equal(t, 0.0, got.Score)
	assert.False(t, got.Verified)
	assert.Equal(t, SourceFallback, got.Source)
}

func TestVerifyFallsBackOnUnreachableNetwork(t *testing.T) {
	client := NewClient(Config{APIURL: "http://127.0.0.1:1", Token: "t"}, nil)
	v := NewVerifier(client, nil)

	got := v.Verify(context.Background(), "abc123", "")
	assert.Equal(t, 0.0, got.Score)
	assert.False(t, got.Verified)
	assert.Equal(t, SourceFallback, got.Source)
}

func TestRegisterHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register", r.URL.Path)
		_, _ = w.Write([]byte(`{"attested_hash": "att-xyz"}`))
	}))
	t.Cleanup(srv.Close)
	client := NewClient(Config{APIURL: srv.URL, Token: "t"}, nil)

	got, err := client.RegisterHash(context.Background(), "rid-1", "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "att-xyz", got)
}
