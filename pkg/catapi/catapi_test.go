package catapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const breedsJSON = `[
	{"id":"abys","name":"Abyssinian"},
	{"id":"beng","name":"Bengal"},
	{"id":"sibe","name":"Siberian"}
]`

func newBreedServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(breedsJSON))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestValidateBreed(t *testing.T) {
	ctx := context.Background()

	t.Run("exact name matches", func(t *testing.T) {
		client := NewClient(newBreedServer(t).URL, time.Second)
		breed, err := client.ValidateBreed(ctx, "Bengal")
		require.NoError(t, err)
		assert.Equal(t, "beng", breed.Id)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		client := NewClient(newBreedServer(t).URL, time.Second)
		breed, err := client.ValidateBreed(ctx, "bEnGaL")
		require.NoError(t, err)
		assert.Equal(t, "beng", breed.Id)
	})

	t.Run("unknown breed is a distinct rejection", func(t *testing.T) {
		client := NewClient(newBreedServer(t).URL, time.Second)
		_, err := client.ValidateBreed(ctx, "fraud")
		assert.ErrorIs(t, err, ErrBreedNotFound)
		assert.NotErrorIs(t, err, ErrUnavailable)
	})

	t.Run("upstream error answer carries the status code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(server.Close)

		client := NewClient(server.URL, time.Second)
		_, err := client.ValidateBreed(ctx, "Bengal")
		var upstreamErr *UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	})

	t.Run("unreachable api reports unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.ValidateBreed(ctx, "Bengal")
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("slow api reports unavailable within the bounded wait", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(breedsJSON))
		}))
		t.Cleanup(server.Close)

		client := NewClient(server.URL, 50*time.Millisecond)
		start := time.Now()
		_, err := client.ValidateBreed(ctx, "Bengal")
		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Less(t, time.Since(start), 150*time.Millisecond)
	})

	t.Run("garbage payload reports unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		t.Cleanup(server.Close)

		client := NewClient(server.URL, time.Second)
		_, err := client.ValidateBreed(ctx, "Bengal")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
