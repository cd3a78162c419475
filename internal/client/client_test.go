package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/miniblog/internal/config"
	"github.com/example/miniblog/internal/models"
)

func newTestClient(srv *httptest.Server) *Client {
	return New(&config.ClientConfig{BaseURL: srv.URL, AnonKey: "anon-key"})
}

func TestListPosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		_ = json.NewEncoder(w).Encode([]models.Post{
			{ID: 1, Title: "Hello", Content: "World", Author: "Amy"},
		})
	}))
	defer srv.Close()

	res := newTestClient(srv).ListPosts(context.Background())

	require.True(t, res.OK())
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "Hello", res.Posts[0].Title)
}

func TestListPostsEmptyBodyIsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	res := newTestClient(srv).ListPosts(context.Background())

	require.True(t, res.OK())
	require.NotNil(t, res.Posts)
	assert.Empty(t, res.Posts)
}

func TestCreatePost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Hello", in["title"])
		_ = json.NewEncoder(w).Encode(models.Post{ID: 5, Title: in["title"], Content: in["content"], Author: in["author"]})
	}))
	defer srv.Close()

	res := newTestClient(srv).CreatePost(context.Background(), "Hello", "World", "Amy")

	require.True(t, res.OK())
	assert.Equal(t, uint(5), res.Post.ID)
	assert.Equal(t, "Amy", res.Post.Author)
}

func TestCreatePostStructuredFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": "store operation failed", "kind": "unavailable", "retryable": true,
		})
	}))
	defer srv.Close()

	res := newTestClient(srv).CreatePost(context.Background(), "Hello", "World", "")

	require.False(t, res.OK())
	assert.Equal(t, "store operation failed", res.Err.Message)
	assert.Equal(t, "unavailable", res.Err.Kind)
	assert.True(t, res.Err.Retryable)
}

func TestOpaqueFailureStillCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	res := newTestClient(srv).ListPosts(context.Background())

	require.False(t, res.OK())
	assert.NotEmpty(t, res.Err.Message)
}

func TestTransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	res := newTestClient(srv).ListPosts(context.Background())

	require.False(t, res.OK())
	assert.Equal(t, "unavailable", res.Err.Kind)
	assert.True(t, res.Err.Retryable)
}
