package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/miniblog/internal/config"
)

func newTestElastic(t *testing.T, handler http.HandlerFunc) *Elastic {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The v8 client rejects servers that don't identify as Elasticsearch.
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := NewElastic(&config.Config{ElasticAddr: srv.URL})
	require.NoError(t, err)
	return es
}

func TestSearchPosts(t *testing.T) {
	es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hits": {"hits": [
				{"_source": {"id": 1, "title": "Hello", "content": "World", "author": "Amy"}},
				{"_source": {"id": 2, "title": "Second", "content": "post"}}
			]}
		}`))
	})

	results, err := es.SearchPosts(context.Background(), "hello")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Hello", results[0]["title"])
}

func TestSearchPostsNoHits(t *testing.T) {
	es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits": {"hits": []}}`))
	})

	results, err := es.SearchPosts(context.Background(), "nothing")

	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Empty(t, results)
}

// A success status with an unexpected body must come back as an error, not
// a panic.
func TestSearchPostsMalformedResponse(t *testing.T) {
	es := newTestElastic(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"took": 3}`))
	})

	results, err := es.SearchPosts(context.Background(), "hello")

	require.Error(t, err)
	assert.Nil(t, results)
}
