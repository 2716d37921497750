package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource(t *testing.T) {
	var (
		mu      sync.Mutex
		payload = `[{"id":7,"name":"Milk"},{"id":3,"name":"Eggs","category":"Grocery"}]`
		etag    = `"abc"`
	)
	set := func(p, e string) {
		mu.Lock()
		defer mu.Unlock()
		payload, etag = p, e
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if etag != "" {
			w.Header().Set("ETag", etag)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	ctx := context.Background()
	src := NewHTTPSource(srv.URL, 5*time.Second)

	items, err := src.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Item{ID: 7, Name: "Milk"}, items[0])
	assert.Equal(t, "Grocery", items[1].Category)

	version, err := src.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, version)

	set(`[{"id":7,"name":"Milk"},{"id":3,"name":"Eggs","category":"Grocery"}]`, "")
	hashed, err := src.Version(ctx)
	require.NoError(t, err)
	assert.Len(t, hashed, 64)

	set(`[{"id":7,"name":"Milk"}]`, "")
	changed, err := src.Version(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, hashed, changed)
}

func TestHTTPSourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/items" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 5*time.Second)
	_, err := src.Items(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status code 500")

	assert.Error(t, src.Ping(context.Background()))
}

func TestHTTPSourcePingUsesHead(t *testing.T) {
	var (
		mu      sync.Mutex
		methods []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.Method)
		mu.Unlock()
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write([]byte(`[{"id":7,"name":"Milk"}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 5*time.Second)
	require.NoError(t, src.Ping(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{http.MethodHead}, methods)
}
