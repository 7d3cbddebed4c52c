package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltran/swoop/pkg/fetch"
	"github.com/veltran/swoop/pkg/resolver"
)

const aboutPage = `<!DOCTYPE html>
<html>
<head><title>About Us</title></head>
<body>
	<header>nav</header>
	<main id="swoop"><h1>About</h1><p>Hello.</p></main>
	<aside class="sidebar"><ul><li>link</li></ul></aside>
</body>
</html>`

func newClient(t *testing.T, baseURL string, opts ...fetch.Option) *fetch.Client {
	t.Helper()
	res, err := resolver.New(baseURL)
	require.NoError(t, err)
	return fetch.New(res, opts...)
}

func TestFetch_ParsesTitleAndBlocks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aboutPage))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	page, err := client.Fetch(context.Background(), srv.URL+"/about")
	require.NoError(t, err)

	assert.Equal(t, "About Us", page.Title)
	require.Len(t, page.Blocks, 1)
	assert.Equal(t, "#swoop", page.Blocks[0].Container)
	assert.Contains(t, page.Blocks[0].HTML, "<h1>About</h1>")
	assert.Equal(t, http.StatusOK, page.Status)
}

func TestFetch_MultipleContainers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aboutPage))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, fetch.WithContainers("#swoop", ".sidebar"))
	page, err := client.Fetch(context.Background(), srv.URL+"/about")
	require.NoError(t, err)

	require.Len(t, page.Blocks, 2)
	assert.Equal(t, ".sidebar", page.Blocks[1].Container)
	assert.Contains(t, page.Blocks[1].HTML, "<li>link</li>")
}

func TestFetch_SendsConfiguredHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(aboutPage))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, fetch.WithHeader("X-Custom", "yes"))
	_, err := client.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "swoop", got.Get("X-Requested-With"))
	assert.Contains(t, got.Get("Accept"), "text/html")
	assert.Equal(t, "yes", got.Get("X-Custom"))
}

func TestFetch_FollowsRedirectsToFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(aboutPage))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := newClient(t, srv.URL)
	page, err := client.Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/old", page.URL)
	assert.Equal(t, srv.URL+"/new", page.ResponseURL)
	assert.True(t, page.Redirected())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.Fetch(context.Background(), srv.URL+"/missing")

	var statusErr *fetch.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func TestFetch_NoContainersIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>bare</p></body></html>"))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL)
	_, err := client.Fetch(context.Background(), srv.URL+"/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content containers")
}
