package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFormatsDigest(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "test-cx", r.URL.Query().Get("cx"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"title":"Go","snippet":"A language","link":"https://go.dev"},
			{"title":"Fiber","snippet":"A framework","link":"https://gofiber.io"}
		]}`)
	}))
	defer srv.Close()

	p := NewGoogleProvider("test-key", "test-cx")
	p.BaseURL = srv.URL

	digest, err := p.Search(context.Background(), "golang")
	require.NoError(t, err)
	assert.Equal(t, "golang", gotQuery)

	want := "Title: Go\nSnippet: A language\nLink: https://go.dev" +
		"\n\n" +
		"Title: Fiber\nSnippet: A framework\nLink: https://gofiber.io"
	assert.Equal(t, want, digest)
}

func TestSearchNon200IsEmptyDigestNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewGoogleProvider("k", "cx")
	p.BaseURL = srv.URL

	digest, err := p.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, digest)
}

func TestSearchNoItemsIsEmptyDigest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	p := NewGoogleProvider("k", "cx")
	p.BaseURL = srv.URL

	digest, err := p.Search(context.Background(), "nothing out there")
	require.NoError(t, err)
	assert.Empty(t, digest)
}

func TestFormatDigestCapsResults(t *testing.T) {
	items := make([]SearchItem, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, SearchItem{
			Title:   fmt.Sprintf("t%d", i),
			Snippet: "s",
			Link:    "l",
		})
	}

	digest := FormatDigest(items)
	assert.Equal(t, maxResults, strings.Count(digest, "Title: "))
	assert.NotContains(t, digest, "t5")
}
