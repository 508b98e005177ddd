package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SearchProvider returns a formatted digest of web results for a query.
// An empty digest is a valid success value meaning "no augmentation available".
type SearchProvider interface {
	Search(ctx context.Context, query string) (string, error)
}

const maxResults = 5

// SearchItem is a single web hit.
type SearchItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type googleSearchResponse struct {
	Items []SearchItem `json:"items"`
}

type GoogleProvider struct {
	ApiKey  string
	Cx      string
	BaseURL string
	client  *http.Client
}

func NewGoogleProvider(apiKey string, cx string) *GoogleProvider {
	return &GoogleProvider{
		ApiKey:  apiKey,
		Cx:      cx,
		BaseURL: "https://www.googleapis.com/customsearch/v1",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Search queries the Google Custom Search JSON API and joins the top hits
// into one digest string. Provider-side failures (non-200 responses, empty
// result sets) degrade to an empty digest rather than an error.
func (p *GoogleProvider) Search(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("key", p.ApiKey)
	params.Set("cx", p.Cx)
	params.Set("q", query)
	params.Set("num", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, "GET", p.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	client := p.client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		io.Copy(io.Discard, res.Body)
		return "", nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var searchRes googleSearchResponse
	if err := json.Unmarshal(body, &searchRes); err != nil {
		return "", err
	}

	return FormatDigest(searchRes.Items), nil
}

// FormatDigest renders each hit as a Title/Snippet/Link record, hits separated
// by a blank line.
func FormatDigest(items []SearchItem) string {
	results := make([]string, 0, len(items))
	for i, item := range items {
		if i >= maxResults {
			break
		}
		results = append(results, fmt.Sprintf("Title: %s\nSnippet: %s\nLink: %s", item.Title, item.Snippet, item.Link))
	}
	return strings.Join(results, "\n\n")
}
