// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/broadsearch/internal/httputil"
	"github.com/pdiddy/broadsearch/pkg/types"
)

// Semantic Scholar endpoints. Declared as vars so tests can substitute an
// httptest server. The relevance endpoint ranks by meaning; the bulk
// endpoint does boolean keyword matching.
var (
	s2SearchURL = "https://api.semanticscholar.org/graph/v1/paper/search"
	s2BulkURL   = "https://api.semanticscholar.org/graph/v1/paper/search/bulk"
)

const (
	s2Fields = "paperId,title,abstract,year,citationCount,authors,url"

	// s2MaxPageSize is the API's per-call result cap. Requests above it
	// are truncated, never paginated.
	s2MaxPageSize = 100

	// excerptLen is how much of the abstract seeds the retrieval excerpt.
	excerptLen = 200
)

// S2Client calls the Semantic Scholar Graph API. It works without an API
// key, subject to the public rate limit.
type S2Client struct {
	Client *http.Client
	APIKey string
	Config types.HTTPConfig
}

// SemanticSearch runs relevance-ranked search via /paper/search.
func (c *S2Client) SemanticSearch(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	if limit <= 0 || limit > s2MaxPageSize {
		limit = s2MaxPageSize
	}
	params := url.Values{
		"query":  {query},
		"limit":  {fmt.Sprintf("%d", limit)},
		"fields": {s2Fields},
	}
	papers, err := c.get(ctx, s2SearchURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	// The relevance endpoint returns ranked results but no numeric
	// score; derive one from position so snippet ordering reflects the
	// ranking downstream.
	for i := range papers {
		if len(papers) > 1 {
			papers[i].RetrievalScore = 1.0 - float64(i)/float64(len(papers)-1)*0.9
		} else {
			papers[i].RetrievalScore = 1.0
		}
	}
	return papers, nil
}

// KeywordSearch runs boolean keyword matching via /paper/search/bulk. The
// bulk endpoint ignores the limit parameter, so results are truncated
// client-side.
func (c *S2Client) KeywordSearch(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	if limit <= 0 || limit > s2MaxPageSize {
		limit = s2MaxPageSize
	}
	params := url.Values{
		"query":  {query},
		"fields": {s2Fields},
	}
	papers, err := c.get(ctx, s2BulkURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if len(papers) > limit {
		papers = papers[:limit]
	}
	return papers, nil
}

func (c *S2Client) get(ctx context.Context, reqURL string) ([]types.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Config.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar returned HTTP %d", resp.StatusCode)
	}

	var sr s2Response
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	papers := make([]types.Paper, 0, len(sr.Data))
	for _, item := range sr.Data {
		papers = append(papers, item.toPaper())
	}
	return papers, nil
}

// Semantic Scholar API JSON structures.
type s2Response struct {
	Total  int       `json:"total"`
	Offset int       `json:"offset"`
	Data   []s2Paper `json:"data"`
}

type s2Paper struct {
	PaperID       string     `json:"paperId"`
	Title         string     `json:"title"`
	Abstract      string     `json:"abstract"`
	Year          int        `json:"year"`
	CitationCount int        `json:"citationCount"`
	Authors       []s2Author `json:"authors"`
	URL           string     `json:"url"`
}

type s2Author struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

func (p s2Paper) toPaper() types.Paper {
	var authors []string
	for _, a := range p.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}
	return types.Paper{
		ID:            p.PaperID,
		Title:         p.Title,
		Abstract:      p.Abstract,
		Year:          p.Year,
		CitationCount: p.CitationCount,
		Authors:       authors,
		URL:           p.URL,
		Excerpt:       truncateRunes(p.Abstract, excerptLen),
	}
}

// truncateRunes cuts s to at most n runes, avoiding mid-rune splits.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// SemanticBackend exposes relevance-ranked search as a retrieval strategy.
type SemanticBackend struct {
	Client *S2Client
}

func (b *SemanticBackend) Strategy() types.Strategy { return types.StrategySemantic }

func (b *SemanticBackend) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	return b.Client.SemanticSearch(ctx, query, limit)
}

// KeywordBackend exposes bulk keyword matching as a retrieval strategy.
type KeywordBackend struct {
	Client *S2Client
}

func (b *KeywordBackend) Strategy() types.Strategy { return types.StrategyKeyword }

func (b *KeywordBackend) Search(ctx context.Context, query string, limit int) ([]types.Paper, error) {
	return b.Client.KeywordSearch(ctx, query, limit)
}
