package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/util"
)

// Client queries a SearXNG instance over its JSON API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
	gdprMode   bool
	workers    int
}

// NewClient creates a search client from the pipeline configuration.
func NewClient(cfg *model.Config, logger *zap.Logger) *Client {
	workers := cfg.Concurrency.SearchWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.Search.BaseURL, "/"),
		userAgent: cfg.HTTP.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.ProxyFunc(cfg.HTTP.ProxyURL),
			},
		},
		logger:   logger,
		gdprMode: cfg.Privacy.GDPRMode,
		workers:  workers,
	}
}

type searxResponse struct {
	Results []searxResult `json:"results"`
}

type searxResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Content       string `json:"content"`
	Engine        string `json:"engine"`
	PublishedDate string `json:"publishedDate"`
}

// Search runs a single query and returns its raw results with cleaned
// URLs and normalized dates. Deduplication across queries happens in
// SearchAll.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("engines", "google,bing,duckduckgo")
	params.Set("safesearch", "1")
	params.Set("time_range", "")

	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	var payload searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := make([]model.SearchResult, 0, len(payload.Results))
	for _, item := range payload.Results {
		cleanURL := util.CleanURL(item.URL)
		if cleanURL == "" {
			continue
		}

		engine := item.Engine
		if engine == "" {
			engine = "unknown"
		}

		results = append(results, model.SearchResult{
			Title:     strings.TrimSpace(item.Title),
			URL:       cleanURL,
			Snippet:   strings.TrimSpace(item.Content),
			Engine:    engine,
			Published: util.NormalizeMonth(item.PublishedDate),
			Domain:    util.Domain(cleanURL),
		})
	}

	return results, nil
}

// SearchAll fans the expanded queries out with bounded concurrency,
// merges results in query order, deduplicates by cleaned URL, applies
// the diversity prefilter, and caps the pool at k. A failed query logs
// a warning and contributes nothing.
func (c *Client) SearchAll(ctx context.Context, queries []string, k int) []model.SearchResult {
	perQuery := make([][]model.SearchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, query := range queries {
		g.Go(func() error {
			results, err := c.Search(gctx, query)
			if err != nil {
				metrics.RecordSearch("error")
				if c.gdprMode {
					c.logger.Warn("search query failed",
						zap.Int("query_length", len(query)), zap.Error(err))
				} else {
					c.logger.Warn("search query failed",
						zap.String("query", query), zap.Error(err))
				}
				return nil
			}
			metrics.RecordSearch("ok")
			perQuery[i] = results
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var merged []model.SearchResult
	for _, results := range perQuery {
		for _, r := range results {
			if seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			merged = append(merged, r)
		}
	}

	filtered := diversityFilter(merged)
	if k > 0 && len(filtered) > k {
		filtered = filtered[:k]
	}

	metrics.SearchResults.Observe(float64(len(filtered)))
	c.logger.Info("search complete",
		zap.Int("queries", len(queries)),
		zap.Int("merged", len(merged)),
		zap.Int("returned", len(filtered)))

	return filtered
}

// diversityFilter orders results by domain priority (authority domains
// first, stable within a tier) and caps hits per domain: 3 for priority
// domains, 2 for everything else.
func diversityFilter(results []model.SearchResult) []model.SearchResult {
	if len(results) == 0 {
		return results
	}

	sorted := make([]model.SearchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return domainPriority(sorted[i].Domain) < domainPriority(sorted[j].Domain)
	})

	counts := make(map[string]int)
	filtered := make([]model.SearchResult, 0, len(sorted))
	for _, r := range sorted {
		maxPerDomain := 2
		if domainPriority(r.Domain) == 0 {
			maxPerDomain = 3
		}
		if counts[r.Domain] >= maxPerDomain {
			continue
		}
		counts[r.Domain]++
		filtered = append(filtered, r)
	}

	return filtered
}

func domainPriority(domain string) int {
	switch {
	case strings.Contains(domain, ".gov"),
		strings.Contains(domain, ".europa.eu"),
		strings.Contains(domain, ".edu"):
		return 0
	case strings.Contains(domain, ".org"),
		strings.Contains(domain, ".int"):
		return 1
	default:
		return 2
	}
}
