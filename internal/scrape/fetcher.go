package scrape

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/vportnov/indago/internal/cache"
	"github.com/vportnov/indago/internal/metrics"
	"github.com/vportnov/indago/internal/model"
	"github.com/vportnov/indago/internal/util"
	"github.com/vportnov/indago/internal/worker"
)

var (
	// ErrRobotsDisallowed marks URLs whose robots.txt forbids fetching.
	ErrRobotsDisallowed = errors.New("robots.txt disallows fetching")

	// ErrUnsupportedContent marks pages that cannot become documents:
	// blocked sources, non-HTML responses, unrecognized languages, or
	// pages with too little extractable text.
	ErrUnsupportedContent = errors.New("unsupported content")
)

// minContentLength is the shortest extracted text worth keeping.
const minContentLength = 100

// maxCrawlDelay caps robots.txt crawl-delay so a single host cannot
// stall the fetch pool.
const maxCrawlDelay = 10 * time.Second

var blockedDomains = map[string]bool{
	"facebook.com":  true,
	"twitter.com":   true,
	"linkedin.com":  true,
	"instagram.com": true,
	"tiktok.com":    true,
}

var blockedExtensions = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx"}

// Scrapable reports whether a URL is worth fetching at all. Social
// platforms render nothing useful without JavaScript and binary
// documents need format-specific parsing, so both are skipped up front.
func Scrapable(rawURL string) bool {
	domain := util.Domain(rawURL)
	if domain == "" {
		return false
	}
	if blockedDomains[domain] {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, ext := range blockedExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}
	return true
}

// Scraper turns search results into extracted documents. Fetches run
// concurrently but respect robots.txt and a per-host politeness rate,
// and successful extractions land in the cache keyed by URL.
type Scraper struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *Robots
	limiter    *worker.Limiter
	store      cache.Cache
	cacheTTL   time.Duration
	logger     *zap.Logger
	gdprMode   bool
	workers    int
}

// NewScraper creates a Scraper from the pipeline configuration. store
// may be nil to disable caching.
func NewScraper(cfg *model.Config, store cache.Cache, logger *zap.Logger) *Scraper {
	transport := &http.Transport{
		Proxy: util.ProxyFunc(cfg.HTTP.ProxyURL),
	}
	if cfg.HTTP.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	workers := cfg.Concurrency.FetchWorkers
	if workers < 1 {
		workers = 1
	}

	return &Scraper{
		httpClient: &http.Client{
			Timeout:   cfg.HTTP.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: cfg.HTTP.UserAgent,
		maxBytes:  cfg.HTTP.MaxBodyBytes,
		robots:    NewRobots(cfg.HTTP.UserAgent, cfg.HTTP.Timeout, cfg.HTTP.ProxyURL),
		limiter:   worker.NewLimiter(cfg.Concurrency.PerHostRPS, 1),
		store:     store,
		cacheTTL:  cfg.Cache.TTL,
		logger:    logger,
		gdprMode:  cfg.Privacy.GDPRMode,
		workers:   workers,
	}
}

// ScrapeAll fetches the given search results concurrently and returns
// the documents that survived extraction, in the input order. Failures
// are logged and dropped rather than failing the batch.
func (s *Scraper) ScrapeAll(ctx context.Context, results []model.SearchResult) []model.Document {
	docs := make([]*model.Document, len(results))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, result := range results {
		g.Go(func() error {
			doc, err := s.scrapeOne(gctx, result)
			if err != nil {
				s.logSkip(result.URL, err)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	_ = g.Wait()

	kept := make([]model.Document, 0, len(results))
	for _, doc := range docs {
		if doc != nil {
			kept = append(kept, *doc)
		}
	}

	s.logger.Info("scrape complete",
		zap.Int("attempted", len(results)),
		zap.Int("extracted", len(kept)))
	return kept
}

func (s *Scraper) scrapeOne(ctx context.Context, result model.SearchResult) (*model.Document, error) {
	if !Scrapable(result.URL) {
		metrics.RecordFetch(metrics.FetchSkipped)
		return nil, fmt.Errorf("%w: blocked source", ErrUnsupportedContent)
	}

	key := cache.CacheKey(result.URL)
	if s.store != nil {
		if raw, found := s.store.Get(key); found {
			var doc model.Document
			if err := json.Unmarshal(raw, &doc); err == nil {
				metrics.CacheHits.Inc()
				return &doc, nil
			}
			_ = s.store.Delete(key)
		}
		metrics.CacheMisses.Inc()
	}

	allowed, crawlDelay, err := s.robots.CanFetch(ctx, result.URL)
	if err != nil {
		metrics.RecordFetch(metrics.FetchError)
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		metrics.RecordFetch(metrics.FetchRobotsBlocked)
		return nil, ErrRobotsDisallowed
	}
	if crawlDelay > maxCrawlDelay {
		crawlDelay = maxCrawlDelay
	}

	if err := s.limiter.WaitWithDelay(ctx, result.URL, crawlDelay); err != nil {
		metrics.RecordFetch(metrics.FetchError)
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	doc, err := s.fetchExtract(ctx, result)
	if err != nil {
		metrics.RecordFetch(metrics.FetchError)
		return nil, err
	}
	metrics.RecordFetch(metrics.FetchOK)

	if s.store != nil {
		if raw, err := json.Marshal(doc); err == nil {
			_ = s.store.Set(key, raw, s.cacheTTL)
		}
	}
	return doc, nil
}

func (s *Scraper) fetchExtract(ctx context.Context, result model.SearchResult) (*model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, result.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		return nil, fmt.Errorf("content type %q: %w", contentType, ErrUnsupportedContent)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	page, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	text := ExtractContent(page, result.URL)
	if len(strings.TrimSpace(text)) < minContentLength {
		return nil, fmt.Errorf("%w: only %d chars extracted", ErrUnsupportedContent, len(strings.TrimSpace(text)))
	}
	if !SupportedLanguage(text) {
		return nil, fmt.Errorf("%w: unrecognized language", ErrUnsupportedContent)
	}

	title, published := ExtractMetadata(page, string(body))
	if title == "" {
		title = result.Title
	}
	if published == "" {
		published = result.Published
	}

	cleaned := CleanText(text)

	return &model.Document{
		URL:       result.URL,
		Title:     title,
		Text:      cleaned,
		Published: published,
		Domain:    result.Domain,
		WordCount: len(strings.Fields(cleaned)),
	}, nil
}

func (s *Scraper) logSkip(url string, err error) {
	if s.gdprMode {
		s.logger.Warn("page skipped", zap.Error(err))
		return
	}
	s.logger.Warn("page skipped", zap.String("url", url), zap.Error(err))
}
