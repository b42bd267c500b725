// Package scraper fetches the booking-result page. It is the only
// component that touches the network; everything downstream operates
// on the returned document text.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ysadouski/rwsched/config"
	"github.com/ysadouski/rwsched/models"
)

const pageCacheSize = 8

// Fetcher wraps the colly collector and retry logic for route fetches.
// Fetched pages are cached per URL for the lifetime of the process, so
// commands that need the same page twice fetch it once.
type Fetcher struct {
	cfg       *config.Config
	collector *colly.Collector
	cache     *lru.Cache[string, string]
	Metrics   *Metrics

	// Visits are sequential; the mutex guards the per-visit capture
	// fields against the collector's handler goroutine. Captures are
	// bound to the call, not keyed by URL: after a redirect the
	// response URL no longer matches the one that was requested.
	mu       sync.Mutex
	body     string
	gotBody  bool
	visitErr error

	handlersOnce sync.Once
}

// New builds a fetcher instance configured from cfg.
func New(cfg *config.Config) (*Fetcher, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
	)
	collector.AllowURLRevisit = true
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	cache, err := lru.New[string, string](pageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}

	return &Fetcher{
		cfg:       cfg,
		collector: collector,
		cache:     cache,
		Metrics:   NewMetrics(),
	}, nil
}

// Fetch retrieves one page, retrying with capped exponential backoff.
// The returned FetchResult carries per-call counters for the summary.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, *models.FetchResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := &models.FetchResult{ErrorsByType: make(map[string]int)}

	if body, ok := f.cache.Get(pageURL); ok {
		f.Metrics.IncCacheHit()
		result.FromCache = true
		slog.Debug("page cache hit", slog.String("url", pageURL))
		return body, result, nil
	}

	f.configureHandlers()

	var lastErr error
	for attempt := 0; attempt <= f.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			f.Metrics.IncRetries()
			result.RetryCount++
			select {
			case <-ctx.Done():
				return "", result, ctx.Err()
			case <-time.After(f.backoff(attempt)):
			}
			slog.Debug("retrying fetch",
				slog.String("url", pageURL),
				slog.Int("attempt", attempt),
			)
		}

		result.RequestCount++
		body, err := f.visit(pageURL)
		if err == nil {
			f.cache.Add(pageURL, body)
			return body, result, nil
		}

		lastErr = err
		result.ErrorCount++
		label := errorTypeLabel(err)
		result.ErrorsByType[label]++
		f.Metrics.IncError(label)
		slog.Error("request error",
			slog.String("url", pageURL),
			slog.String("category", label),
			slog.Any("error", err),
		)
	}

	return "", result, fmt.Errorf("fetch %s: %w", pageURL, lastErr)
}

func (f *Fetcher) visit(pageURL string) (string, error) {
	f.mu.Lock()
	f.body = ""
	f.gotBody = false
	f.visitErr = nil
	f.mu.Unlock()

	visitErr := f.collector.Visit(pageURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	// The OnError handler saw the response status, so its classified
	// error beats whatever Visit returned.
	if f.visitErr != nil {
		return "", f.visitErr
	}
	if visitErr != nil {
		return "", classifyError(visitErr, 0)
	}
	if !f.gotBody {
		return "", fmt.Errorf("no response body for %s", pageURL)
	}
	return f.body, nil
}

func (f *Fetcher) configureHandlers() {
	f.handlersOnce.Do(func() {
		f.collector.OnRequest(func(r *colly.Request) {
			r.Ctx.Put("start", time.Now())
			f.Metrics.IncRequest("started")
			slog.Debug("fetching", slog.String("url", r.URL.String()))
		})

		f.collector.OnResponse(func(r *colly.Response) {
			if start, ok := r.Ctx.GetAny("start").(time.Time); ok {
				f.Metrics.ObserveDuration(time.Since(start))
			}
			f.mu.Lock()
			f.body = string(r.Body)
			f.gotBody = true
			f.mu.Unlock()
		})

		f.collector.OnError(func(r *colly.Response, err error) {
			statusCode := 0
			if r != nil {
				statusCode = r.StatusCode
			}
			f.mu.Lock()
			f.visitErr = classifyError(err, statusCode)
			f.mu.Unlock()
		})
	})
}

// backoff doubles per attempt up to the configured cap.
func (f *Fetcher) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	base := f.cfg.RetryBackoff
	if base <= 0 {
		base = 100 * time.Millisecond
	}

	delay := base * time.Duration(1<<(attempt-1))
	if max := f.cfg.RetryBackoffMax; max > 0 && delay > max {
		delay = max
	}
	return delay
}
