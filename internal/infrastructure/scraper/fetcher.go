// Package scraper baixa páginas de terceiros e extrai delas resumo, texto
// visível e problemas de SEO.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/rafabene/aeo-studio/internal/domain/ports"
)

// limiterIdleTTL é quanto um host pode ficar sem requisições antes de seu
// limiter ser descartado. Um limiter ocioso por tanto tempo já está cheio,
// então recriá-lo depois não muda o ritmo.
const limiterIdleTTL = 10 * time.Minute

// Options configura o HTTPFetcher
type Options struct {
	DefaultTimeout    time.Duration
	DefaultUserAgent  string
	RequestsPerSecond float64
	MaxBodyBytes      int64
}

// HTTPFetcher implementa ports.PageFetcher sobre net/http, com um
// rate limiter por host para não martelar o mesmo site.
type HTTPFetcher struct {
	client    *http.Client
	opts      Options
	mu        sync.Mutex
	limiters  map[string]*hostLimiter
	lastSweep time.Time
	now       func() time.Time
	logger    ports.Logger
}

type hostLimiter struct {
	limiter  *rate.Limiter
	lastUsed time.Time
}

// NewHTTPFetcher cria um fetcher; client nil usa um http.Client próprio
func NewHTTPFetcher(client *http.Client, opts Options, logger ports.Logger) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 5 << 20
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 15 * time.Second
	}

	return &HTTPFetcher{
		client:   client,
		opts:     opts,
		limiters: make(map[string]*hostLimiter),
		now:      time.Now,
		logger:   logger,
	}
}

func (f *HTTPFetcher) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if now.Sub(f.lastSweep) >= limiterIdleTTL {
		f.sweepIdle(now)
	}

	l, ok := f.limiters[host]
	if !ok {
		l = &hostLimiter{limiter: rate.NewLimiter(rate.Limit(f.opts.RequestsPerSecond), 1)}
		f.limiters[host] = l
	}
	l.lastUsed = now
	return l.limiter
}

// sweepIdle remove limiters sem uso há mais de limiterIdleTTL; chamar com mu travado
func (f *HTTPFetcher) sweepIdle(now time.Time) {
	for host, l := range f.limiters {
		if now.Sub(l.lastUsed) >= limiterIdleTTL {
			delete(f.limiters, host)
		}
	}
	f.lastSweep = now
}

// Fetch baixa rawURL. Erros de rede são devolvidos; status não-2xx vem em Page.Status.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, opts ports.FetchOptions) (*ports.Page, error) {
	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" {
		return nil, fmt.Errorf("invalid url %q", rawURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = f.opts.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := f.limiter(strings.ToLower(target.Hostname())).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = f.opts.DefaultUserAgent
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp, f.opts.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	f.logger.Debug("page fetched",
		"url", target.String(),
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &ports.Page{
		URL:    resp.Request.URL.String(),
		Status: resp.StatusCode,
		HTML:   body,
	}, nil
}

// readBody decodifica para UTF-8 conforme o Content-Type e limita o tamanho
func readBody(resp *http.Response, limit int64) (string, error) {
	var r io.Reader = io.LimitReader(resp.Body, limit)

	if decoded, err := charset.NewReader(r, resp.Header.Get("Content-Type")); err == nil {
		r = decoded
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
