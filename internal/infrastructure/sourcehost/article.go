package sourcehost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Krosebrook/Flash-n-Frame/internal/domain/studio"
	"github.com/Krosebrook/Flash-n-Frame/internal/ports"
)

const (
	defaultArticleTimeout = 20 * time.Second
	maxArticleBytes       = 2 << 20 // 2 MiB is plenty for prompt assembly
)

var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	tagRe   = regexp.MustCompile(`(?s)<[^>]*>`)
	wsRe    = regexp.MustCompile(`\s+`)
)

type ArticleClient struct {
	http *http.Client
}

var _ ports.ArticleFetcher = (*ArticleClient)(nil)

// NewArticleClient builds a fetcher. A nil httpClient gets a default with
// a request timeout.
func NewArticleClient(httpClient *http.Client) *ArticleClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultArticleTimeout}
	}
	return &ArticleClient{http: httpClient}
}

func (c *ArticleClient) Fetch(ctx context.Context, url string) (ports.Article, error) {
	if ctx == nil {
		return ports.Article{}, errors.New("context is required")
	}
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return ports.Article{}, studio.ErrArticleURLRequired
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trimmed, nil)
	if err != nil {
		return ports.Article{}, fmt.Errorf("%w: %v", studio.ErrArticleURLRequired, err)
	}
	req.Header.Set("Accept", "text/html, text/plain;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Article{}, err
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return ports.Article{}, err
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBytes))
	if err != nil {
		return ports.Article{}, fmt.Errorf("read article body: %w", err)
	}

	html := string(raw)
	return ports.Article{
		URL:   trimmed,
		Title: extractTitle(html),
		Body:  stripMarkup(html),
	}, nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: article fetch status %d", studio.ErrPermissionDenied, code)
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("%w: article fetch status %d", studio.ErrNotFound, code)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: article fetch status %d", studio.ErrRateLimited, code)
	default:
		return fmt.Errorf("article fetch status %d", code)
	}
}

func extractTitle(html string) string {
	m := titleRe.FindStringSubmatch(html)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(wsRe.ReplaceAllString(m[1], " "))
}

// stripMarkup is a crude tag remover, good enough for feeding article
// text into a prompt; it is not a sanitizer.
func stripMarkup(html string) string {
	text := tagRe.ReplaceAllString(html, " ")
	return strings.TrimSpace(wsRe.ReplaceAllString(text, " "))
}
