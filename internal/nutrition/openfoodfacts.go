package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fitnesshub/backend/internal/apperrors"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
)

const (
	DefaultBaseURL   = "https://world.openfoodfacts.org"
	DefaultUserAgent = "fithub-backend/1.0 (+https://github.com/fitnesshub/backend)"

	defaultCacheSizeMB = 64
	defaultCacheTTL    = time.Hour
	maxResponseBytes   = 5 << 20
)

type ClientParams struct {
	BaseURL     string
	UserAgent   string
	HTTPClient  *http.Client
	CacheSizeMB int
	CacheTTL    time.Duration
}

// Client fetches raw product records from Open Food Facts. Successful
// responses are kept in an in-process cache.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cache      *freecache.Cache
	cacheTTL   time.Duration
}

func NewClient(params ClientParams) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(params.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := params.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	cacheSizeMB := params.CacheSizeMB
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	cacheTTL := params.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		cache:      freecache.NewCache(cacheSizeMB * 1024 * 1024),
		cacheTTL:   cacheTTL,
	}
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (_ *RawProduct, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "openfoodfacts.lookupBarcode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	body, err := c.get(ctx, fmt.Sprintf("%s/api/v2/product/%s.json", c.baseURL, url.PathEscape(barcode)))
	if err != nil {
		return nil, err
	}

	var parsed productResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode openfoodfacts response: %s", apperrors.ErrUpstream, err)
	}
	if parsed.Status != 1 {
		return nil, apperrors.ErrNotFound
	}
	if parsed.Product.Code == "" {
		parsed.Product.Code = barcode
	}

	return &parsed.Product, nil
}

func (c *Client) Search(ctx context.Context, query string, limit int) (_ []RawProduct, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "openfoodfacts.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("query", query), attribute.Int("limit", limit))

	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		c.baseURL,
		url.QueryEscape(strings.TrimSpace(query)),
		limit,
	)
	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decode openfoodfacts search response: %s", apperrors.ErrUpstream, err)
	}

	return parsed.Products, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	cacheKey := []byte(u)
	if cached, err := c.cache.Get(cacheKey); err == nil {
		log.Tracef("openfoodfacts cache hit: %s", u)
		return cached, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("openfoodfacts cache get %s: %s", u, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: openfoodfacts request: %s", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read openfoodfacts response: %s", apperrors.ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: openfoodfacts responded with status %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	if err := c.cache.Set(cacheKey, body, int(c.cacheTTL.Seconds())); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			log.Debugf("openfoodfacts response for %s too large to cache (%d bytes)", u, len(body))
		} else {
			log.Errorf("openfoodfacts cache set %s: %s", u, err)
		}
	}

	return body, nil
}
