package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/interpretive-systems/imagetool/internal/logger"
)

// ErrNetwork is returned when a catalog request fails in transport or with
// an error status.
var ErrNetwork = errors.New("catalog request failed")

const (
	DefaultAPIURL     = "https://api.unsplash.com"
	DefaultMaxResults = 40
	defaultTimeout    = 10 * time.Second
)

// Config holds the catalog options recognized by the widget.
type Config struct {
	APIURL     string
	ClientID   string
	MaxResults int
	AppName    string
	Timeout    time.Duration
}

// Searcher is the part of Client the search workflow depends on.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (Page, error)
}

// Notifier records that a catalog image was used.
type Notifier interface {
	NotifyDownloadAsync(location string)
}

// Client talks to the photo catalog. It holds no per-search state.
type Client struct {
	http  *resty.Client
	cfg   Config
	cache PageCache
	log   *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCache stores raw page bodies in cache.
func WithCache(cache PageCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l.Component("catalog") }
}

// WithHTTPClient replaces the underlying resty client.
func WithHTTPClient(rc *resty.Client) Option {
	return func(c *Client) { c.http = rc }
}

// New creates a client, applying defaults for missing options.
func New(cfg Config, opts ...Option) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	c := &Client{
		cfg: cfg,
		log: logger.Discard().Component("catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = resty.New()
	}
	c.http.SetTimeout(cfg.Timeout)
	c.http.SetHeader("Accept-Version", "v1")
	return c
}

// Search fetches one page of results for query.
func (c *Client) Search(ctx context.Context, query string, page int) (Page, error) {
	if page < 1 {
		page = 1
	}
	params := map[string]string{
		"client_id": c.cfg.ClientID,
		"query":     query,
		"page":      strconv.Itoa(page),
		"per_page":  strconv.Itoa(c.cfg.MaxResults),
	}
	log := c.log.WithFields(logger.Fields{logger.FieldQuery: query, logger.FieldPage: page})

	key := cacheKey(query, page, c.cfg.MaxResults)
	body, hit := c.cachedBody(key)
	if !hit {
		start := time.Now()
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(c.cfg.APIURL + "/search/photos")
		if err != nil {
			log.WithError(err).Warn("search request failed")
			return Page{}, fmt.Errorf("%w: search %q: %v", ErrNetwork, query, err)
		}
		if resp.IsError() {
			log.WithField(logger.FieldStatus, resp.StatusCode()).Warn("search returned error status")
			return Page{}, fmt.Errorf("%w: search %q: status %d", ErrNetwork, query, resp.StatusCode())
		}
		body = resp.Body()
		log.WithField(logger.FieldDurationMs, time.Since(start).Milliseconds()).Debug("search response")
		if c.cache != nil {
			if err := c.cache.Put(key, body); err != nil {
				log.WithError(err).Warn("page cache write failed")
			}
		}
	}

	var raw rawSearch
	if err := json.Unmarshal(body, &raw); err != nil {
		return Page{}, fmt.Errorf("%w: decode search response: %v", ErrNetwork, err)
	}
	return buildPage(raw, page, query, c.cfg.AppName), nil
}

func (c *Client) cachedBody(key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(key)
	if err != nil {
		c.log.WithError(err).Warn("page cache read failed")
		return nil, false
	}
	return body, ok
}

// NotifyDownload hits the download location of a selected photo.
func (c *Client) NotifyDownload(ctx context.Context, location string) error {
	if location == "" {
		return fmt.Errorf("%w: empty download location", ErrNetwork)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("client_id", c.cfg.ClientID).
		Get(location)
	if err != nil {
		return fmt.Errorf("%w: notify download: %v", ErrNetwork, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: notify download: status %d", ErrNetwork, resp.StatusCode())
	}
	return nil
}

// NotifyDownloadAsync fires NotifyDownload on its own goroutine. Failures are
// logged and never reported to the caller.
func (c *Client) NotifyDownloadAsync(location string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
		defer cancel()
		if err := c.NotifyDownload(ctx, location); err != nil {
			c.log.WithError(err).WithField(logger.FieldURL, location).Warn("download notification failed")
		}
	}()
}
