// Package stats fetches Bedwars leaderboard stats for single players.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"
)

// Defaults for the public stats service.
const (
	DefaultBaseURL  = "https://stats.pika-network.net"
	DefaultType     = "bedwars"
	DefaultInterval = "total"
	DefaultMode     = "ALL_MODES"
)

// ErrMalformedResponse is returned when a successful response is not a JSON
// object.
var ErrMalformedResponse = errors.New("malformed stats response")

// Client queries the leaderboard endpoint of the stats service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	gameType   string
	interval   string
	mode       string
	userAgent  string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL sets the scheme and host of the stats service.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithType sets the leaderboard game type. Default: bedwars.
func WithType(t string) Option {
	return func(c *Client) {
		c.gameType = t
	}
}

// WithInterval sets the aggregation interval. Default: total.
func WithInterval(interval string) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

// WithMode sets the game mode. Default: ALL_MODES.
func WithMode(mode string) Option {
	return func(c *Client) {
		c.mode = mode
	}
}

// WithTimeout bounds each request. Zero (default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the slog logger. Nil disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client with the service defaults applied before opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: cleanhttp.DefaultPooledClient(),
		baseURL:    DefaultBaseURL,
		gameType:   DefaultType,
		interval:   DefaultInterval,
		mode:       DefaultMode,
		userAgent:  "bwoverlay",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// URL returns the leaderboard URL for a player.
func (c *Client) URL(name string) string {
	q := url.Values{}
	q.Set("type", c.gameType)
	q.Set("interval", c.interval)
	q.Set("mode", c.mode)
	return fmt.Sprintf("%s/api/profile/%s/leaderboard?%s", c.baseURL, url.PathEscape(name), q.Encode())
}

// Fetch performs one request for name.
//
// A non-200 status is not an error: it yields the NotFoundStats placeholder.
// Transport failures and undecodable 200 bodies are returned as errors.
func (c *Client) Fetch(ctx context.Context, name string) (PlayerStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(name), nil)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("building request for %q: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("fetching stats for %q: %w", name, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("stats response", "player", name, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return NotFoundStats(name), nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("reading stats for %q: %w", name, err)
	}

	ps, err := ParseLeaderboard(name, body)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("decoding stats for %q: %w", name, err)
	}
	return ps, nil
}

// ParseLeaderboard flattens a leaderboard response into PlayerStats.
// Categories keep the order of the response; each takes the value of its
// first entry, or NoData when the category has no entries.
func ParseLeaderboard(name string, body []byte) (PlayerStats, error) {
	if !gjson.ValidBytes(body) {
		return PlayerStats{}, fmt.Errorf("%w: invalid JSON", ErrMalformedResponse)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return PlayerStats{}, fmt.Errorf("%w: expected object, got %s", ErrMalformedResponse, doc.Type)
	}

	var fields []Field
	doc.ForEach(func(key, details gjson.Result) bool {
		fields = append(fields, Field{Key: key.String(), Value: firstEntryValue(details)})
		return true
	})

	return NewPlayerStats(name, fields...), nil
}

func firstEntryValue(details gjson.Result) any {
	entries := details.Get("entries")
	if !entries.IsArray() {
		return NoData
	}
	list := entries.Array()
	if len(list) == 0 {
		return NoData
	}
	value := list[0].Get("value")
	switch value.Type {
	case gjson.Number:
		return value.Num
	case gjson.String:
		return value.Str
	case gjson.Null:
		return NoData
	default:
		if !value.Exists() {
			return NoData
		}
		return value.String()
	}
}
