// Package freetogame proxies the FreeToGame public API, shielding it with a
// circuit breaker and a short-lived Redis cache.
package freetogame

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/httpclient"
)

// DefaultBaseURL is the public FreeToGame API root.
const DefaultBaseURL = "https://www.freetogame.com/api"

// GamesFilter carries the optional query parameters forwarded upstream.
type GamesFilter struct {
	Platform string
	Category string
	SortBy   string
}

// Client fetches game data from the FreeToGame API. Responses are passed
// through verbatim as JSON, so upstream schema changes never break us.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	cache   *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
}

// NewClient creates a FreeToGame API client. The cache client may be nil,
// in which case every request goes upstream.
func NewClient(http *httpclient.CircuitBreakerClient, baseURL string, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    http,
		baseURL: baseURL,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Games returns the raw JSON list of games, filtered by the given
// parameters. Empty filter fields are omitted from the upstream query.
func (c *Client) Games(ctx context.Context, filter GamesFilter) ([]byte, error) {
	query := url.Values{}
	if filter.Platform != "" {
		query.Set("platform", filter.Platform)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.SortBy != "" {
		query.Set("sort-by", filter.SortBy)
	}

	endpoint := c.baseURL + "/games"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	return c.fetch(ctx, endpoint, "f2p:games:"+query.Encode(), "")
}

// Game returns the raw JSON detail for a single game.
func (c *Client) Game(ctx context.Context, id int) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/game?id=%d", c.baseURL, id)
	return c.fetch(ctx, endpoint, "f2p:game:"+strconv.Itoa(id), strconv.Itoa(id))
}

// fetch serves from cache when possible, otherwise goes upstream and
// stores the response. Cache failures are logged and ignored. gameID is
// used in the not-found message; when empty, an upstream 404 is treated
// like any other unexpected status.
func (c *Client) fetch(ctx context.Context, endpoint, cacheKey, gameID string) ([]byte, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			c.logger.DebugContext(ctx, "freetogame cache hit", slog.String("key", cacheKey))
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "freetogame cache read failed",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.Upstream(fmt.Errorf("freetogame temporarily unavailable: %w", err))
		}
		return nil, apperrors.Upstream(fmt.Errorf("freetogame request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream(fmt.Errorf("read freetogame response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound && gameID != "":
		return nil, apperrors.NotFound("game", gameID)
	default:
		return nil, apperrors.Upstream(fmt.Errorf("freetogame returned status %d", resp.StatusCode))
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "freetogame cache write failed",
				slog.String("key", cacheKey),
				slog.String("error", err.Error()),
			)
		}
	}

	return body, nil
}
