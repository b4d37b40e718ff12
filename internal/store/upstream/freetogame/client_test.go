package freetogame

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/httpclient"
)

func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	inner := httpclient.New(cfg)
	cb := httpclient.NewCircuitBreakerClient(inner, httpclient.DefaultCircuitBreakerConfig("freetogame-test"), logger)

	return NewClient(cb, upstream.URL, nil, time.Minute, logger)
}

func TestClient_Games_ForwardsFilters(t *testing.T) {
	var gotQuery map[string][]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/games", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Example"}]`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	body, err := client.Games(context.Background(), GamesFilter{
		Platform: "pc",
		Category: "shooter",
		SortBy:   "popularity",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"title":"Example"}]`, string(body))

	assert.Equal(t, []string{"pc"}, gotQuery["platform"])
	assert.Equal(t, []string{"shooter"}, gotQuery["category"])
	assert.Equal(t, []string{"popularity"}, gotQuery["sort-by"])
}

func TestClient_Games_OmitsEmptyFilters(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.Games(context.Background(), GamesFilter{})
	require.NoError(t, err)
}

func TestClient_Game_NotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.Game(context.Background(), 999999)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// The message names the game id, not the upstream URL.
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "999999")
	assert.NotContains(t, appErr.Message, upstream.URL)
}

func TestClient_Game_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.Game(context.Background(), 1)
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
}
