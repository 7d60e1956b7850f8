package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/publicsuffix"

	"github.com/umputun/newsnearme/pkg/config"
	dmocks "github.com/umputun/newsnearme/pkg/dashboard/mocks"
	"github.com/umputun/newsnearme/pkg/domain"
	"github.com/umputun/newsnearme/server/mocks"
)

// testConfig returns a config provider with default settings, modified by opts
func testConfig(t *testing.T, opts ...func(cfg *config.Config)) *mocks.ConfigProviderMock {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	for _, o := range opts {
		o(cfg)
	}
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return cfg.Server.Listen, cfg.Server.Timeout },
		GetFullConfigFunc:   func() *config.Config { return cfg },
	}
}

// healthyAPI returns API mock answering every call successfully
func healthyAPI() *dmocks.APIMock {
	return &dmocks.APIMock{
		HealthFunc: func(context.Context) (domain.HealthStatus, json.RawMessage, error) {
			return domain.HealthStatus{Status: "healthy"}, json.RawMessage(`{"status":"healthy"}`), nil
		},
		CategoriesFunc: func(context.Context) ([]domain.Category, json.RawMessage, error) {
			return []domain.Category{{Value: "local"}, {Value: "sports"}},
				json.RawMessage(`[{"value":"local"},{"value":"sports"}]`), nil
		},
		LocationFunc: func(context.Context) (domain.Location, json.RawMessage, error) {
			return domain.Location{City: "Lima", Region: "Lima", Country: "Peru", Timezone: "America/Lima"},
				json.RawMessage(`{"city":"Lima","region":"Lima","country":"Peru","timezone":"America/Lima"}`), nil
		},
		SearchFunc: func(_ context.Context, q domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
			news := make([]domain.NewsItem, 0, q.Limit)
			for i := 1; i <= q.Limit; i++ {
				news = append(news, domain.NewsItem{ID: domain.ItemID(fmt.Sprint(i)), Category: "local",
					Title: fmt.Sprintf("News %d", i), RelevanceScore: 7, LocationContext: "Lima"})
			}
			raw, err := json.Marshal(domain.NewsResponse{News: news})
			return news, raw, err
		},
		SearchCustomFunc: func(context.Context, domain.NewsQuery) ([]domain.NewsItem, json.RawMessage, error) {
			return []domain.NewsItem{}, json.RawMessage(`{"news":[]}`), nil
		},
	}
}

// startServer runs the server router on httptest server
func startServer(t *testing.T, srv *Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(srv.router)
	t.Cleanup(ts.Close)
	return ts
}

// newBrowser returns a client keeping cookies like a browser does
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

// readDoc parses HTML response body
func readDoc(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(t), healthyAPI(), "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.NotNil(t, srv.templates.Lookup(templatePage))
	assert.NotNil(t, srv.templates.Lookup(templateDashboard))
	assert.Zero(t, srv.sessions.Count())
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig(t, func(cfg *config.Config) { cfg.Server.Listen = fmt.Sprintf("127.0.0.1:%d", port) })
	srv := New(cfg, healthyAPI(), "test", true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:gosec // test url
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_RunListenError(t *testing.T) {
	cfg := testConfig(t, func(cfg *config.Config) { cfg.Server.Listen = "bad-address" })
	srv := New(cfg, healthyAPI(), "test", false)
	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestServer_Static(t *testing.T) {
	ts := startServer(t, New(testConfig(t), healthyAPI(), "test", false))

	resp, err := http.Get(ts.URL + "/static/style.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")

	resp404, err := http.Get(ts.URL + "/static/missing.js")
	require.NoError(t, err)
	defer resp404.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp404.StatusCode)
}

func TestServer_AppInfo(t *testing.T) {
	ts := startServer(t, New(testConfig(t), healthyAPI(), "1.2.3", false))

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "newsnearme", resp.Header.Get("App-Name"))
	assert.Equal(t, "1.2.3", resp.Header.Get("App-Version"))
}
