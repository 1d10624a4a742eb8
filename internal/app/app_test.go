package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrtgvr/statusboard/internal/board"
	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/logger"
	"github.com/wrtgvr/statusboard/internal/storage"
)

func serviceFor(t *testing.T, id, name, rawURL string) domain.Service {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return domain.Service{ID: id, Name: name, Address: u.Hostname(), Port: port, Protocol: u.Scheme}
}

func TestAppPollsItsOwnStatusAPI(t *testing.T) {
	logger.SetOutput(io.Discard)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := New(ctx, Settings{
		Server: &config.ServerConfig{
			ResponseTimeout: 5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Poller: &config.PollerConfig{
			BaseURL:        baseURL,
			Interval:       config.PollInterval,
			RequestTimeout: 5 * time.Second,
			Workers:        4,
		},
		Probe: &config.ProbeConfig{Timeout: time.Second, Concurrency: 4},
		Services: []domain.Service{
			serviceFor(t, "web", "Web", upstream.URL),
			{ID: "db", Name: "Database", Address: "127.0.0.1", Port: 1, Protocol: domain.ProtocolHTTP},
		},
		Storage: storage.NewMemoryStorage(10),
	})
	require.NoError(t, err)
	defer a.Close()

	updates, unsubscribe := a.Board().Subscribe()
	defer unsubscribe()

	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	var snap board.Snapshot
	select {
	case snap = <-updates:
	case <-time.After(10 * time.Second):
		t.Fatal("first poll cycle did not settle")
	}

	require.True(t, snap.Settled)
	require.Len(t, snap.Rows, 2)
	byID := map[string]board.Row{}
	for _, row := range snap.Rows {
		byID[row.ID] = row
	}
	assert.Equal(t, board.Row{ID: "web", Name: "Web", Status: domain.StatusUp, Up: true}, byID["web"])
	assert.Equal(t, board.Row{ID: "db", Name: "Database", Status: domain.StatusDown, Up: false}, byID["db"])

	resp, err := http.Get(baseURL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `id="statusTable"`)
	assert.Contains(t, string(body), board.ColorUp)
	assert.Contains(t, string(body), board.ColorDown)

	resp, err = http.Get(baseURL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not shut down")
	}
}
