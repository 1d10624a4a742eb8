package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrtgvr/statusboard/internal/domain"
)

func statusAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["a", 7, "with space"]`))
	})
	mux.HandleFunc("GET /status/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "a":
			_, _ = w.Write([]byte(`{"service_name":"A","status":"up"}`))
		case "7":
			_, _ = w.Write([]byte(`{"service_name":"Seven","status":"down"}`))
		case "with space":
			_, _ = w.Write([]byte(`{"service_name":"Spaced","status":"up"}`))
		case "broken":
			_, _ = w.Write([]byte(`not json`))
		default:
			http.Error(w, "Error checking service status", http.StatusInternalServerError)
		}
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTPClient_ServiceIDs(t *testing.T) {
	ts := statusAPI(t)
	c := NewHTTPClient(ts.URL+"/", time.Second)

	ids, err := c.ServiceIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.ServiceID{"a", "7", "with space"}, ids)
}

func TestHTTPClient_ServiceStatus(t *testing.T) {
	ts := statusAPI(t)
	c := NewHTTPClient(ts.URL, time.Second)

	st, err := c.ServiceStatus(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceStatus{ServiceName: "Seven", Status: "down"}, st)

	st, err = c.ServiceStatus(context.Background(), "with space")
	require.NoError(t, err)
	assert.Equal(t, "Spaced", st.ServiceName)
}

func TestHTTPClient_Errors(t *testing.T) {
	ts := statusAPI(t)
	c := NewHTTPClient(ts.URL, time.Second)

	_, err := c.ServiceStatus(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	_, err = c.ServiceStatus(context.Background(), "broken")
	assert.ErrorContains(t, err, "decode response")

	_, err = NewHTTPClient("http://127.0.0.1:1", time.Second).ServiceIDs(context.Background())
	assert.Error(t, err)
}

func TestHTTPClient_EndToEndCycle(t *testing.T) {
	ts := statusAPI(t)
	p, b, _ := newPoller(t, NewHTTPClient(ts.URL, time.Second), 2)

	require.NoError(t, p.PollOnce(context.Background()))

	rows := rowsByID(b.Snapshot())
	require.Len(t, rows, 3)
	assert.Equal(t, "Up", rows["a"].Label())
	assert.Equal(t, "Down", rows["7"].Label())
	assert.Equal(t, "Up", rows["with space"].Label())
}
