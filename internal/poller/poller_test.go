package poller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrtgvr/statusboard/internal/board"
	"github.com/wrtgvr/statusboard/internal/config"
	"github.com/wrtgvr/statusboard/internal/domain"
	"github.com/wrtgvr/statusboard/internal/metrics"
)

type fakeClient struct {
	mu       sync.Mutex
	ids      []domain.ServiceID
	listErr  error
	statuses map[domain.ServiceID]domain.ServiceStatus
	failIDs  map[domain.ServiceID]bool
	// blocks ServiceStatus for an id until the channel is closed
	gates map[domain.ServiceID]chan struct{}
	// blocks the next ServiceIDs call until closed
	listGate chan struct{}

	listCalls   atomic.Int32
	statusCalls atomic.Int32
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (f *fakeClient) ServiceIDs(ctx context.Context) ([]domain.ServiceID, error) {
	f.mu.Lock()
	listErr := f.listErr
	ids := make([]domain.ServiceID, len(f.ids))
	copy(ids, f.ids)
	gate := f.listGate
	f.listGate = nil
	f.mu.Unlock()
	f.listCalls.Add(1)

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if listErr != nil {
		return nil, listErr
	}
	return ids, nil
}

func (f *fakeClient) ServiceStatus(ctx context.Context, id domain.ServiceID) (domain.ServiceStatus, error) {
	f.statusCalls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}

	f.mu.Lock()
	gate := f.gates[id]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.ServiceStatus{}, ctx.Err()
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return domain.ServiceStatus{}, errors.New("status fetch failed")
	}
	st, ok := f.statuses[id]
	if !ok {
		return domain.ServiceStatus{}, errors.New("unknown service")
	}
	return st, nil
}

func (f *fakeClient) setIDs(ids ...domain.ServiceID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = ids
}

func newFake() *fakeClient {
	return &fakeClient{
		ids: []domain.ServiceID{"a", "b"},
		statuses: map[domain.ServiceID]domain.ServiceStatus{
			"a": {ServiceName: "A", Status: "up"},
			"b": {ServiceName: "B", Status: "down"},
		},
		failIDs: map[domain.ServiceID]bool{},
		gates:   map[domain.ServiceID]chan struct{}{},
	}
}

func newPoller(t *testing.T, client Client, workers int) (*Poller, *board.Board, *metrics.Metrics) {
	t.Helper()
	b := board.New()
	m := metrics.New()
	p, err := New(&config.PollerConfig{Interval: time.Hour, Workers: workers}, client, b, m)
	require.NoError(t, err)
	t.Cleanup(p.Stop)
	return p, b, m
}

func rowsByID(snap board.Snapshot) map[string]board.Row {
	out := make(map[string]board.Row, len(snap.Rows))
	for _, r := range snap.Rows {
		out[r.ID] = r
	}
	return out
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(&config.PollerConfig{Interval: 0, Workers: 1}, newFake(), board.New(), metrics.New())
	assert.Error(t, err)

	_, err = New(&config.PollerConfig{Interval: time.Second, Workers: 0}, newFake(), board.New(), metrics.New())
	assert.Error(t, err)
}

func TestPollOnce_UpAndDownRows(t *testing.T) {
	p, b, _ := newPoller(t, newFake(), 4)

	require.NoError(t, p.PollOnce(context.Background()))

	snap := b.Snapshot()
	require.Len(t, snap.Rows, 2)
	assert.True(t, snap.Settled)

	rows := rowsByID(snap)
	assert.Equal(t, "A", rows["a"].Name)
	assert.Equal(t, "Up", rows["a"].Label())
	assert.Equal(t, board.ColorUp, rows["a"].IndicatorColor())
	assert.Equal(t, "B", rows["b"].Name)
	assert.Equal(t, "Down", rows["b"].Label())
	assert.Equal(t, board.ColorDown, rows["b"].IndicatorColor())
}

func TestPollOnce_EmptyList(t *testing.T) {
	fake := newFake()
	fake.setIDs()
	p, b, _ := newPoller(t, fake, 4)

	require.NoError(t, p.PollOnce(context.Background()))

	assert.Empty(t, b.Snapshot().Rows)
	assert.True(t, b.Snapshot().Settled)
	assert.Equal(t, int32(0), fake.statusCalls.Load())
}

func TestPollOnce_ListFailureClearsTable(t *testing.T) {
	fake := newFake()
	p, b, m := newPoller(t, fake, 4)

	// a previous good cycle
	require.NoError(t, p.PollOnce(context.Background()))
	require.Len(t, b.Snapshot().Rows, 2)
	calls := fake.statusCalls.Load()

	fake.mu.Lock()
	fake.listErr = errors.New("connection refused")
	fake.mu.Unlock()

	err := p.PollOnce(context.Background())
	require.Error(t, err)

	assert.Empty(t, b.Snapshot().Rows)
	assert.Equal(t, calls, fake.statusCalls.Load())
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP statusboard_poll_cycles_total Poll cycles by outcome of the identifier list fetch.
# TYPE statusboard_poll_cycles_total counter
statusboard_poll_cycles_total{result="list_error"} 1
statusboard_poll_cycles_total{result="ok"} 1
`), "statusboard_poll_cycles_total"))
}

func TestPollOnce_FailedStatusIsOmitted(t *testing.T) {
	fake := newFake()
	fake.setIDs("a", "b", "c")
	fake.statuses["c"] = domain.ServiceStatus{ServiceName: "C", Status: "up"}
	fake.failIDs["b"] = true
	p, b, _ := newPoller(t, fake, 4)

	require.NoError(t, p.PollOnce(context.Background()))

	rows := rowsByID(b.Snapshot())
	assert.Len(t, rows, 2)
	assert.Contains(t, rows, "a")
	assert.Contains(t, rows, "c")
	assert.NotContains(t, rows, "b")
}

func TestPollOnce_Idempotent(t *testing.T) {
	p, b, _ := newPoller(t, newFake(), 4)

	require.NoError(t, p.PollOnce(context.Background()))
	first := b.Snapshot()
	require.NoError(t, p.PollOnce(context.Background()))
	second := b.Snapshot()

	assert.Greater(t, second.Generation, first.Generation)
	assert.ElementsMatch(t, first.Rows, second.Rows)
}

func TestPollOnce_StaleResultsAreDiscarded(t *testing.T) {
	fake := newFake()
	gate := make(chan struct{})
	fake.gates["a"] = gate
	p, b, m := newPoller(t, fake, 4)

	// first cycle stalls on "a"
	p.Trigger(context.Background())
	require.Eventually(t, func() bool { return fake.statusCalls.Load() == 2 }, time.Second, 5*time.Millisecond)

	// second cycle sees only "b"
	fake.mu.Lock()
	fake.ids = []domain.ServiceID{"b"}
	delete(fake.gates, "a")
	fake.mu.Unlock()
	require.NoError(t, p.PollOnce(context.Background()))

	close(gate)
	p.Wait()

	snap := b.Snapshot()
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "b", snap.Rows[0].ID)
	assert.True(t, snap.Settled)
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP statusboard_stale_results_total Status results dropped because a newer cycle had started.
# TYPE statusboard_stale_results_total counter
statusboard_stale_results_total 1
`), "statusboard_stale_results_total"))
}

func TestPollOnce_LateListDoesNotReplaceNewerCycle(t *testing.T) {
	fake := newFake()
	fake.statuses["removed"] = domain.ServiceStatus{ServiceName: "Removed", Status: "up"}
	fake.statuses["current"] = domain.ServiceStatus{ServiceName: "Current", Status: "up"}
	fake.setIDs("removed")
	hold := make(chan struct{})
	fake.listGate = hold
	p, b, _ := newPoller(t, fake, 4)

	// first cycle stalls on its id list
	p.Trigger(context.Background())
	require.Eventually(t, func() bool { return fake.listCalls.Load() == 1 }, time.Second, 5*time.Millisecond)

	fake.setIDs("current")
	require.NoError(t, p.PollOnce(context.Background()))

	close(hold)
	p.Wait()

	snap := b.Snapshot()
	assert.Equal(t, uint64(2), b.Generation())
	assert.True(t, snap.Settled)
	require.Len(t, snap.Rows, 1)
	assert.Equal(t, "current", snap.Rows[0].ID)
	assert.Equal(t, int32(1), fake.statusCalls.Load())
}

func TestTrigger_ReentryDoesNotCrash(t *testing.T) {
	fake := newFake()
	fake.delay = 5 * time.Millisecond
	p, b, _ := newPoller(t, fake, 4)

	p.Trigger(context.Background())
	p.Trigger(context.Background())
	p.Wait()

	snap := b.Snapshot()
	assert.Equal(t, uint64(2), snap.Generation)
	assert.True(t, snap.Settled)
	assert.Len(t, snap.Rows, 2)
}

func TestPollOnce_BoundedConcurrency(t *testing.T) {
	fake := newFake()
	ids := make([]domain.ServiceID, 0, 20)
	for i := 0; i < 20; i++ {
		id := domain.ServiceID(string(rune('a' + i)))
		ids = append(ids, id)
		fake.statuses[id] = domain.ServiceStatus{ServiceName: id.String(), Status: "up"}
	}
	fake.setIDs(ids...)
	fake.delay = 10 * time.Millisecond
	p, b, _ := newPoller(t, fake, 3)

	require.NoError(t, p.PollOnce(context.Background()))

	assert.Len(t, b.Snapshot().Rows, 20)
	assert.LessOrEqual(t, fake.maxInFlight.Load(), int32(3))
}

func TestRun_PollsImmediatelyAndStops(t *testing.T) {
	fake := newFake()
	p, b, _ := newPoller(t, fake, 2)
	updates, cancelSub := b.Subscribe()
	defer cancelSub()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case snap := <-updates:
		assert.Len(t, snap.Rows, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no cycle ran on start")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, int32(1), fake.listCalls.Load())
}
