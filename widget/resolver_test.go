package widget

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverSuccessAppliesDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tenant-1", r.URL.Query().Get("uid"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"business_name": "Acme Plumbing", "sales_rep_name": ""}`))
	}))
	defer srv.Close()

	sched := newManualScheduler()
	r := newResolver(srv.URL, "tenant-1", srv.Client(), sched)

	done := make(chan Config, 1)
	r.start(func(cfg Config, ok bool) {
		assert.True(t, ok)
		done <- cfg
	})

	select {
	case cfg := <-done:
		// No field is left unset: empty fields fall back to defaults.
		assert.Equal(t, "Acme Plumbing", cfg.BusinessName)
		assert.Equal(t, "#2563eb", cfg.PrimaryColor)
		assert.Equal(t, "tenant-1", cfg.UID)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution did not complete")
	}

	assert.Equal(t, 0, r.retry.Attempt, "retry state resets on success")
	assert.Equal(t, 0, sched.pending(), "no retry scheduled on success")
}

func TestResolverExhaustsRetriesWithBackoff(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sched := newManualScheduler()
	r := newResolver(srv.URL, "tenant-1", srv.Client(), sched)

	done := make(chan Config, 1)
	r.start(func(cfg Config, ok bool) {
		assert.False(t, ok)
		done <- cfg
	})

	// Attempt 1 fails and schedules the first retry.
	require.Eventually(t, func() bool { return sched.pending() == 1 }, 5*time.Second, 5*time.Millisecond)
	delay1, fired := sched.fireNext()
	require.True(t, fired)

	// Attempt 2 fails and schedules the second retry with a doubled delay.
	require.Eventually(t, func() bool { return sched.pending() == 1 }, 5*time.Second, 5*time.Millisecond)
	delay2, fired := sched.fireNext()
	require.True(t, fired)
	assert.Equal(t, 2*delay1, delay2, "backoff doubles per attempt")

	// Attempt 3 hits the cap: defaults, no further retry.
	select {
	case cfg := <-done:
		assert.Equal(t, "AI Sales Assistant", cfg.BusinessName)
		assert.Equal(t, "#2563eb", cfg.PrimaryColor)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution did not give up")
	}

	assert.Equal(t, int32(3), hits.Load(), "exactly cap attempts")
	assert.Equal(t, 0, sched.pending(), "no retry after the cap")
	assert.LessOrEqual(t, r.retry.Attempt, r.retry.Cap)
}

func TestResolverMalformedBodyCountsAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	sched := newManualScheduler()
	r := newResolver(srv.URL, "tenant-1", srv.Client(), sched)

	done := make(chan bool, 1)
	r.start(func(cfg Config, ok bool) { done <- ok })

	require.Eventually(t, func() bool { return sched.pending() == 1 }, 5*time.Second, 5*time.Millisecond)
	sched.fireNext()
	require.Eventually(t, func() bool { return sched.pending() == 1 }, 5*time.Second, 5*time.Millisecond)
	sched.fireNext()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution did not give up")
	}
}

func TestRetryStateDelay(t *testing.T) {
	r := RetryState{Cap: 3, BaseDelay: time.Second}

	r.Attempt = 1
	assert.Equal(t, time.Second, r.delay())
	r.Attempt = 2
	assert.Equal(t, 2*time.Second, r.delay())
	r.Attempt = 3
	assert.Equal(t, 4*time.Second, r.delay())
}
