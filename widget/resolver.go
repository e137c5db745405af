package widget

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RetryState tracks the backoff schedule of the settings resolver. Attempt
// never exceeds Cap; the delay before fetch n+1 is BaseDelay * 2^(n-1).
type RetryState struct {
	Attempt   int
	Cap       int
	BaseDelay time.Duration
}

const (
	defaultRetryCap  = 3
	defaultBaseDelay = time.Second
)

// delay returns the wait before the next fetch, doubling per attempt.
func (r RetryState) delay() time.Duration {
	return r.BaseDelay << (r.Attempt - 1)
}

// resolver fetches the tenant configuration with retry and exponential
// backoff. At most one resolution is in flight per runtime instance; the
// runtime never starts a new one while one is pending.
type resolver struct {
	baseURL string
	uid     string
	client  *http.Client
	sched   Scheduler
	retry   RetryState
}

func newResolver(baseURL, uid string, client *http.Client, sched Scheduler) *resolver {
	return &resolver{
		baseURL: baseURL,
		uid:     uid,
		client:  client,
		sched:   sched,
		retry:   RetryState{Cap: defaultRetryCap, BaseDelay: defaultBaseDelay},
	}
}

// start begins resolution. done is called exactly once: either with the
// fetched configuration (defaults applied to empty fields) and ok=true, or
// with the built-in defaults and ok=false after the retry cap is exhausted.
// The widget becomes usable either way.
func (r *resolver) start(done func(cfg Config, ok bool)) {
	go r.attempt(done)
}

func (r *resolver) attempt(done func(cfg Config, ok bool)) {
	r.retry.Attempt++

	fetched, err := r.fetch()
	if err == nil {
		cfg := mergeConfig(Defaults(), *fetched)
		cfg.UID = r.uid
		r.retry.Attempt = 0
		done(cfg, true)
		return
	}

	if r.retry.Attempt >= r.retry.Cap {
		// Give up permanently for this session; the config stays at the
		// built-in defaults and no further attempt is made.
		cfg := Defaults()
		cfg.UID = r.uid
		done(cfg, false)
		return
	}

	r.sched.After(r.retry.delay(), func() {
		go r.attempt(done)
	})
}

// fetch issues one settings request. A non-2xx status, transport error, or
// malformed body all count as one failed attempt.
func (r *resolver) fetch() (*settingsPayload, error) {
	endpoint := fmt.Sprintf("%s/settings?uid=%s", r.baseURL, url.QueryEscape(r.uid))

	resp, err := r.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("settings request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("settings request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings body: %w", err)
	}

	var payload settingsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed settings body: %w", err)
	}

	return &payload, nil
}
