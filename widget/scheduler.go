package widget

import "time"

// Scheduler abstracts timer scheduling so backoff schedules and the
// auto-expand delay are testable without real wall-clock waits.
type Scheduler interface {
	// After runs fn once d has elapsed and returns a cancel function.
	After(d time.Duration, fn func()) (cancel func())
}

type realScheduler struct{}

func (realScheduler) After(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
