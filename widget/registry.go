package widget

import "sync"

// Handle identifies a registered widget instance. It replaces the single
// global constructor reference of script embeds: host code registers at
// embed time and unregisters when the widget's container goes away.
type Handle uint64

var (
	regMu      sync.Mutex
	registry   = make(map[Handle]*Runtime)
	nextHandle Handle
)

func register(rt *Runtime) Handle {
	regMu.Lock()
	defer regMu.Unlock()
	nextHandle++
	registry[nextHandle] = rt
	return nextHandle
}

func unregister(h Handle) {
	regMu.Lock()
	defer regMu.Unlock()
	delete(registry, h)
}

// Lookup returns the runtime registered under h, if any.
func Lookup(h Handle) (*Runtime, bool) {
	regMu.Lock()
	defer regMu.Unlock()
	rt, ok := registry[h]
	return rt, ok
}

// Instances returns the number of live widget instances.
func Instances() int {
	regMu.Lock()
	defer regMu.Unlock()
	return len(registry)
}
