// Package widget implements the embeddable chat widget runtime: a pure state
// machine driving tenant configuration resolution, conversation lifecycle,
// and gateway calls, wrapped by a swappable presentation adapter (Renderer).
// One Runtime instance owns one conversation for one page session; nothing
// is shared between instances except the process-wide registry.
package widget

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the widget lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateResolvingConfig
	StateReady
	StateMinimized
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateResolvingConfig:
		return "resolving-config"
	case StateReady:
		return "ready"
	case StateMinimized:
		return "minimized"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrMissingUID is returned when a runtime is constructed without a
	// tenant identifier; the runtime refuses to start without one.
	ErrMissingUID = errors.New("widget: uid is required")
	// ErrBusy is returned when a submission is attempted while a prior one
	// is still in flight; the runtime never issues concurrent relay calls.
	ErrBusy = errors.New("widget: a message is already in flight")
	// ErrNotReady is returned when a submission arrives before the runtime
	// finished resolving its configuration.
	ErrNotReady = errors.New("widget: configuration still resolving")
	// ErrClosed is returned by operations on a torn-down runtime.
	ErrClosed = errors.New("widget: runtime is closed")
)

// DefaultBaseURL is the hosted gateway; embedders override it for
// self-hosted deployments.
const DefaultBaseURL = "https://api.chatwidget.ai"

const defaultAutoExpandDelay = 5 * time.Second

// apologyMessage is the fixed, non-alarming message shown for any relay
// failure; raw error text never reaches the end user.
const apologyMessage = "I apologize, but I encountered an error. Please try again in a moment."

// Options configures a widget instance. UID is the only mandatory option;
// the visual fields are optional overrides of server-resolved defaults.
type Options struct {
	UID     string
	BaseURL string

	// Renderer receives every observable change; nil means headless.
	Renderer Renderer

	// Visual overrides, applied after server-side settings resolve.
	PrimaryColor string
	BusinessName string
	BusinessInfo string
	SalesRepName string

	// AutoExpandDelay is how long the widget stays minimized after the
	// greeting before expanding once to draw attention. Zero means the
	// default; a negative value disables auto-expand.
	AutoExpandDelay time.Duration

	// Scheduler and HTTPClient are injection points for tests.
	Scheduler  Scheduler
	HTTPClient *http.Client
}

// Runtime is one embedded widget instance.
type Runtime struct {
	mu           sync.Mutex
	opts         Options
	cfg          Config
	state        State
	log          *conversationLog
	unread       int
	typing       bool
	sending      bool
	closed       bool
	cancelExpand func()

	renderer Renderer
	sched    Scheduler
	gateway  *gatewayClient
	resolver *resolver
	handle   Handle
}

// New constructs a runtime, registers it, and starts configuration
// resolution. The call never blocks on the network; the instance is usable
// as soon as resolution completes, with defaults if it exhausted retries.
func New(opts Options) (*Runtime, error) {
	if opts.UID == "" {
		return nil, ErrMissingUID
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Renderer == nil {
		opts.Renderer = NopRenderer{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = realScheduler{}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.AutoExpandDelay == 0 {
		opts.AutoExpandDelay = defaultAutoExpandDelay
	}

	rt := &Runtime{
		opts:     opts,
		state:    StateUninitialized,
		log:      newConversationLog(),
		renderer: opts.Renderer,
		sched:    opts.Scheduler,
		gateway:  newGatewayClient(opts.BaseURL, uuid.NewString(), opts.HTTPClient),
		resolver: newResolver(opts.BaseURL, opts.UID, opts.HTTPClient, opts.Scheduler),
	}

	rt.handle = register(rt)

	rt.mu.Lock()
	rt.state = StateResolvingConfig
	rt.mu.Unlock()
	rt.renderer.StateChanged(StateResolvingConfig)

	rt.resolver.start(rt.onConfigResolved)

	return rt, nil
}

// onConfigResolved runs once per instance, for both the success and the
// exhausted-retries path; the widget must become usable either way.
func (rt *Runtime) onConfigResolved(cfg Config, ok bool) {
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return
	}

	rt.cfg = applyOverrides(cfg, rt.opts)
	greeting := Message{Role: RoleAssistant, Content: greetingFor(rt.cfg)}
	rt.state = StateMinimized
	rt.log.append(greeting)
	// The greeting lands while minimized, so it counts as unread until the
	// widget is opened.
	rt.unread = 1
	effective := rt.cfg
	delay := rt.opts.AutoExpandDelay
	rt.mu.Unlock()

	rt.renderer.ConfigApplied(effective)
	rt.renderer.StateChanged(StateReady)
	rt.renderer.StateChanged(StateMinimized)
	rt.renderer.MessageAppended(greeting)
	rt.renderer.UnreadChanged(1)

	if delay >= 0 {
		cancel := rt.sched.After(delay, rt.autoExpand)
		rt.mu.Lock()
		if rt.closed {
			rt.mu.Unlock()
			cancel()
			return
		}
		rt.cancelExpand = cancel
		rt.mu.Unlock()
	}
}

// autoExpand opens the widget once to draw attention, unless the user
// already interacted with it.
func (rt *Runtime) autoExpand() {
	rt.Open()
}

// Open expands the widget. Opening always resets the unread count to zero.
func (rt *Runtime) Open() {
	rt.mu.Lock()
	if rt.closed || rt.state != StateMinimized {
		rt.mu.Unlock()
		return
	}
	rt.state = StateOpen
	rt.unread = 0
	rt.mu.Unlock()

	rt.renderer.StateChanged(StateOpen)
	rt.renderer.UnreadChanged(0)
}

// Minimize collapses the widget; the conversation stays live and messages
// can still be submitted.
func (rt *Runtime) Minimize() {
	rt.mu.Lock()
	if rt.closed || rt.state != StateOpen {
		rt.mu.Unlock()
		return
	}
	rt.state = StateMinimized
	rt.mu.Unlock()

	rt.renderer.StateChanged(StateMinimized)
}

// Send submits one user message to the gateway. The call returns immediately
// and the exchange completes asynchronously through the Renderer. A second
// submission while one is in flight returns ErrBusy; the runtime guarantees
// no duplicate concurrent relay call per instance.
func (rt *Runtime) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return ErrClosed
	}
	if rt.state == StateUninitialized || rt.state == StateResolvingConfig {
		rt.mu.Unlock()
		return ErrNotReady
	}
	if rt.sending {
		rt.mu.Unlock()
		return ErrBusy
	}
	rt.sending = true
	rt.typing = true

	userMsg := Message{Role: RoleUser, Content: text}
	rt.log.append(userMsg)
	snap := rt.log.snapshot()
	cfg := rt.cfg
	rt.mu.Unlock()

	rt.renderer.MessageAppended(userMsg)
	rt.renderer.TypingChanged(true)

	go rt.relay(snap, cfg)
	return nil
}

func (rt *Runtime) relay(messages []Message, cfg Config) {
	reply, err := rt.gateway.send(context.Background(), messages, cfg)

	rt.mu.Lock()
	rt.sending = false
	rt.typing = false
	if rt.closed {
		rt.mu.Unlock()
		return
	}

	var msg Message
	notifyUnread := false
	unread := 0
	if err != nil {
		// Errors are immediately visible feedback, not unread content.
		msg = Message{Role: RoleAssistant, Content: apologyMessage}
	} else {
		msg = Message{Role: RoleAssistant, Content: reply}
		if rt.state == StateMinimized {
			rt.unread++
			notifyUnread = true
			unread = rt.unread
		}
	}
	rt.log.append(msg)
	rt.mu.Unlock()

	rt.renderer.TypingChanged(false)
	rt.renderer.MessageAppended(msg)
	if notifyUnread {
		rt.renderer.UnreadChanged(unread)
	}
}

// State returns the current lifecycle state.
func (rt *Runtime) State() State {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.state
}

// Config returns the effective configuration.
func (rt *Runtime) Config() Config {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.cfg
}

// Unread returns the current unread counter.
func (rt *Runtime) Unread() int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.unread
}

// Typing reports whether a relay call is in flight.
func (rt *Runtime) Typing() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.typing
}

// Messages returns a snapshot of the conversation; mutating it has no
// effect on the runtime.
func (rt *Runtime) Messages() []Message {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.log.snapshot()
}

// Handle returns the registry handle for this instance.
func (rt *Runtime) Handle() Handle {
	return rt.handle
}

// Close tears the instance down: pending timers are cancelled and the
// registry entry is removed. In-flight network calls are not cancelled but
// their results are discarded.
func (rt *Runtime) Close() {
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return
	}
	rt.closed = true
	cancel := rt.cancelExpand
	rt.cancelExpand = nil
	rt.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	unregister(rt.handle)
}

func greetingFor(cfg Config) string {
	if cfg.SalesRepName != "" {
		return fmt.Sprintf("Hello! I'm %s from %s. How can I help you today?", cfg.SalesRepName, cfg.BusinessName)
	}
	return fmt.Sprintf("Hello! Welcome to %s. How can I help you today?", cfg.BusinessName)
}
