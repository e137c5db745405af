package widget

// Renderer is the presentation adapter the runtime drives. The core state
// machine never touches a UI toolkit directly; it reports every observable
// change through these callbacks, which makes the presentation layer
// swappable and the state transitions testable.
//
// Callbacks are invoked outside the runtime's lock, but always from a single
// event at a time; implementations must not assume a particular goroutine.
type Renderer interface {
	// ConfigApplied reports the effective configuration after resolution.
	ConfigApplied(cfg Config)
	// StateChanged reports every lifecycle transition.
	StateChanged(state State)
	// MessageAppended reports a new conversation turn, greeting included.
	MessageAppended(msg Message)
	// TypingChanged reports the composing indicator while a relay call is
	// in flight.
	TypingChanged(active bool)
	// UnreadChanged reports the unread counter, 0 on open.
	UnreadChanged(count int)
}

// NopRenderer discards all callbacks; useful for headless embedding and as
// an embed target for partial implementations.
type NopRenderer struct{}

func (NopRenderer) ConfigApplied(Config)    {}
func (NopRenderer) StateChanged(State)      {}
func (NopRenderer) MessageAppended(Message) {}
func (NopRenderer) TypingChanged(bool)      {}
func (NopRenderer) UnreadChanged(int)       {}
