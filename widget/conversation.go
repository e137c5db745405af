package widget

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one immutable conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// conversationLog is the in-memory ordered log of exchanged messages for one
// page session. Insertion order is the conversational history and is
// preserved verbatim when sent to the gateway. Growth is unbounded for the
// session's lifetime; memory bounding is an accepted non-goal.
type conversationLog struct {
	messages []Message
}

func newConversationLog() *conversationLog {
	return &conversationLog{}
}

func (l *conversationLog) append(m Message) {
	l.messages = append(l.messages, m)
}

// snapshot returns a copy; mutating it never affects the log.
func (l *conversationLog) snapshot() []Message {
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *conversationLog) len() int {
	return len(l.messages)
}
