package chat

import "encoding/json"

// ChatMessage is one conversation turn as the widget sends it
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BusinessSettings is the tenant context the widget forwards with each chat
// request so the prompt can be grounded without a settings lookup per turn.
type BusinessSettings struct {
	BusinessName string `json:"businessName"`
	BusinessInfo string `json:"businessInfo"`
	SalesRepName string `json:"salesRepName"`
}

// Request defines the input contract for the /chat endpoint.
// messages is kept raw so a non-array payload can be rejected with the
// exact wire error instead of a generic bind failure.
type Request struct {
	Messages  json.RawMessage   `json:"messages"`
	Settings  *BusinessSettings `json:"settings,omitempty"`
	SessionID string            `json:"session_id,omitempty"`
}

// Response defines the success payload
type Response struct {
	Response string `json:"response"`
}
