package model

// Conversation roles in the neutral chat contract. Adapters that use a
// different role vocabulary translate these at their own wire boundary.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a single message in a conversation, tagged with its speaker.
// Turns are immutable once created; conversation order is significant.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelOption is one selectable model as presented to the client:
// the wire identifier plus a human-readable label.
type ModelOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
