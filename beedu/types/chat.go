package types

type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResult is the orchestrator's terminal verdict for one exchange.
// Exactly one of Answer/Error is populated by the pipeline; the store
// accepts either way.
type ChatResult struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SaveChatRequest is the POST /chats body: the client-facing way to persist
// an exchange it already holds.
type SaveChatRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Error    string `json:"error"`
}

// WSChatRequest is the first text frame on /chat/ws. Token is optional;
// Guest suppresses persistence even when a valid token is present.
type WSChatRequest struct {
	Token    string `json:"token,omitempty"`
	Guest    bool   `json:"guest,omitempty"`
	Question string `json:"question"`
}
