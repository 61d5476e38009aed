package dto

// ChatRequest mirrors the message shape the web client sends: each message
// carries content parts, only "text" parts count.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

type ChatMessage struct {
	Content []ChatContentPart `json:"content"`
}

type ChatContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatResponse always carries a result string; backend failures are encoded
// in the text, never as a non-200 status.
type ChatResponse struct {
	Result string `json:"result"`
}
