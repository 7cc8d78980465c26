package model

// ParseRequest is the body of POST /api/v1/parse.
type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseResponse is the single public output of the pipeline: the canonical
// record, its coverage score, and a refine plan when coverage is incomplete.
type ParseResponse struct {
	ParseID    string           `json:"parse_id"`
	Source     string           `json:"source"` // "remote" or "local"
	Record     *UniversalParsed `json:"record"`
	Coverage   int              `json:"coverage"`
	RefinePlan *RefinePlan      `json:"refine_plan,omitempty"`
	Took       int64            `json:"took_ms"`
}

// ProspectRequest asks for synthetic prospect cards honoring a parsed record.
type ProspectRequest struct {
	Record *UniversalParsed `json:"record" binding:"required"`
	Count  int              `json:"count,omitempty"`
}

// ProspectResponse carries the generated cards.
type ProspectResponse struct {
	Prospects []Prospect `json:"prospects"`
}

// FeedbackRequest records a user action on a prospect card.
type FeedbackRequest struct {
	ParseID    string `json:"parse_id" binding:"required"`
	ProspectID string `json:"prospect_id" binding:"required"`
	Action     string `json:"action" binding:"required"` // click, contact, view_details
}

// FeedbackResponse acknowledges a feedback submission.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the uniform error body. Kind distinguishes extraction
// failure classes so the client can render distinct messages.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}
