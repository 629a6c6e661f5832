package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Auth ──────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// ── Generation / review ───────────────────────────────

type GenerateRequest struct {
	Topic    string `json:"topic"`
	Model    string `json:"model"`
	Quantity int    `json:"quantity"`
}

type ReviewSnapshot struct {
	Phase         string             `json:"phase"`
	Cursor        int                `json:"cursor"`
	Total         int                `json:"total"`
	ApprovedCount int                `json:"approved_count"`
	SkippedCount  int                `json:"skipped_count"`
	Current       *GeneratedQuestion `json:"current,omitempty"`
	Reasoning     string             `json:"reasoning,omitempty"`
}

type ApproveResponse struct {
	Saved    *Question      `json:"saved,omitempty"`
	Snapshot ReviewSnapshot `json:"snapshot"`
}

// ── Reference conditioning ────────────────────────────

type ReferenceRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

type ReferenceAnswer struct {
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

type ReferenceAnswersRequest struct {
	Answers []ReferenceAnswer `json:"answers"`
}

// ── Evaluation ────────────────────────────────────────

type EvaluateRequest struct {
	Models []string `json:"models"`
	Topic  string   `json:"topic,omitempty"`
}

type EvaluateResponse struct {
	Evaluated int                `json:"evaluated"`
	Results   []EvaluationResult `json:"results"`
}

type ConfigResponse struct {
	Topics []string `json:"topics"`
	Models []string `json:"models"`
}
