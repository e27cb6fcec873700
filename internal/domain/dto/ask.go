package dto

// AskRequest is the JSON body accepted by POST /api/v1/ask.
//
// Fields:
//   - Question: the free-text question to route (required).
//   - UserContext: optional caller context, e.g. {"rvp": "Alice"}; used as a
//     fallback for filters not present in the question text.
type AskRequest struct {
	Question    string         `json:"question" binding:"required" example:"Show redemptions by fund type last quarter"`
	UserContext map[string]any `json:"user_context"`
}

// Dataset is one chart series: a label and values aligned to the response's
// label axis.
type Dataset struct {
	Label string    `json:"label" example:"redemptions"`
	Data  []float64 `json:"data"`
}

// Response types returned by the ask endpoint.
const (
	ResponseText  = "text"
	ResponseChart = "chart"
	ResponseTable = "table"
)

// AskResponse is the wire shape returned by POST /api/v1/ask.
//
// Exactly one variant is populated based on Type:
//   - "text":  Title + Text (a single formatted number).
//   - "chart": Title + Labels + Datasets (series aligned to Labels).
//   - "table": Title + Table (reserved; no routing path produces it today).
//
// All fields are always present on the wire; unused ones are null. Consumers
// treat an unrecognized shape as a display fallback, not a protocol error.
type AskResponse struct {
	Type     string    `json:"type" example:"chart"`
	Title    string    `json:"title" example:"Redemptions (Last Quarter) by Fund Type"`
	Text     string    `json:"text"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Table    [][]any   `json:"table"`
}
