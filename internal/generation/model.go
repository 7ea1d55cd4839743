package generation

import "time"

// Data kinds accepted by the dispatcher.
const (
	KindTabular = "tabular"
	KindChat    = "chat"
	KindEmail   = "email"
)

// TabularRequest parameterizes tabular synthesis.
type TabularRequest struct {
	Domain     string `json:"domain"`
	NumSamples int    `json:"num_samples"`
	Topic      string `json:"topic"`
	Format     string `json:"format"`
}

// ChatRequest parameterizes conversation synthesis.
type ChatRequest struct {
	Domain     string `json:"domain"`
	Topic      string `json:"topic"`
	NumSamples int    `json:"num_samples"`
	NumTurns   int    `json:"num_turns"`
	Format     string `json:"format"`
}

// EmailRequest parameterizes email synthesis.
type EmailRequest struct {
	Domain     string `json:"domain"`
	Topic      string `json:"topic"`
	EmailType  string `json:"email_type"`
	NumSamples int    `json:"num_samples"`
	Format     string `json:"format"`
}

// HistoryRecord is one completed generation run.
type HistoryRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DataKind   string    `json:"dataKind"`
	Domain     string    `json:"domain"`
	Topic      string    `json:"topic,omitempty"`
	NumSamples int       `json:"numSamples"`
	CreatedAt  time.Time `json:"createdAt"`
}
