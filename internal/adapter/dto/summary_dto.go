package dto

import (
	"time"

	"github.com/google/uuid"
)

// SummarizeTranscriptRequest is the JSON body for summarizing text the
// caller already has
type SummarizeTranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required,min=1"`
}

// ExportRequest carries the export query parameters
type ExportRequest struct {
	Format string `query:"format" validate:"omitempty,exportformat"`
}

// MeetingSummaryResponse represents the API response for a summarized meeting
type MeetingSummaryResponse struct {
	ID               uuid.UUID          `json:"id"`
	Topics           []string           `json:"topics"`
	Decisions        []string           `json:"decisions"`
	ActionItems      []ActionItemDTO    `json:"action_items"`
	Degraded         bool               `json:"degraded"`
	RawResponse      string             `json:"raw_response,omitempty"` // set only when parsing degraded
	Insights         *InsightsDTO       `json:"insights,omitempty"`
	Transcript       *TranscriptInfoDTO `json:"transcript,omitempty"`
	ModelUsed        string             `json:"model_used,omitempty"`
	ProcessingTimeMS int64              `json:"processing_time_ms"`
	CreatedAt        time.Time          `json:"created_at"`
}

// ActionItemDTO represents one extracted action item
type ActionItemDTO struct {
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	DueDate     string `json:"due_date,omitempty"` // verbatim mention from the meeting
	Priority    string `json:"priority"`           // low, medium, high
}

// InsightsDTO represents derived meeting insights
type InsightsDTO struct {
	MeetingType string            `json:"meeting_type"` // standup, planning, review, kickoff, general
	Highlights  []string          `json:"highlights,omitempty"`
	Timeline    TimelineDTO       `json:"timeline"`
	OwnerLoad   map[string]int    `json:"owner_load,omitempty"`
	Efforts     map[string]string `json:"efforts,omitempty"` // description -> quick, moderate, substantial
}

// TimelineDTO groups action items by due mention
type TimelineDTO struct {
	Immediate   []string `json:"immediate"`
	ThisWeek    []string `json:"this_week"`
	NextWeek    []string `json:"next_week"`
	Future      []string `json:"future"`
	Unscheduled []string `json:"unscheduled"`
}

// TranscriptInfoDTO describes the transcript behind a summary without
// repeating its full text
type TranscriptInfoDTO struct {
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	Language        string  `json:"language,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	Utterances      int     `json:"utterances"`
	HasSpeakers     bool    `json:"has_speakers"`
}
