package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ActionItemPriority constants
const (
	ActionItemPriorityLow    = "low"
	ActionItemPriorityMedium = "medium"
	ActionItemPriorityHigh   = "high"
)

// NormalizePriority maps free-form priority text onto the canonical scale.
// Unknown or empty values default to medium.
func NormalizePriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ActionItemPriorityLow:
		return ActionItemPriorityLow
	case ActionItemPriorityHigh, "urgent", "critical":
		return ActionItemPriorityHigh
	default:
		return ActionItemPriorityMedium
	}
}

// ActionItem represents a task extracted from the meeting
type ActionItem struct {
	Description string `json:"description"`
	Owner       string `json:"owner,omitempty"`
	DueDate     string `json:"due_date,omitempty"` // verbatim mention, e.g. "Friday", "next week"
	Priority    string `json:"priority"`
}

// MeetingSummary represents the structured result of one summarized meeting
type MeetingSummary struct {
	Topics        []string     `json:"topics"`
	Decisions     []string     `json:"decisions"`
	ActionItems   []ActionItem `json:"action_items"`
	RawTranscript string       `json:"raw_transcript,omitempty"`
	RawResponse   string       `json:"raw_response,omitempty"`
}

// NewMeetingSummary creates an empty summary with non-nil sections
func NewMeetingSummary() *MeetingSummary {
	return &MeetingSummary{
		Topics:      make([]string, 0),
		Decisions:   make([]string, 0),
		ActionItems: make([]ActionItem, 0),
	}
}

// IsEmpty reports whether no section holds any content
func (s *MeetingSummary) IsEmpty() bool {
	return len(s.Topics) == 0 && len(s.Decisions) == 0 && len(s.ActionItems) == 0
}

// SummaryRecord represents one completed pipeline run
type SummaryRecord struct {
	ID               uuid.UUID        `json:"id"`
	Summary          *MeetingSummary  `json:"summary"`
	Insights         *MeetingInsights `json:"insights,omitempty"`
	Transcript       *Transcript      `json:"-"`
	Degraded         bool             `json:"degraded"`
	ModelUsed        string           `json:"model_used,omitempty"`
	ProcessingTimeMS int64            `json:"processing_time_ms"`
	CreatedAt        time.Time        `json:"created_at"`
}

// NewSummaryRecord creates a record with a fresh ID and empty summary
func NewSummaryRecord() *SummaryRecord {
	return &SummaryRecord{
		ID:        uuid.New(),
		Summary:   NewMeetingSummary(),
		CreatedAt: time.Now(),
	}
}
