package entities

// Meeting type classifications
const (
	MeetingTypeStandup  = "standup"
	MeetingTypePlanning = "planning"
	MeetingTypeReview   = "review"
	MeetingTypeKickoff  = "kickoff"
	MeetingTypeGeneral  = "general"
)

// Effort estimate buckets
const (
	EffortQuick       = "quick"
	EffortModerate    = "moderate"
	EffortSubstantial = "substantial"
)

// Timeline groups action-item descriptions by due-date horizon
type Timeline struct {
	Immediate   []string `json:"immediate"`
	ThisWeek    []string `json:"this_week"`
	NextWeek    []string `json:"next_week"`
	Future      []string `json:"future"`
	Unscheduled []string `json:"unscheduled"`
}

// MeetingInsights carries derived signals layered on top of a summary.
// The parsed summary itself is never modified except for priority
// inference on items the model left at the default.
type MeetingInsights struct {
	MeetingType string            `json:"meeting_type"`
	Highlights  []string          `json:"highlights,omitempty"`
	Timeline    Timeline          `json:"timeline"`
	OwnerLoad   map[string]int    `json:"owner_load,omitempty"`
	Efforts     map[string]string `json:"efforts,omitempty"`
}
