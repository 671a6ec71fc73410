package ai

import (
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Enhancer derives second-pass insights from a parsed summary: keyword
// priority grading for items the model left at the default, meeting type
// classification, per-item effort estimates and a due-date timeline.
type Enhancer struct {
	logger *zap.Logger
}

func NewEnhancer(logger *zap.Logger) *Enhancer {
	return &Enhancer{logger: logger}
}

var (
	highPriorityKeywords = []string{"urgent", "critical", "asap", "immediately", "blocker", "important"}
	lowPriorityKeywords  = []string{"later", "eventually", "maybe", "consider", "someday", "nice to have"}
)

// Enhance computes insights and upgrades default-priority action items in
// place. Explicit low or high markers from the model are never overridden.
func (e *Enhancer) Enhance(summary *entities.MeetingSummary, transcript *entities.Transcript) *entities.MeetingInsights {
	insights := &entities.MeetingInsights{
		MeetingType: entities.MeetingTypeGeneral,
		Highlights:  make([]string, 0),
		Timeline: entities.Timeline{
			Immediate:   make([]string, 0),
			ThisWeek:    make([]string, 0),
			NextWeek:    make([]string, 0),
			Future:      make([]string, 0),
			Unscheduled: make([]string, 0),
		},
		OwnerLoad: make(map[string]int),
		Efforts:   make(map[string]string),
	}
	if summary == nil {
		return insights
	}

	sourceText := summary.RawTranscript
	if transcript != nil && transcript.Text != "" {
		sourceText = transcript.Text
	}
	insights.MeetingType = ClassifyMeetingType(sourceText)

	for i := range summary.ActionItems {
		item := &summary.ActionItems[i]

		if item.Priority == entities.ActionItemPriorityMedium {
			if inferred := InferPriority(item.Description); inferred != item.Priority {
				if e.logger != nil {
					e.logger.Debug("Re-graded action item priority",
						zap.String("description", item.Description),
						zap.String("priority", inferred))
				}
				item.Priority = inferred
			}
		}

		switch TimelineBucket(item.DueDate) {
		case "immediate":
			insights.Timeline.Immediate = append(insights.Timeline.Immediate, item.Description)
		case "this_week":
			insights.Timeline.ThisWeek = append(insights.Timeline.ThisWeek, item.Description)
		case "next_week":
			insights.Timeline.NextWeek = append(insights.Timeline.NextWeek, item.Description)
		case "future":
			insights.Timeline.Future = append(insights.Timeline.Future, item.Description)
		default:
			insights.Timeline.Unscheduled = append(insights.Timeline.Unscheduled, item.Description)
		}

		if item.Owner != "" {
			insights.OwnerLoad[item.Owner]++
		}
		insights.Efforts[item.Description] = EstimateEffort(item.Description)
	}

	insights.Highlights = buildHighlights(summary)
	return insights
}

// InferPriority grades a description by keyword. Used only for items whose
// priority was defaulted, so an inferred medium means "leave as is".
func InferPriority(description string) string {
	d := strings.ToLower(description)
	for _, keyword := range highPriorityKeywords {
		if strings.Contains(d, keyword) {
			return entities.ActionItemPriorityHigh
		}
	}
	for _, keyword := range lowPriorityKeywords {
		if strings.Contains(d, keyword) {
			return entities.ActionItemPriorityLow
		}
	}
	return entities.ActionItemPriorityMedium
}

// ClassifyMeetingType picks a meeting type from transcript wording. The
// checks run most-specific first; anything unmatched is a general meeting.
func ClassifyMeetingType(text string) string {
	t := strings.ToLower(text)
	switch {
	case containsAny(t, "standup", "stand-up", "daily sync", "yesterday i worked"):
		return entities.MeetingTypeStandup
	case containsAny(t, "retrospective", "retro", "went well", "post-mortem", "postmortem"):
		return entities.MeetingTypeReview
	case containsAny(t, "kickoff", "kick-off", "kick off"):
		return entities.MeetingTypeKickoff
	case containsAny(t, "sprint planning", "roadmap", "launch plan", "backlog", "milestone"):
		return entities.MeetingTypePlanning
	default:
		return entities.MeetingTypeGeneral
	}
}

// EstimateEffort buckets an action item into quick, moderate or substantial
// work based on its wording.
func EstimateEffort(description string) string {
	d := strings.ToLower(description)
	if containsAny(d, "research", "design", "implement", "build", "migrate", "overhaul", "rewrite", "refactor") {
		return entities.EffortSubstantial
	}
	if len(description) <= 40 || containsAny(d, "send", "email", "call", "ping", "schedule", "book", "share") {
		return entities.EffortQuick
	}
	return entities.EffortModerate
}

// TimelineBucket maps a free-text due mention to a timeline bucket. "next"
// phrasing is checked before weekday names so "next Monday" lands in
// next_week rather than this_week.
func TimelineBucket(due string) string {
	d := strings.ToLower(strings.TrimSpace(due))
	if d == "" {
		return "unscheduled"
	}
	if containsAny(d, "today", "tomorrow", "tonight", "asap", "end of day", "eod", "immediately", "right away") {
		return "immediate"
	}
	if strings.Contains(d, "next week") || strings.HasPrefix(d, "next ") {
		return "next_week"
	}
	if containsAny(d, "this week", "end of week", "eow", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday") {
		return "this_week"
	}
	return "future"
}

func buildHighlights(summary *entities.MeetingSummary) []string {
	highlights := make([]string, 0, 4)
	if len(summary.Decisions) > 0 {
		highlights = append(highlights, "Decided: "+summary.Decisions[0])
	}
	for _, item := range summary.ActionItems {
		if len(highlights) >= 4 {
			break
		}
		if item.Priority == entities.ActionItemPriorityHigh {
			h := "High priority: " + item.Description
			if item.Owner != "" {
				h += " (" + item.Owner + ")"
			}
			highlights = append(highlights, h)
		}
	}
	return highlights
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
