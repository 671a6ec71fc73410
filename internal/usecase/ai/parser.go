package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Parser turns raw model output into a MeetingSummary. Parse never fails:
// output that matches nothing yields an empty summary with the raw text
// preserved, flagged as degraded.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

type section int

const (
	sectionNone section = iota
	sectionTopics
	sectionDecisions
	sectionActions
)

var (
	bulletRe   = regexp.MustCompile(`^(?:[-*•+]|\d+[.)])\s+(.*)$`)
	checkboxRe = regexp.MustCompile(`^\[[ xX]\]\s*`)
	markerRe   = regexp.MustCompile(`(?i)\b(?:owner|assignee|due|deadline|priority)\s*:`)
	ownerRe    = regexp.MustCompile(`(?i)\b(?:owner|assignee)\s*:\s*([^,()\n]+)`)
	dueRe      = regexp.MustCompile(`(?i)\b(?:due|deadline)\s*:\s*([^,()\n]+)`)
	priorityRe = regexp.MustCompile(`(?i)\bpriority\s*:\s*([a-zA-Z]+)`)
)

// Parse extracts topics, decisions and action items from raw model output.
// The second return value reports degradation: nothing recognizable was
// found and the summary is empty.
func (p *Parser) Parse(raw string) (*entities.MeetingSummary, bool) {
	summary := entities.NewMeetingSummary()
	summary.RawResponse = raw

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return summary, true
	}

	// Models asked for sections sometimes answer in JSON anyway. Take that
	// path first so a JSON document never leaks through the line parser.
	if parsed, ok := p.parseJSON(trimmed); ok {
		parsed.RawResponse = raw
		return parsed, false
	}

	p.parseLines(trimmed, summary)
	return summary, summary.IsEmpty()
}

type jsonActionItem struct {
	Description string `json:"description"`
	Task        string `json:"task"`
	Owner       string `json:"owner"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
}

type jsonSummary struct {
	Topics      []string         `json:"topics"`
	Decisions   []string         `json:"decisions"`
	ActionItems []jsonActionItem `json:"action_items"`
}

func (p *Parser) parseJSON(content string) (*entities.MeetingSummary, bool) {
	candidate := extractJSON(content)

	start := strings.Index(candidate, "{")
	end := strings.LastIndex(candidate, "}")
	if start == -1 || end <= start {
		return nil, false
	}
	candidate = candidate[start : end+1]

	var doc jsonSummary
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, false
	}
	if doc.Topics == nil && doc.Decisions == nil && doc.ActionItems == nil {
		return nil, false
	}

	summary := entities.NewMeetingSummary()
	for _, topic := range doc.Topics {
		if s := strings.TrimSpace(topic); s != "" {
			summary.Topics = append(summary.Topics, s)
		}
	}
	for _, decision := range doc.Decisions {
		if s := strings.TrimSpace(decision); s != "" {
			summary.Decisions = append(summary.Decisions, s)
		}
	}
	for _, item := range doc.ActionItems {
		desc := strings.TrimSpace(item.Description)
		if desc == "" {
			desc = strings.TrimSpace(item.Task)
		}
		if desc == "" {
			continue
		}
		owner := item.Owner
		if owner == "" {
			owner = item.Assignee
		}
		due := item.DueDate
		if due == "" {
			due = item.Deadline
		}
		summary.ActionItems = append(summary.ActionItems, entities.ActionItem{
			Description: desc,
			Owner:       strings.TrimSpace(owner),
			DueDate:     strings.TrimSpace(due),
			Priority:    entities.NormalizePriority(item.Priority),
		})
	}
	return summary, true
}

func (p *Parser) parseLines(content string, summary *entities.MeetingSummary) {
	current := sectionNone

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if m := bulletRe.FindStringSubmatch(trimmed); m != nil {
			text := strings.TrimSpace(m[1])
			// Task-list checkboxes are decoration, not content.
			text = strings.TrimSpace(checkboxRe.ReplaceAllString(text, ""))
			// Numbered or bulleted headers ("1. Topics:") still open a section.
			if sec, ok := sectionFor(text); ok && strings.HasSuffix(text, ":") {
				current = sec
				continue
			}
			if text == "" {
				continue
			}
			switch current {
			case sectionTopics:
				summary.Topics = append(summary.Topics, text)
			case sectionDecisions:
				summary.Decisions = append(summary.Decisions, text)
			case sectionActions:
				summary.ActionItems = append(summary.ActionItems, parseActionItem(text))
			}
			continue
		}

		if sec, ok := sectionFor(trimmed); ok {
			current = sec
			continue
		}

		// A markdown heading that matches no known section closes the
		// current one; its content is outside the recognized structure.
		if strings.HasPrefix(trimmed, "#") {
			current = sectionNone
			continue
		}

		continueLast(current, trimmed, summary)
	}
}

// sectionFor recognizes a section header after stripping markdown
// decorations. Headers are short; anything longer than a few words is
// treated as content.
func sectionFor(line string) (section, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(line))
	cleaned = strings.Trim(cleaned, "#*-•+> \t")
	cleaned = strings.TrimRight(cleaned, ":*. \t")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || len(cleaned) > 40 || len(strings.Fields(cleaned)) > 4 {
		return sectionNone, false
	}
	switch {
	case strings.Contains(cleaned, "action item"):
		return sectionActions, true
	case strings.HasPrefix(cleaned, "topic") || strings.HasSuffix(cleaned, "topics"):
		return sectionTopics, true
	case strings.HasPrefix(cleaned, "decision") || strings.HasSuffix(cleaned, "decisions"):
		return sectionDecisions, true
	}
	return sectionNone, false
}

// continueLast attaches a wrapped line to the preceding entry of the
// current section. Outside any section the line is ignored.
func continueLast(current section, text string, summary *entities.MeetingSummary) {
	switch current {
	case sectionTopics:
		if n := len(summary.Topics); n > 0 {
			summary.Topics[n-1] += " " + text
		}
	case sectionDecisions:
		if n := len(summary.Decisions); n > 0 {
			summary.Decisions[n-1] += " " + text
		}
	case sectionActions:
		n := len(summary.ActionItems)
		if n == 0 {
			return
		}
		item := &summary.ActionItems[n-1]
		if markerRe.MatchString(text) {
			if leftover := applyMarkers(text, item); leftover != "" {
				item.Description += " " + leftover
			}
			return
		}
		item.Description += " " + text
	}
}

// parseActionItem splits one bullet into description and markers. Markers
// may sit in a trailing parenthesised group or inline in the text; items
// without a priority marker default to medium.
func parseActionItem(text string) entities.ActionItem {
	item := entities.ActionItem{Priority: entities.ActionItemPriorityMedium}
	desc := strings.TrimSpace(text)

	if open := strings.LastIndex(desc, "("); open != -1 && strings.HasSuffix(desc, ")") {
		inner := desc[open+1 : len(desc)-1]
		if markerRe.MatchString(inner) {
			leftover := applyMarkers(inner, &item)
			desc = strings.TrimSpace(desc[:open])
			if leftover != "" {
				desc = strings.TrimSpace(desc + " " + leftover)
			}
			item.Description = strings.Trim(desc, " \t,;-")
			return item
		}
	}

	if markerRe.MatchString(desc) {
		desc = applyMarkers(desc, &item)
	}
	item.Description = strings.Trim(desc, " \t,;-")
	return item
}

// applyMarkers pulls Owner/Due/Priority values out of text into item fields
// that are still empty, and returns the text with the markers removed.
func applyMarkers(text string, item *entities.ActionItem) string {
	if m := ownerRe.FindStringSubmatch(text); m != nil && item.Owner == "" {
		item.Owner = cleanMarkerValue(m[1])
	}
	if m := dueRe.FindStringSubmatch(text); m != nil && item.DueDate == "" {
		item.DueDate = cleanMarkerValue(m[1])
	}
	if m := priorityRe.FindStringSubmatch(text); m != nil {
		item.Priority = entities.NormalizePriority(m[1])
	}

	out := ownerRe.ReplaceAllString(text, "")
	out = dueRe.ReplaceAllString(out, "")
	out = priorityRe.ReplaceAllString(out, "")
	out = strings.Trim(out, " \t,;:()-")
	return strings.TrimSpace(out)
}

func cleanMarkerValue(raw string) string {
	return strings.Trim(strings.TrimSpace(raw), ".;")
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
