package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func TestParseSectionedResponse(t *testing.T) {
	raw := `Topics:
- Q2 launch readiness
- Budget review

Decisions:
- Ship in the first week of May

Action Items:
- Finish the docs (Owner: John, Due: Friday, Priority: high)
- Draft the announcement email`

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Q2 launch readiness", "Budget review"}, summary.Topics)
	assert.Equal(t, []string{"Ship in the first week of May"}, summary.Decisions)

	require.Len(t, summary.ActionItems, 2)
	first := summary.ActionItems[0]
	assert.Equal(t, "Finish the docs", first.Description)
	assert.Equal(t, "John", first.Owner)
	assert.Equal(t, "Friday", first.DueDate)
	assert.Equal(t, entities.ActionItemPriorityHigh, first.Priority)

	second := summary.ActionItems[1]
	assert.Equal(t, "Draft the announcement email", second.Description)
	assert.Empty(t, second.Owner)
	assert.Empty(t, second.DueDate)
	assert.Equal(t, entities.ActionItemPriorityMedium, second.Priority)

	assert.Equal(t, raw, summary.RawResponse)
}

func TestParseHeaderVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"markdown heading", "## Topics\n- A\n\n## Decisions\n- B\n\n## Action Items\n- C"},
		{"bold heading", "**Topics:**\n- A\n\n**Decisions:**\n- B\n\n**Action Items:**\n- C"},
		{"numbered heading", "1. Topics:\n- A\n2. Decisions:\n- B\n3. Action Items:\n- C"},
		{"bulleted heading", "- Topics:\n- A\n- Decisions:\n- B\n- Action Items:\n- C"},
		{"uppercase no colon", "TOPICS\n- A\nDECISIONS\n- B\nACTION ITEMS\n- C"},
		{"prefixed heading", "Key topics:\n- A\nKey decisions:\n- B\nAction items:\n- C"},
		{"crlf line endings", "Topics:\r\n- A\r\nDecisions:\r\n- B\r\nAction Items:\r\n- C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, degraded := NewParser().Parse(tt.raw)

			assert.False(t, degraded)
			assert.Equal(t, []string{"A"}, summary.Topics)
			assert.Equal(t, []string{"B"}, summary.Decisions)
			require.Len(t, summary.ActionItems, 1)
			assert.Equal(t, "C", summary.ActionItems[0].Description)
		})
	}
}

func TestParseBulletVariants(t *testing.T) {
	raw := "Topics:\n- dash\n* star\n• dot\n+ plus\n1. numbered\n2) parens"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"dash", "star", "dot", "plus", "numbered", "parens"}, summary.Topics)
}

func TestParseContinuationLines(t *testing.T) {
	raw := `Topics:
- The new pricing model
  and its rollout plan

Action Items:
- Update the runbook
  Owner: Maria, Due: next Tuesday`

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"The new pricing model and its rollout plan"}, summary.Topics)

	require.Len(t, summary.ActionItems, 1)
	item := summary.ActionItems[0]
	assert.Equal(t, "Update the runbook", item.Description)
	assert.Equal(t, "Maria", item.Owner)
	assert.Equal(t, "next Tuesday", item.DueDate)
}

func TestParseActionItemMarkers(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		desc     string
		owner    string
		due      string
		priority string
	}{
		{
			"paren markers",
			"Review the pricing page (Owner: Maria, Due: next week)",
			"Review the pricing page", "Maria", "next week", entities.ActionItemPriorityMedium,
		},
		{
			"inline markers",
			"Prepare slides, Owner: Priya, Due: Thursday",
			"Prepare slides", "Priya", "Thursday", entities.ActionItemPriorityMedium,
		},
		{
			"assignee and deadline aliases",
			"Close the ticket (Assignee: Lee, Deadline: tomorrow)",
			"Close the ticket", "Lee", "tomorrow", entities.ActionItemPriorityMedium,
		},
		{
			"priority normalized",
			"Patch the outage (Priority: URGENT)",
			"Patch the outage", "", "", entities.ActionItemPriorityHigh,
		},
		{
			"plain parenthetical kept",
			"Review the budget (with finance)",
			"Review the budget (with finance)", "", "", entities.ActionItemPriorityMedium,
		},
		{
			"no markers",
			"Write the follow-up notes",
			"Write the follow-up notes", "", "", entities.ActionItemPriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, degraded := NewParser().Parse("Action Items:\n- " + tt.line)

			assert.False(t, degraded)
			require.Len(t, summary.ActionItems, 1)
			item := summary.ActionItems[0]
			assert.Equal(t, tt.desc, item.Description)
			assert.Equal(t, tt.owner, item.Owner)
			assert.Equal(t, tt.due, item.DueDate)
			assert.Equal(t, tt.priority, item.Priority)
		})
	}
}

func TestParseFirstOwnerWins(t *testing.T) {
	raw := `Action Items:
- Ship it (Owner: John)
  Owner: Maria`

	summary, _ := NewParser().Parse(raw)

	require.Len(t, summary.ActionItems, 1)
	assert.Equal(t, "John", summary.ActionItems[0].Owner)
	assert.Equal(t, "Ship it", summary.ActionItems[0].Description)
}

func TestParseJSONResponse(t *testing.T) {
	raw := `{"topics":["Pricing"],"decisions":["Ship in May"],"action_items":[{"task":"Email the team","assignee":"Ana","deadline":"tomorrow","priority":"urgent"}]}`

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Pricing"}, summary.Topics)
	assert.Equal(t, []string{"Ship in May"}, summary.Decisions)

	require.Len(t, summary.ActionItems, 1)
	item := summary.ActionItems[0]
	assert.Equal(t, "Email the team", item.Description)
	assert.Equal(t, "Ana", item.Owner)
	assert.Equal(t, "tomorrow", item.DueDate)
	assert.Equal(t, entities.ActionItemPriorityHigh, item.Priority)
	assert.Equal(t, raw, summary.RawResponse)
}

func TestParseFencedJSONResponse(t *testing.T) {
	raw := "```json\n{\"topics\": [\"Hiring plan\"]}\n```"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Hiring plan"}, summary.Topics)
	assert.Empty(t, summary.Decisions)
	assert.NotNil(t, summary.Decisions)
	assert.Empty(t, summary.ActionItems)
}

func TestParseJSONWithPreamble(t *testing.T) {
	raw := "Here is the summary you asked for:\n{\"decisions\": [\"Adopt the new stack\"]}"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Adopt the new stack"}, summary.Decisions)
}

func TestParseUnrelatedJSONDegrades(t *testing.T) {
	raw := `{"foo": 1, "bar": "baz"}`

	summary, degraded := NewParser().Parse(raw)

	assert.True(t, degraded)
	assert.True(t, summary.IsEmpty())
	assert.Equal(t, raw, summary.RawResponse)
}

func TestParseProseDegrades(t *testing.T) {
	raw := "The team talked about many things and agreed to follow up at some point next quarter."

	summary, degraded := NewParser().Parse(raw)

	assert.True(t, degraded)
	assert.True(t, summary.IsEmpty())
	assert.NotNil(t, summary.Topics)
	assert.NotNil(t, summary.Decisions)
	assert.NotNil(t, summary.ActionItems)
	assert.Equal(t, raw, summary.RawResponse)
}

func TestParseEmptyInput(t *testing.T) {
	summary, degraded := NewParser().Parse("")

	assert.True(t, degraded)
	assert.True(t, summary.IsEmpty())
	assert.Empty(t, summary.RawResponse)
}

func TestParseCheckboxBullets(t *testing.T) {
	raw := "Action Items:\n- [ ] Finish the docs (Owner: John, Due: Friday)\n- [x] Send the invite"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	require.Len(t, summary.ActionItems, 2)
	assert.Equal(t, "Finish the docs", summary.ActionItems[0].Description)
	assert.Equal(t, "John", summary.ActionItems[0].Owner)
	assert.Equal(t, "Send the invite", summary.ActionItems[1].Description)
}

func TestParseUnknownHeadingClosesSection(t *testing.T) {
	raw := "Action Items:\n- Ship it\n## Highlights\n- not an action item"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	require.Len(t, summary.ActionItems, 1)
	assert.Equal(t, "Ship it", summary.ActionItems[0].Description)
}

func TestParseStrayBulletsBeforeHeaderDropped(t *testing.T) {
	raw := "- stray bullet\nTopics:\n- Real topic"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	assert.Equal(t, []string{"Real topic"}, summary.Topics)
}

func TestParseLongColonLineIsNotAHeader(t *testing.T) {
	raw := "Topics:\n- Pricing\nThe topics we spent most of the meeting going back and forth on were:\n- Hiring"

	summary, degraded := NewParser().Parse(raw)

	assert.False(t, degraded)
	// The long line reads as continuation text, not as a new header.
	assert.Equal(t, "Pricing The topics we spent most of the meeting going back and forth on were:", summary.Topics[0])
	assert.Equal(t, "Hiring", summary.Topics[1])
}

func TestParseIsPure(t *testing.T) {
	raw := "Topics:\n- A\nDecisions:\n- B\nAction Items:\n- C (Owner: John)"

	p := NewParser()
	first, firstDegraded := p.Parse(raw)
	second, secondDegraded := p.Parse(raw)

	assert.Equal(t, firstDegraded, secondDegraded)
	assert.Equal(t, first, second)
}
