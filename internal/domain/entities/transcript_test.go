package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForPromptWithoutSpeakers(t *testing.T) {
	tr := &Transcript{Text: "plain transcript text"}

	assert.False(t, tr.HasSpeakers())
	assert.Equal(t, "plain transcript text", tr.FormatForPrompt())
}

func TestFormatForPromptWithSpeakers(t *testing.T) {
	tr := &Transcript{
		Text: "ignored when utterances exist",
		Utterances: []Utterance{
			{Speaker: "A", Text: "Let's get started.", Start: 0, End: 2.5},
			{Speaker: "B", Text: "I'll own the rollout.", Start: 65.4, End: 70.1},
		},
	}

	assert.True(t, tr.HasSpeakers())

	out := tr.FormatForPrompt()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "[00:00 A]: Let's get started.", lines[0])
	assert.Equal(t, "[01:05 B]: I'll own the rollout.", lines[1])
}
