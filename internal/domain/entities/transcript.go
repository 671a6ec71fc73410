package entities

import (
	"fmt"
	"strings"
)

// Utterance represents a contiguous speech segment attributed to one speaker
type Utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Transcript represents the output of the transcription stage
type Transcript struct {
	Text            string      `json:"text"`
	Language        string      `json:"language,omitempty"`
	DurationSeconds float64     `json:"duration_seconds,omitempty"`
	Confidence      float64     `json:"confidence,omitempty"`
	ModelUsed       string      `json:"model_used,omitempty"`
	Utterances      []Utterance `json:"utterances,omitempty"`
}

// HasSpeakers reports whether speaker labels are available
func (t *Transcript) HasSpeakers() bool {
	return len(t.Utterances) > 0
}

// FormatForPrompt renders the transcript for the summarization prompt.
// With speaker segments each line carries an [MM:SS Speaker] prefix so the
// model can attribute statements; without them the plain text is returned.
func (t *Transcript) FormatForPrompt() string {
	if len(t.Utterances) == 0 {
		return t.Text
	}
	var sb strings.Builder
	for _, utt := range t.Utterances {
		minutes := int(utt.Start) / 60
		seconds := int(utt.Start) % 60
		sb.WriteString(fmt.Sprintf("[%02d:%02d %s]: %s\n", minutes, seconds, utt.Speaker, utt.Text))
	}
	return sb.String()
}
