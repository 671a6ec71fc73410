package ai

import (
	"context"
	"strings"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// MockSummaryResponse is the canned model output returned in mock mode. It
// exercises every marker the parser understands: one fully annotated action
// item and one bare item.
const MockSummaryResponse = `Topics:
- Q2 product launch readiness
- Launch documentation status
- Pricing page review

Decisions:
- Ship the Q2 launch in the first week of May
- Keep the beta program open until launch

Action Items:
- Finish the launch documentation (Owner: John, Due: Friday, Priority: high)
- Draft the launch announcement email
- Review the pricing page (Owner: Maria, Due: next week)`

var mockUtterances = []entities.Utterance{
	{Speaker: "A", Text: "Morning everyone, let's run through the Q2 launch plan.", Start: 0.0, End: 4.1, Confidence: 0.97},
	{Speaker: "B", Text: "Docs are the main gap. I can have the user guide finished by Friday.", Start: 4.6, End: 10.3, Confidence: 0.95},
	{Speaker: "A", Text: "Great. Maria, can you own the pricing page review before launch?", Start: 10.9, End: 15.8, Confidence: 0.96},
	{Speaker: "C", Text: "Yes, I'll review it next week and send notes to the team.", Start: 16.2, End: 20.7, Confidence: 0.94},
	{Speaker: "A", Text: "Then we're agreed: we ship in the first week of May and keep the beta open until then.", Start: 21.3, End: 27.9, Confidence: 0.96},
	{Speaker: "A", Text: "Quick recap before we close. Team discussed Q2 launch. John will finish docs by Friday. Maria reviews pricing next week.", Start: 28.4, End: 36.0, Confidence: 0.95},
}

// BuildMockTranscript returns a fresh copy of the canned transcript so
// callers can never corrupt the fixture.
func BuildMockTranscript() *entities.Transcript {
	utterances := make([]entities.Utterance, len(mockUtterances))
	copy(utterances, mockUtterances)

	texts := make([]string, 0, len(utterances))
	for _, utt := range utterances {
		texts = append(texts, utt.Text)
	}

	return &entities.Transcript{
		Text:            strings.Join(texts, " "),
		Language:        "en",
		DurationSeconds: utterances[len(utterances)-1].End,
		Confidence:      0.95,
		ModelUsed:       "mock",
		Utterances:      utterances,
	}
}

// MockTranscriber returns the canned transcript for any valid input. It
// enforces the same format and size rules as the live transcriber so mock
// mode rejects bad uploads identically.
type MockTranscriber struct {
	limits InputLimits
}

func NewMockTranscriber(limits InputLimits) *MockTranscriber {
	return &MockTranscriber{limits: limits}
}

func (t *MockTranscriber) Transcribe(ctx context.Context, audio []byte, format string) (*entities.Transcript, error) {
	if _, err := ValidateAudio(audio, format, t.limits); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return BuildMockTranscript(), nil
}

// MockSummarizer returns the canned summary for any non-empty transcript.
type MockSummarizer struct{}

func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

func (s *MockSummarizer) Summarize(ctx context.Context, transcriptText, promptTemplate string) (string, error) {
	if strings.TrimSpace(transcriptText) == "" {
		return "", errors.ErrEmptyInput("transcript")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// The prompt template is accepted but ignored; mock output is fixed.
	return MockSummaryResponse, nil
}
