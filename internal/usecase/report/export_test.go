package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	aiuse "github.com/johnquangdev/meeting-scribe/internal/usecase/ai"
)

func testRecord() *entities.SummaryRecord {
	record := entities.NewSummaryRecord()
	record.Summary.Topics = []string{"Q2 launch readiness", "Pricing page"}
	record.Summary.Decisions = []string{"Ship in the first week of May"}
	record.Summary.ActionItems = []entities.ActionItem{
		{Description: "Finish the docs", Owner: "John", DueDate: "Friday", Priority: entities.ActionItemPriorityHigh},
		{Description: "Draft the announcement", Priority: entities.ActionItemPriorityMedium},
	}
	record.Summary.RawTranscript = "the transcript"
	record.ModelUsed = "test-model"
	record.Insights = &entities.MeetingInsights{
		MeetingType: entities.MeetingTypePlanning,
		Highlights:  []string{"Decided: Ship in the first week of May"},
		Efforts:     map[string]string{"Finish the docs": entities.EffortModerate},
	}
	return record
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"markdown", FormatMarkdown},
		{"md", FormatMarkdown},
		{"text", FormatText},
		{"txt", FormatText},
		{"plain", FormatText},
		{"xlsx", FormatXLSX},
		{"excel", FormatXLSX},
		{" Markdown ", FormatMarkdown},
	}
	for _, tt := range tests {
		got, err := NormalizeFormat(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	_, err := NormalizeFormat("pdf")
	require.Error(t, err)
	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_INVALID_ARGUMENT, appErr.Code)
}

func TestRenderJSONRoundTrip(t *testing.T) {
	record := testRecord()

	export, err := NewExporter(nil).Render(record, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", export.ContentType)
	assert.True(t, strings.HasSuffix(export.Filename, ".json"))

	var decoded entities.MeetingSummary
	require.NoError(t, json.Unmarshal(export.Data, &decoded))

	// Field-for-field equality with the summary that was rendered.
	assert.Equal(t, record.Summary.Topics, decoded.Topics)
	assert.Equal(t, record.Summary.Decisions, decoded.Decisions)
	assert.Equal(t, record.Summary.ActionItems, decoded.ActionItems)
	assert.Equal(t, record.Summary.RawTranscript, decoded.RawTranscript)
}

func TestRenderMarkdown(t *testing.T) {
	record := testRecord()

	export, err := NewExporter(nil).Render(record, FormatMarkdown)
	require.NoError(t, err)

	md := string(export.Data)
	assert.Contains(t, md, "# Meeting Summary")
	assert.Contains(t, md, "## Topics")
	assert.Contains(t, md, "## Decisions")
	assert.Contains(t, md, "## Action Items")
	assert.Contains(t, md, "- Q2 launch readiness")
	assert.Contains(t, md, "(Owner: John, Due: Friday, Priority: high)")
	assert.Contains(t, md, "Meeting type: planning")
	assert.NotContains(t, md, "## Raw Response")
}

// Exported markdown uses the same section and marker layout the parser
// reads, so a rendered report parses back into the same structured fields.
func TestRenderMarkdownSurvivesReparse(t *testing.T) {
	record := testRecord()

	export, err := NewExporter(nil).Render(record, FormatMarkdown)
	require.NoError(t, err)

	reparsed, degraded := aiuse.NewParser().Parse(string(export.Data))
	assert.False(t, degraded)
	assert.Equal(t, record.Summary.Topics, reparsed.Topics)
	assert.Equal(t, record.Summary.Decisions, reparsed.Decisions)
	assert.Equal(t, record.Summary.ActionItems, reparsed.ActionItems)
}

func TestRenderText(t *testing.T) {
	record := testRecord()

	export, err := NewExporter(nil).Render(record, FormatText)
	require.NoError(t, err)

	txt := string(export.Data)
	assert.Contains(t, txt, "MEETING SUMMARY")
	assert.Contains(t, txt, "TOPICS")
	assert.Contains(t, txt, "DECISIONS")
	assert.Contains(t, txt, "ACTION ITEMS")
	assert.Contains(t, txt, "Finish the docs (Owner: John, Due: Friday, Priority: high)")
}

func TestRenderDegradedIncludesRawResponse(t *testing.T) {
	record := entities.NewSummaryRecord()
	record.Degraded = true
	record.Summary.RawResponse = "free-form model rambling"

	for _, format := range []string{FormatText, FormatMarkdown} {
		export, err := NewExporter(nil).Render(record, format)
		require.NoError(t, err, "format %s", format)
		assert.Contains(t, string(export.Data), "free-form model rambling", "format %s", format)
	}
}

func TestRenderEmptySections(t *testing.T) {
	record := entities.NewSummaryRecord()

	export, err := NewExporter(nil).Render(record, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(export.Data), "_None recorded._")
}

func TestRenderXLSX(t *testing.T) {
	record := testRecord()

	export, err := NewExporter(nil).Render(record, FormatXLSX)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(export.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(export.Data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Overview")
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Action Items")
	assert.NotContains(t, sheets, "Raw Response")

	desc, err := f.GetCellValue("Action Items", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Finish the docs", desc)

	owner, err := f.GetCellValue("Action Items", "B2")
	require.NoError(t, err)
	assert.Equal(t, "John", owner)

	priority, err := f.GetCellValue("Action Items", "D2")
	require.NoError(t, err)
	assert.Equal(t, "high", priority)

	section, err := f.GetCellValue("Summary", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Topic", section)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := NewExporter(nil).Render(testRecord(), "pdf")
	require.Error(t, err)

	var appErr errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorCode_INVALID_ARGUMENT, appErr.Code)
}

func TestRenderNilRecord(t *testing.T) {
	_, err := NewExporter(nil).Render(nil, FormatJSON)
	require.Error(t, err)
}
