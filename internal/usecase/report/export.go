package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Export formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatXLSX     = "xlsx"
)

// SupportedFormats lists the formats Render accepts, in display order.
func SupportedFormats() []string {
	return []string{FormatJSON, FormatMarkdown, FormatText, FormatXLSX}
}

// NormalizeFormat resolves user-supplied format names including the common
// short spellings. Unknown names return an invalid-argument error.
func NormalizeFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatText, "txt", "plain":
		return FormatText, nil
	case FormatXLSX, "excel":
		return FormatXLSX, nil
	}
	return "", errors.ErrInvalidArgument(
		fmt.Sprintf("unsupported export format %q, expected one of: %s", raw, strings.Join(SupportedFormats(), ", ")))
}

// Export is a rendered report ready to hand to a transport.
type Export struct {
	Format      string
	ContentType string
	Filename    string
	Data        []byte
}

// Exporter renders summary records into downloadable documents
type Exporter struct {
	logger *zap.Logger
}

func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Render produces the record in the requested format. The JSON format
// carries the structured summary only; the document formats add overview
// metadata and, for degraded records, the raw model response.
func (e *Exporter) Render(record *entities.SummaryRecord, format string) (*Export, error) {
	if record == nil || record.Summary == nil {
		return nil, errors.ErrInvalidArgument("nothing to export")
	}

	normalized, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	var (
		data        []byte
		contentType string
		extension   string
	)
	switch normalized {
	case FormatJSON:
		data, err = json.MarshalIndent(record.Summary, "", "  ")
		contentType = "application/json"
		extension = "json"
	case FormatMarkdown:
		data = []byte(renderMarkdown(record))
		contentType = "text/markdown; charset=utf-8"
		extension = "md"
	case FormatText:
		data = []byte(renderText(record))
		contentType = "text/plain; charset=utf-8"
		extension = "txt"
	case FormatXLSX:
		data, err = renderXLSX(record)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		extension = "xlsx"
	}
	if err != nil {
		return nil, errors.ErrReportExportFailed(normalized, err)
	}

	export := &Export{
		Format:      normalized,
		ContentType: contentType,
		Filename:    fmt.Sprintf("meeting-summary-%s.%s", shortID(record), extension),
		Data:        data,
	}

	if e.logger != nil {
		e.logger.Info("📄 Report rendered",
			zap.String("format", normalized),
			zap.String("filename", export.Filename),
			zap.Int("bytes", len(export.Data)))
	}
	return export, nil
}

func shortID(record *entities.SummaryRecord) string {
	id := record.ID.String()
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func renderMarkdown(record *entities.SummaryRecord) string {
	summary := record.Summary
	var b strings.Builder

	b.WriteString("# Meeting Summary\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", record.CreatedAt.Format(time.RFC3339))
	if record.ModelUsed != "" {
		fmt.Fprintf(&b, "- Model: `%s`\n", record.ModelUsed)
	}
	if record.Transcript != nil && record.Transcript.DurationSeconds > 0 {
		fmt.Fprintf(&b, "- Audio duration: %s\n", formatDuration(record.Transcript.DurationSeconds))
	}
	if record.Insights != nil && record.Insights.MeetingType != "" {
		fmt.Fprintf(&b, "- Meeting type: %s\n", record.Insights.MeetingType)
	}
	b.WriteString("\n")

	writeMarkdownList(&b, "Topics", summary.Topics)
	writeMarkdownList(&b, "Decisions", summary.Decisions)

	b.WriteString("## Action Items\n\n")
	if len(summary.ActionItems) == 0 {
		b.WriteString("_None recorded._\n\n")
	} else {
		for _, item := range summary.ActionItems {
			fmt.Fprintf(&b, "- [ ] %s\n", actionItemLine(item))
		}
		b.WriteString("\n")
	}

	if record.Insights != nil && len(record.Insights.Highlights) > 0 {
		writeMarkdownList(&b, "Highlights", record.Insights.Highlights)
	}

	if record.Degraded && summary.RawResponse != "" {
		b.WriteString("## Raw Response\n\n")
		b.WriteString("The model response could not be parsed into sections; the raw text follows.\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", strings.TrimSpace(summary.RawResponse))
	}

	return b.String()
}

func writeMarkdownList(b *strings.Builder, heading string, items []string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if len(items) == 0 {
		b.WriteString("_None recorded._\n\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func renderText(record *entities.SummaryRecord) string {
	summary := record.Summary
	var b strings.Builder

	b.WriteString("MEETING SUMMARY\n")
	fmt.Fprintf(&b, "Generated: %s\n", record.CreatedAt.Format(time.RFC3339))
	if record.ModelUsed != "" {
		fmt.Fprintf(&b, "Model: %s\n", record.ModelUsed)
	}
	b.WriteString("\n")

	writeTextList(&b, "TOPICS", summary.Topics)
	writeTextList(&b, "DECISIONS", summary.Decisions)

	b.WriteString("ACTION ITEMS\n")
	if len(summary.ActionItems) == 0 {
		b.WriteString("  (none)\n")
	} else {
		for _, item := range summary.ActionItems {
			fmt.Fprintf(&b, "  - %s\n", actionItemLine(item))
		}
	}
	b.WriteString("\n")

	if record.Degraded && summary.RawResponse != "" {
		b.WriteString("RAW RESPONSE\n")
		b.WriteString(strings.TrimSpace(summary.RawResponse))
		b.WriteString("\n")
	}

	return b.String()
}

func writeTextList(b *strings.Builder, heading string, items []string) {
	b.WriteString(heading + "\n")
	if len(items) == 0 {
		b.WriteString("  (none)\n")
	} else {
		for _, item := range items {
			fmt.Fprintf(b, "  - %s\n", item)
		}
	}
	b.WriteString("\n")
}

// actionItemLine renders one item in the same marker style the parser
// reads, so exported markdown survives a round trip through Parse.
func actionItemLine(item entities.ActionItem) string {
	line := item.Description
	extras := make([]string, 0, 3)
	if item.Owner != "" {
		extras = append(extras, "Owner: "+item.Owner)
	}
	if item.DueDate != "" {
		extras = append(extras, "Due: "+item.DueDate)
	}
	if item.Priority != "" {
		extras = append(extras, "Priority: "+item.Priority)
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, ", ") + ")"
	}
	return line
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return d.Truncate(time.Second).String()
}
