package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Excel stores at most 32767 characters per cell.
const xlsxCellLimit = 32000

const (
	sheetOverview    = "Overview"
	sheetSummary     = "Summary"
	sheetActionItems = "Action Items"
	sheetRawResponse = "Raw Response"
)

func renderXLSX(record *entities.SummaryRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetOverview); err != nil {
		return nil, err
	}
	writeOverviewSheet(f, record)

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return nil, err
	}
	writeSummarySheet(f, record.Summary)

	if _, err := f.NewSheet(sheetActionItems); err != nil {
		return nil, err
	}
	writeActionItemsSheet(f, record)

	if record.Degraded && record.Summary.RawResponse != "" {
		if _, err := f.NewSheet(sheetRawResponse); err != nil {
			return nil, err
		}
		f.SetCellValue(sheetRawResponse, "A1", "Raw model response")
		f.SetCellValue(sheetRawResponse, "A2", truncateCell(record.Summary.RawResponse))
		f.SetColWidth(sheetRawResponse, "A", "A", 120)
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeOverviewSheet(f *excelize.File, record *entities.SummaryRecord) {
	rows := [][2]any{
		{"Summary ID", record.ID.String()},
		{"Generated", record.CreatedAt.Format(time.RFC3339)},
		{"Model", record.ModelUsed},
		{"Processing time (ms)", record.ProcessingTimeMS},
		{"Degraded", record.Degraded},
		{"Topics", len(record.Summary.Topics)},
		{"Decisions", len(record.Summary.Decisions)},
		{"Action items", len(record.Summary.ActionItems)},
	}
	if record.Insights != nil && record.Insights.MeetingType != "" {
		rows = append(rows, [2]any{"Meeting type", record.Insights.MeetingType})
	}
	if record.Transcript != nil && record.Transcript.DurationSeconds > 0 {
		rows = append(rows, [2]any{"Audio duration (s)", record.Transcript.DurationSeconds})
	}

	for i, row := range rows {
		f.SetCellValue(sheetOverview, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(sheetOverview, fmt.Sprintf("B%d", i+1), row[1])
	}
	f.SetColWidth(sheetOverview, "A", "A", 24)
	f.SetColWidth(sheetOverview, "B", "B", 44)
}

func writeSummarySheet(f *excelize.File, summary *entities.MeetingSummary) {
	f.SetCellValue(sheetSummary, "A1", "Section")
	f.SetCellValue(sheetSummary, "B1", "Item")

	row := 2
	for _, topic := range summary.Topics {
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), "Topic")
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), truncateCell(topic))
		row++
	}
	for _, decision := range summary.Decisions {
		f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), "Decision")
		f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), truncateCell(decision))
		row++
	}

	f.SetColWidth(sheetSummary, "A", "A", 12)
	f.SetColWidth(sheetSummary, "B", "B", 80)
}

func writeActionItemsSheet(f *excelize.File, record *entities.SummaryRecord) {
	headers := []string{"Description", "Owner", "Due", "Priority", "Effort"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetActionItems, cell, h)
	}

	for i, item := range record.Summary.ActionItems {
		row := i + 2
		effort := ""
		if record.Insights != nil {
			effort = record.Insights.Efforts[item.Description]
		}
		f.SetCellValue(sheetActionItems, fmt.Sprintf("A%d", row), truncateCell(item.Description))
		f.SetCellValue(sheetActionItems, fmt.Sprintf("B%d", row), item.Owner)
		f.SetCellValue(sheetActionItems, fmt.Sprintf("C%d", row), item.DueDate)
		f.SetCellValue(sheetActionItems, fmt.Sprintf("D%d", row), item.Priority)
		f.SetCellValue(sheetActionItems, fmt.Sprintf("E%d", row), effort)
	}

	f.SetColWidth(sheetActionItems, "A", "A", 60)
	f.SetColWidth(sheetActionItems, "B", "E", 16)
}

func truncateCell(s string) string {
	if len(s) <= xlsxCellLimit {
		return s
	}
	return s[:xlsxCellLimit]
}
