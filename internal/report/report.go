package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"meetscribe-go/internal/actionitem"
	"meetscribe-go/internal/store"
)

const (
	sheetOverview   = "Overview"
	sheetTranscript = "Transcript"
	sheetActions    = "Action Items"
)

// Build renders a meeting minutes workbook: an overview sheet, the full
// transcript and summary, and the parsed action items.
func Build(m *store.Meeting, items []actionitem.Item) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetOverview)
	setRows(f, sheetOverview, [][]interface{}{
		{"Meeting ID", m.ID},
		{"Space ID", m.SpaceID},
		{"Title", m.Title},
		{"Last updated", m.UpdatedAt.Format(time.RFC3339)},
		{"Action items", len(items)},
	})

	if _, err := f.NewSheet(sheetTranscript); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	setRows(f, sheetTranscript, [][]interface{}{
		{"Summary", deref(m.Summary)},
		{"Transcript", deref(m.Transcript)},
	})

	if _, err := f.NewSheet(sheetActions); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	rows := [][]interface{}{{"Item", "Owner", "Deadline"}}
	for _, it := range items {
		rows = append(rows, []interface{}{it.Text, it.Owner, it.Deadline})
	}
	setRows(f, sheetActions, rows)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		_ = f.SetSheetRow(sheet, cell, &row)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
