package report

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"meetscribe-go/internal/actionitem"
	"meetscribe-go/internal/store"
)

func strPtr(s string) *string { return &s }

func TestBuildWorkbook(t *testing.T) {
	m := &store.Meeting{
		ID:         42,
		SpaceID:    3,
		Title:      "Sprint review",
		Transcript: strPtr("we reviewed the sprint"),
		Summary:    strPtr("sprint went well"),
		UpdatedAt:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	items := []actionitem.Item{
		{Text: "update the board", Owner: "lina", Deadline: "Monday"},
		{Text: "close stale tickets"},
	}

	buf, err := Build(m, items)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue(sheetOverview, "B3"); got != "Sprint review" {
		t.Errorf("overview title = %q", got)
	}
	if got, _ := f.GetCellValue(sheetTranscript, "B2"); got != "we reviewed the sprint" {
		t.Errorf("transcript cell = %q", got)
	}
	if got, _ := f.GetCellValue(sheetActions, "A2"); got != "update the board" {
		t.Errorf("first action item = %q", got)
	}
	if got, _ := f.GetCellValue(sheetActions, "B2"); got != "lina" {
		t.Errorf("first action owner = %q", got)
	}
	if got, _ := f.GetCellValue(sheetActions, "C3"); got != "" {
		t.Errorf("missing deadline rendered as %q", got)
	}
}

func TestBuildEmptyMeeting(t *testing.T) {
	m := &store.Meeting{ID: 9, SpaceID: 1, Title: "Kickoff", UpdatedAt: time.Now()}
	buf, err := Build(m, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue(sheetTranscript, "B2"); got != "" {
		t.Errorf("nil transcript rendered as %q", got)
	}
}
