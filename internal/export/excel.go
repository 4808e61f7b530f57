package export

import (
	"fmt"
	"io"

	"epitrack/internal/schedule"
	"epitrack/pkg/types"

	"github.com/xuri/excelize/v2"
)

const (
	SheetPlanning = "Planning"
	SheetOverdue  = "En retard"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var columns = []string{
	"Date",
	"État",
	"Équipement",
	"N° de série",
	"Type de vérification",
	"Responsable",
	"Priorité",
	"Statut",
	"Notes",
}

var columnWidths = []float64{12, 12, 28, 16, 28, 22, 10, 14, 40}

// FilePrefix starts every workbook name.
const FilePrefix = "verifications-"

// FileName names the workbook after the report day.
func FileName(report *schedule.Report) string {
	return fmt.Sprintf("%s%s.xlsx", FilePrefix, report.Today)
}

// Write renders report as a workbook with the full schedule on one sheet and
// the overdue checks on another.
func Write(w io.Writer, report *schedule.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlanning); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetOverdue); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"B91C1C"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	overdueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "B91C1C"},
	})
	if err != nil {
		return fmt.Errorf("failed to create overdue style: %w", err)
	}

	sheets := []struct {
		name    string
		entries []schedule.Entry
	}{
		{SheetPlanning, report.Entries},
		{SheetOverdue, report.Overdue},
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.entries, headerStyle, overdueStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, entries []schedule.Entry, headerStyle, overdueStyle int) error {
	header := make([]any, 0, len(columns))
	for _, c := range columns {
		header = append(header, c)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}

	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			e.ScheduledDate.Format(types.DateLayout),
			e.State.Label(),
			e.EquipmentName,
			e.SerialNumber,
			e.VerificationType,
			e.AssignedTo,
			priorityLabel(e.Priority),
			e.Status,
			e.Notes,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}

		if e.State == schedule.StateOverdue {
			end, _ := excelize.CoordinatesToCellName(len(columns), i+2)
			if err := f.SetCellStyle(sheet, cell, end, overdueStyle); err != nil {
				return fmt.Errorf("failed to style row %d of %s: %w", i+2, sheet, err)
			}
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s of %s: %w", col, sheet, err)
		}
	}

	err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return fmt.Errorf("failed to freeze header of %s: %w", sheet, err)
	}

	if len(entries) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(columns), len(entries)+1)
		if err := f.AutoFilter(sheet, "A1:"+end, nil); err != nil {
			return fmt.Errorf("failed to add filter to %s: %w", sheet, err)
		}
	}

	return nil
}

// priorityLabel shows unknown priorities as they were stored.
func priorityLabel(raw string) string {
	if label := types.ParsePriority(raw).Label(); label != "" {
		return label
	}
	return raw
}
