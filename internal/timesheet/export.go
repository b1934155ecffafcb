package timesheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the export writes to.
const SheetName = "Timesheet"

// Header is the fixed column set of an export.
var Header = []string{
	"Date", "Bucket", "Task", "Start Time", "End Time",
	"Duration", "Employee", "Position", "Project",
}

// Export writes rows as an xlsx workbook followed by a grand-total row.
func Export(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Date, r.Bucket, r.Task, r.StartTime, r.EndTime,
			r.Duration, r.Employee, r.Position, r.Project,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	totalRow := len(rows) + 2
	total := []interface{}{"Total", "", "", "", "", TotalDuration(rows)}
	if err := f.SetSheetRow(SheetName, fmt.Sprintf("A%d", totalRow), &total); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "I1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("I%d", totalRow), bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "A", "I", 16); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
