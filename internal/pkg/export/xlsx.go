package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const AttendanceSheet = "Attendance"

var attendanceHeaders = []string{"Date", "Employee", "Email", "Role", "Status", "Reason", "Virtual"}

// AttendanceRow is one reconciled attendance day.
type AttendanceRow struct {
	Date     string
	Employee string
	Email    string
	Role     string
	Status   string
	Reason   string
	Virtual  bool
}

// AttendanceXLSX renders rows into a single-sheet workbook.
func AttendanceXLSX(rows []AttendanceRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AttendanceSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range attendanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(AttendanceSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(attendanceHeaders), 1)
	if err := f.SetCellStyle(AttendanceSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		virtual := "No"
		if r.Virtual {
			virtual = "Yes"
		}
		values := []interface{}{r.Date, r.Employee, r.Email, r.Role, r.Status, r.Reason, virtual}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(AttendanceSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(AttendanceSheet, "A", "A", 12)
	_ = f.SetColWidth(AttendanceSheet, "B", "C", 28)
	_ = f.SetColWidth(AttendanceSheet, "F", "F", 36)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
