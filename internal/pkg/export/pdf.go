package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// SalarySlip holds the already computed monthly salary figures.
type SalarySlip struct {
	EmployeeName    string
	EmployeeEmail   string
	Role            string
	Month           string
	MonthlySalary   string
	PerDaySalary    string
	PresentDays     int
	PaidLeaveDays   int
	UnpaidLeaveDays int
	TotalAbsent     int
	CalculatedPay   string
}

// SalarySlipPDF renders a one-page slip.
func SalarySlipPDF(slip SalarySlip, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Slip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", slip.EmployeeEmail))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s", slip.Role))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Month: %s", slip.Month))
	pdf.Ln(12)

	lines := []struct {
		label string
		value string
	}{
		{"Monthly salary", slip.MonthlySalary},
		{"Per day", slip.PerDaySalary},
		{"Present days", fmt.Sprint(slip.PresentDays)},
		{"Paid leave days", fmt.Sprint(slip.PaidLeaveDays)},
		{"Unpaid leave days", fmt.Sprint(slip.UnpaidLeaveDays)},
		{"Absent days", fmt.Sprint(slip.TotalAbsent)},
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 9, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(90, 9, "Value", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(90, 8, l.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, l.value, "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 9, "Calculated pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(90, 9, slip.CalculatedPay, "1", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 10, fmt.Sprintf("Generated on %s", generatedAt.Format("02 January 2006 15:04:05")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render salary slip: %w", err)
	}
	return buf.Bytes(), nil
}
