package payroll

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RenderPayslip builds the payslip document for a record. Every amount is
// read from the frozen CalculationDetails snapshot; the engine is never
// consulted here.
func RenderPayslip(record *PayrollRecord) ([]byte, error) {
	var calc Calculation
	if len(record.CalculationDetails) > 0 {
		if err := json.Unmarshal(record.CalculationDetails, &calc); err != nil {
			return nil, err
		}
	}

	lines := payslipLines(record, calc)
	return buildPayslipPDF(lines)
}

func payslipLines(record *PayrollRecord, calc Calculation) []string {
	lines := []string{
		"PAYSLIP",
		fmt.Sprintf("Employee: %s", record.EmployeeName),
		fmt.Sprintf("Department: %s", record.Department),
		fmt.Sprintf("Period: %s to %s", calc.PayPeriodStart, calc.PayPeriodEnd),
		fmt.Sprintf("Status: %s", record.Status),
		"",
		"EARNINGS",
		amountLine("Basic Salary", calc.BasicSalary),
		amountLine("Overtime Pay", calc.OvertimePay),
		amountLine("Night Differential", calc.NightDiffPay),
		amountLine("Holiday Pay", calc.HolidayPay),
		amountLine("Allowances", calc.Allowances),
		amountLine("Bonuses", calc.Bonuses),
		amountLine("Gross Pay", calc.GrossPay),
		"",
		"DEDUCTIONS",
		amountLine("Late", calc.Attendance.LateDeduction),
		amountLine("Absence", calc.Attendance.AbsenceDeduction),
		amountLine("Undertime", calc.Attendance.UndertimeDeduction),
		amountLine("Half Day", calc.Attendance.HalfDayDeduction),
		amountLine("SSS", calc.Statutory.SSS.Employee),
		amountLine("PhilHealth", calc.Statutory.PhilHealth.Employee),
		amountLine("Pag-IBIG", calc.Statutory.PagIBIG.Employee),
		amountLine("Withholding Tax", calc.Statutory.WithholdingTax),
		amountLine("Total Deductions", calc.TotalDeductions),
		"",
		amountLine("NET PAY", calc.NetPay),
	}

	if record.PaymentDate != nil {
		lines = append(lines, fmt.Sprintf("Payment Date: %s", record.PaymentDate.Format("2006-01-02")))
	}

	return lines
}

func amountLine(label string, amount decimal.Decimal) string {
	return fmt.Sprintf("%-22s PHP %s", label, amount.StringFixed(2))
}

func buildPayslipPDF(lines []string) ([]byte, error) {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
