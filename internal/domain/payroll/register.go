package payroll

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RegisterPDF renders the run's items as a printable payroll register.
func RegisterPDF(companyName string, p *Payroll, items []Item) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Registro de nómina", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Registro de nómina")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, companyName)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Periodo: "+p.PeriodLabel)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Estatus: "+p.Status)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Empleado", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Importe", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	total := decimal.Zero
	for _, item := range items {
		name := item.EmployeeName
		if name == "" {
			name = item.EmployeeID
		}
		pdf.CellFormat(120, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, item.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		total = total.Add(item.Amount)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, total.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
