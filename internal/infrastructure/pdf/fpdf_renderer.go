package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

// FpdfRenderer renders an estimate snapshot as a PDF document. The
// internal variant adds the cost and class columns; the client-facing one
// shows only what the portal shows.

type FpdfRenderer struct {
	companyName string
}

var _ interfaces.IPDFRenderer = (*FpdfRenderer)(nil)

func NewFpdfRenderer(companyName string) *FpdfRenderer {
	if companyName == "" {
		companyName = "Property Services"
	}
	return &FpdfRenderer{companyName: companyName}
}

func (r *FpdfRenderer) RenderEstimate(ctx context.Context, e entities.Estimate, internal bool) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Estimate %s", e.ID), false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, r.companyName)
	doc.Ln(12)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, fmt.Sprintf("Estimate: %s", e.Title))
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Building: %s", location(e)))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Status: %s    Priority: %s", e.Status, e.Priority))
	doc.Ln(6)
	if e.Description != "" {
		doc.MultiCell(0, 5, e.Description, "", "L", false)
	}
	doc.Ln(4)

	r.renderLineItems(doc, e, internal)

	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 7, fmt.Sprintf("Total: %.2f", e.EstimatedPrice))
	doc.Ln(7)
	if internal {
		doc.SetFont("Helvetica", "", 10)
		doc.Cell(0, 6, fmt.Sprintf("Estimated cost: %.2f    Profit: %.2f (%.1f%%)",
			e.EstimatedCost, e.EstimatedProfit(), e.EstimatedProfitMargin()))
		doc.Ln(6)
	}

	if e.ClientNotes != "" {
		doc.Ln(2)
		doc.SetFont("Helvetica", "I", 9)
		doc.MultiCell(0, 5, "Notes: "+e.ClientNotes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *FpdfRenderer) renderLineItems(doc *fpdf.Fpdf, e entities.Estimate, internal bool) {
	if len(e.LineItems) == 0 {
		return
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(70, 7, "Product/Service", "1", 0, "L", true, 0, "")
	doc.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 7, "Rate", "1", 0, "R", true, 0, "")
	doc.CellFormat(25, 7, "Amount", "1", 0, "R", true, 0, "")
	if internal {
		doc.CellFormat(25, 7, "Cost", "1", 0, "R", true, 0, "")
		doc.CellFormat(25, 7, "Class", "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)
	for _, li := range e.LineItems {
		doc.CellFormat(70, 6, truncate(li.ProductService, 45), "1", 0, "L", false, 0, "")
		doc.CellFormat(20, 6, fmt.Sprintf("%.2f", li.Qty), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 6, fmt.Sprintf("%.2f", li.Rate), "1", 0, "R", false, 0, "")
		doc.CellFormat(25, 6, fmt.Sprintf("%.2f", li.Amount+li.TaxAmount()), "1", 0, "R", false, 0, "")
		if internal {
			doc.CellFormat(25, 6, fmt.Sprintf("%.2f", li.EstimatedCost), "1", 0, "R", false, 0, "")
			doc.CellFormat(25, 6, truncate(li.Class, 15), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}
}

func location(e entities.Estimate) string {
	if e.ApartmentNumber == "" {
		return e.Building
	}
	return e.Building + ", " + e.ApartmentNumber
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-1]) + "..."
}
