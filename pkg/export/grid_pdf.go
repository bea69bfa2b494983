package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/schedly/course-planner-api/internal/models"
)

// GridPDFExporter renders weekly grid placements into a printable page.
type GridPDFExporter struct{}

// NewGridPDFExporter constructs a grid PDF exporter.
func NewGridPDFExporter() *GridPDFExporter {
	return &GridPDFExporter{}
}

const (
	gridMarginLeft = 10.0
	gridMarginTop  = 15.0
	gridHeaderH    = 8.0
	gridTimeColW   = 14.0
	gridPageW      = 297.0
	gridPageH      = 210.0
)

// Render draws the day columns, hour lines and one block per placement.
// Side-by-side blocks come straight from the layout engine's width and
// offset fractions.
func (e *GridPDFExporter) Render(placements []models.SlotPlacement, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(gridMarginLeft, gridMarginTop, gridMarginLeft)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	}

	gridTop := gridMarginTop + 12
	gridW := gridPageW - 2*gridMarginLeft - gridTimeColW
	colW := gridW / float64(len(models.WeekDays))
	hours := models.GridLastHour - models.GridBaseHour + 1
	rowH := (gridPageH - gridTop - 10 - gridHeaderH) / float64(hours*models.GridRowsPerHour)

	// Day headers.
	pdf.SetFont("Arial", "B", 10)
	pdf.SetXY(gridMarginLeft+gridTimeColW, gridTop)
	for _, day := range models.WeekDays {
		pdf.CellFormat(colW, gridHeaderH, string(day), "1", 0, "C", false, 0, "")
	}

	// Hour lines and labels.
	pdf.SetFont("Arial", "", 8)
	pdf.SetDrawColor(200, 200, 200)
	for h := 0; h <= hours; h++ {
		y := gridTop + gridHeaderH + float64(h*models.GridRowsPerHour)*rowH
		pdf.Line(gridMarginLeft+gridTimeColW, y, gridMarginLeft+gridTimeColW+gridW, y)
		if h < hours {
			pdf.SetXY(gridMarginLeft, y)
			pdf.CellFormat(gridTimeColW, 5, fmt.Sprintf("%02d:00", models.GridBaseHour+h), "", 0, "L", false, 0, "")
		}
	}
	pdf.SetDrawColor(0, 0, 0)
	for i := 0; i <= len(models.WeekDays); i++ {
		x := gridMarginLeft + gridTimeColW + float64(i)*colW
		pdf.Line(x, gridTop, x, gridTop+gridHeaderH+float64(hours*models.GridRowsPerHour)*rowH)
	}

	// Course blocks.
	maxRow := hours*models.GridRowsPerHour + 1
	for _, p := range placements {
		startRow, endRow, visible := clipRows(p.StartRow, p.EndRow, maxRow)
		if !visible || p.DayColumn < 1 || p.DayColumn > len(models.WeekDays) {
			continue
		}
		x := gridMarginLeft + gridTimeColW + float64(p.DayColumn-1)*colW + p.OffsetFraction*colW
		y := gridTop + gridHeaderH + float64(startRow-1)*rowH
		w := p.WidthFraction * colW
		h := float64(endRow-startRow) * rowH

		pdf.SetFillColor(225, 235, 250)
		pdf.Rect(x, y, w, h, "FD")

		pdf.SetFont("Arial", "B", 7)
		pdf.SetXY(x+0.5, y+0.5)
		pdf.CellFormat(w-1, 3, p.CourseTitle, "", 2, "L", false, 0, "")
		pdf.SetFont("Arial", "", 6)
		pdf.CellFormat(w-1, 3, fmt.Sprintf("%s - %s", p.Slot.FromTime, p.Slot.ToTime), "", 2, "L", false, 0, "")
		if p.Slot.Location != "" {
			pdf.CellFormat(w-1, 3, p.Slot.Location, "", 2, "L", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render grid pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// clipRows clamps a placement to the visible grid rows. Slots that start
// before the first displayed hour or run past the last one keep only the
// part that fits; slots entirely off the grid are not drawn at all.
func clipRows(startRow, endRow, maxRow int) (int, int, bool) {
	if startRow < 1 {
		startRow = 1
	}
	if endRow > maxRow {
		endRow = maxRow
	}
	return startRow, endRow, endRow > startRow
}
