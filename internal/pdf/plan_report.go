package pdf

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"portfolio/internal/models"
)

// Generator is implemented by ReportGenerator; handlers depend on this for tests.
type Generator interface {
	GeneratePlanReport(w io.Writer, data PlanReportData) error
}

// ReportGenerator renders plan reports. With an empty FontPath it uses the
// built-in Helvetica, translating text to cp1252.
type ReportGenerator struct {
	FontPath string
	fontName string
}

type PlanReportData struct {
	Plan        models.Plan
	Stats       models.PlanStats
	GeneratedAt time.Time
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	name := "Helvetica"
	if fontPath != "" {
		name = "DejaVu"
	}
	return &ReportGenerator{FontPath: fontPath, fontName: name}
}

func (g *ReportGenerator) GeneratePlanReport(w io.Writer, data PlanReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(data.Plan.Title, true)
	pdf.SetAuthor("Portfolio", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	tr := func(s string) string { return s }
	if g.FontPath != "" {
		pdf.AddUTF8Font(g.fontName, "", g.FontPath)
		pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 9)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	// Title
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, tr(data.Plan.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	generated := data.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 7, "Generated "+generated.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	g.hr(pdf)

	g.sectionTitle(pdf, "Plan")
	g.kvLine(pdf, "Status", string(data.Plan.Status))
	g.kvLine(pdf, "Start", data.Plan.StartDate.Format("2006-01-02"))
	if data.Plan.TargetEndDate != nil {
		g.kvLine(pdf, "Target end", data.Plan.TargetEndDate.Format("2006-01-02"))
	}
	if d := strings.TrimSpace(data.Plan.Description); d != "" {
		pdf.SetFont(g.fontName, "", 11)
		pdf.MultiCell(0, 6, tr(d), "", "L", false)
	}
	if len(data.Plan.Goals) > 0 {
		pdf.Ln(1)
		g.sectionTitle(pdf, "Goals")
		for _, goal := range data.Plan.Goals {
			pdf.MultiCell(0, 6, tr("- "+goal), "", "L", false)
		}
	}
	pdf.Ln(2)
	g.hr(pdf)

	st := data.Stats
	g.sectionTitle(pdf, "Progress")
	g.kvLine(pdf, "Tasks", fmt.Sprintf("%d of %d completed", st.CompletedTasks, st.TotalTasks))
	g.kvLine(pdf, "Completion", fmt.Sprintf("%.1f%%", st.CompletionPercentage))
	g.kvLine(pdf, "Time spent", st.TotalHours+" h")
	pdf.Ln(2)

	if len(st.Phases) > 0 {
		g.sectionTitle(pdf, "Phases")
		g.tableRow(pdf, true, []float64{90, 30, 30, 20}, "Phase", "Tasks", "Done %", "Hours")
		for _, p := range st.Phases {
			g.tableRow(pdf, false, []float64{90, 30, 30, 20},
				tr(p.Title),
				fmt.Sprintf("%d/%d", p.CompletedTasks, p.TotalTasks),
				fmt.Sprintf("%.1f", p.CompletionPercentage),
				models.FormatHours(p.TotalSeconds),
			)
		}
		pdf.Ln(3)
	}

	g.sectionTitle(pdf, "Tasks")
	if len(st.TaskBreakdown) == 0 {
		pdf.CellFormat(0, 6, "No tasks yet.", "", 1, "L", false, 0, "")
	} else {
		g.tableRow(pdf, true, []float64{110, 35, 25}, "Task", "Status", "Hours")
		for _, t := range st.TaskBreakdown {
			g.tableRow(pdf, false, []float64{110, 35, 25}, tr(t.Title), string(t.Status), t.TotalHours)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render plan report: %w", err)
	}
	return nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) tableRow(pdf *gofpdf.Fpdf, header bool, widths []float64, cells ...string) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, c := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 6, c, "1", ln, "L", header, 0, "")
	}
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
