// Package report builds the downloadable PDF summary of a filtered claims
// view: a KPI block, the describe statistics, a bounded claims table, and
// optionally the rendered charts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/claimloom/claimloom/internal/filter"
	"github.com/claimloom/claimloom/internal/stats"
)

// TableRowLimit caps the claims table so the report stays readable.
const TableRowLimit = 30

// Params carries everything the report needs; all fields are computed
// upstream so building the PDF has no hidden dependencies.
type Params struct {
	View     filter.View
	Summary  stats.Summary
	Describe stats.Describe
	// Charts are optional pre-rendered PNGs appended after the table.
	Charts [][]byte
	// RowLimit overrides TableRowLimit when > 0.
	RowLimit int
	// Now stamps the footer; zero means time.Now().
	Now time.Time
}

// Build writes the PDF to w. Each call produces a fresh document with its
// own report ID.
func Build(w io.Writer, p Params) error {
	now := p.Now
	if now.IsZero() {
		now = time.Now()
	}
	reportID := uuid.NewString()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(40, 40, 40)
		pdf.CellFormat(0, 10, "Insurance Claims Report", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 100, 100)
		footer := fmt.Sprintf("Page %d  |  %s  |  report %s", pdf.PageNo(), now.Format("2006-01-02 15:04"), reportID)
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	writeSummary(pdf, p.Summary)
	writeDescribe(pdf, p.Describe)
	writeTable(pdf, p)

	for i, png := range p.Charts {
		if len(png) == 0 {
			continue
		}
		name := fmt.Sprintf("chart-%d", i)
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		pdf.AddPage()
		pdf.ImageOptions(name, 10, 30, 190, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeSummary(pdf *fpdf.Fpdf, s stats.Summary) {
	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Claims: %s", USD(s.Total)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Average Claim: %s", USD(s.Mean)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Approved Claims: %s", USD(s.ApprovedTotal)), "", 1, "", false, 0, "")
	pdf.Ln(5)
}

func writeDescribe(pdf *fpdf.Fpdf, d stats.Describe) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(20, 20, 20)
	lines := []struct {
		label string
		value string
	}{
		{"count", strconv.Itoa(d.Count)},
		{"mean", money(d.Mean)},
		{"std", money(d.Std)},
		{"min", money(d.Min)},
		{"25%", money(d.Q25)},
		{"50%", money(d.Median)},
		{"75%", money(d.Q75)},
		{"max", money(d.Max)},
	}
	for _, l := range lines {
		pdf.CellFormat(0, 8, fmt.Sprintf("%s: %s", l.label, l.value), "", 1, "", false, 0, "")
	}
	pdf.Ln(5)
}

func writeTable(pdf *fpdf.Fpdf, p Params) {
	limit := p.RowLimit
	if limit <= 0 {
		limit = TableRowLimit
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for _, col := range []string{"Claim ID", "Date", "Region", "Policy Type", "Claim Amount", "Claim Status"} {
		pdf.CellFormat(32, 8, col, "1", 0, "", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, r := range p.View.Records() {
		if i >= limit {
			break
		}
		pdf.CellFormat(32, 8, strconv.Itoa(r.ClaimID), "1", 0, "", false, 0, "")
		pdf.CellFormat(32, 8, r.Date.Format("2006-01-02"), "1", 0, "", false, 0, "")
		pdf.CellFormat(32, 8, r.Region, "1", 0, "", false, 0, "")
		pdf.CellFormat(32, 8, r.PolicyType, "1", 0, "", false, 0, "")
		amount := ""
		if r.HasAmount {
			amount = USD(r.Amount)
		}
		pdf.CellFormat(32, 8, amount, "1", 0, "", false, 0, "")
		pdf.CellFormat(32, 8, r.Status, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}
}

// USD formats a decimal amount as $1,234.56.
func USD(d decimal.Decimal) string {
	return "$" + groupThousands(d.StringFixed(2))
}

func money(f float64) string {
	return "$" + groupThousands(strconv.FormatFloat(f, 'f', 2, 64))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}
