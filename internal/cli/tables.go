package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"patrimonio/internal/model"
	"patrimonio/internal/stats"
)

const dateLayout = "2006-01-02"

// FormatMoney renders a monetary amount, or a blank for an absent value.
// Absent cells must render as gaps, never as zero.
func FormatMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

// FormatPercent renders a ratio as a percentage, or a blank when absent.
func FormatPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

// RenderDailyTable renders the per-date totals.
func RenderDailyTable(daily []model.DailyTotal) string {
	rows := make([][]string, 0, len(daily))
	for _, dt := range daily {
		rows = append(rows, []string{
			dt.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", dt.Total),
		})
	}
	return renderTable([]string{"Date", "Total"}, rows)
}

// RenderMatrixTable renders the date × institution grid. Cells without a
// transaction stay blank.
func RenderMatrixTable(matrix *model.InstitutionMatrix) string {
	institutions := matrix.Institutions()
	header := append([]string{"Date"}, institutions...)

	rows := make([][]string, 0, matrix.Len())
	for _, date := range matrix.Dates() {
		row := []string{date.Format(dateLayout)}
		for _, inst := range institutions {
			if v, ok := matrix.Value(date, inst); ok {
				row = append(row, fmt.Sprintf("%.2f", v))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}
	return renderTable(header, rows)
}

// RenderStatsTable renders the derived statistics series.
func RenderStatsTable(series []model.StatsRow) string {
	header := []string{
		"Date", "Total", "Delta",
		"Avg 6", "Avg 12", "Avg 24",
		"Rel Delta", "Growth 6", "Growth 12", "Growth 24",
	}

	rows := make([][]string, 0, len(series))
	for _, r := range series {
		rows = append(rows, []string{
			r.Date.Format(dateLayout),
			fmt.Sprintf("%.2f", r.Total),
			FormatMoney(r.MonthlyDelta),
			FormatMoney(r.AvgDelta6),
			FormatMoney(r.AvgDelta12),
			FormatMoney(r.AvgDelta24),
			FormatPercent(r.RelDelta),
			FormatPercent(r.RelGrowth6),
			FormatPercent(r.RelGrowth12),
			FormatPercent(r.RelGrowth24),
		})
	}
	return renderTable(header, rows)
}

// RenderSnapshot renders one matrix row as an institution/amount listing for
// the distribution view. Absent institutions are omitted entirely.
func RenderSnapshot(matrix *model.InstitutionMatrix, row map[string]float64) string {
	rows := make([][]string, 0, len(row))
	for _, inst := range matrix.Institutions() {
		if v, ok := row[inst]; ok {
			rows = append(rows, []string{inst, fmt.Sprintf("%.2f", v)})
		}
	}
	return renderTable([]string{"Institution", "Amount"}, rows)
}

// RenderProjection renders a goal projection as a summary box.
func RenderProjection(p *stats.Projection) string {
	content := fmt.Sprintf(`Start date:        %s
Starting balance:  %.2f
Monthly capacity:  %.2f
Annual capacity:   %.2f
Goal:              %.2f
Projected balance: %.2f`,
		p.StartDate.Format(dateLayout),
		p.BalanceAtStart,
		p.MonthlyCapacity,
		p.AnnualCapacity,
		p.Target,
		p.FinalBalance,
	)
	return RenderBox(MoneyIcon+" Goal projection", content)
}

// renderTable lays out rows under a header with aligned columns.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	headerCells := make([]string, len(header))
	for i, h := range header {
		headerCells[i] = CellStyle.Width(widths[i] + 2).Render(h)
	}
	b.WriteString(HeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, headerCells...)))
	b.WriteString("\n")

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = CellStyle.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	return b.String()
}
