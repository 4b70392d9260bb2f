package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/compme/internal/domain"
	"github.com/rgehrsitz/compme/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.TerminalColor
}

// ASCIIChart is a small line chart drawn with runes
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// WealthChart plots cumulative take-home wealth on both paths
func WealthChart(p domain.WealthProjection) *ASCIIChart {
	mil := make([]float64, len(p.Series))
	civ := make([]float64, len(p.Series))
	labels := make([]string, len(p.Series))
	for i, pt := range p.Series {
		mil[i] = pt.Military.InexactFloat64()
		civ[i] = pt.Civilian.InexactFloat64()
		labels[i] = fmt.Sprintf("Y%d", pt.Year)
	}
	return NewASCIIChart(fmt.Sprintf("Cumulative wealth over %d years", p.Years)).
		AddSeries("Military", mil, tuistyles.ColorMilitary).
		AddSeries("Civilian", civ, tuistyles.ColorCivilian).
		WithLabels(labels)
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.TerminalColor) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasPoints() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title) + "\n\n")
	}
	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))
	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n" + c.renderLegend())
	}
	return content.String()
}

func (c *ASCIIChart) hasPoints() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// bounds finds the value range across all series with 10% headroom. A flat
// range is widened so points map to the middle row.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, v := range s.Points {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if hi == lo {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

const yAxisWidth = 9

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := max(c.Width-yAxisWidth-3, 2)
	height := max(c.Height, 2)

	grid := make([][]rune, height)
	owner := make([][]int, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
		owner[i] = make([]int, width)
	}

	toCell := func(i, n int, v float64) (int, int) {
		x := 0
		if n > 1 {
			x = int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
		}
		y := height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(height-1)))
		return x, y
	}

	for si, s := range c.Series {
		char := seriesChar(si)
		for i, v := range s.Points {
			x, y := toCell(i, len(s.Points), v)
			if i > 0 {
				px, py := toCell(i-1, len(s.Points), s.Points[i-1])
				drawLine(grid, owner, px, py, x, y, '·', si)
			}
			if inGrid(grid, x, y) {
				grid[y][x] = char
				owner[y][x] = si
			}
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var out strings.Builder
	for row := range grid {
		yValue := hi - float64(row)/float64(height-1)*(hi-lo)
		out.WriteString(axis.Render(formatChartValue(yValue)) + " │ ")
		for col, r := range grid[row] {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[owner[row][col]].Color).Render(string(r)))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", width) + "\n")
	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(width))
	}
	return out.String()
}

func inGrid(grid [][]rune, x, y int) bool {
	return y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y])
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two cells with Bresenham's algorithm without
// overwriting plotted points.
func drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, char rune, series int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	x, y := x0, y0
	for {
		if inGrid(grid, x, y) && grid[y][x] == ' ' {
			grid[y][x] = char
			owner[y][x] = series
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places each label under its column, skipping any that
// would overlap the previous one.
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	line := []rune(strings.Repeat(" ", width+2))
	next := 0
	for i, label := range c.Labels {
		x := 0
		if len(c.Labels) > 1 {
			x = int(math.Round(float64(i) / float64(len(c.Labels)-1) * float64(width-1)))
		}
		x += 2
		if x < next || x+len(label) > len(line) {
			continue
		}
		copy(line[x:], []rune(label))
		next = x + len(label) + 1
	}
	return strings.Repeat(" ", yAxisWidth) + tuistyles.SubtitleStyle.Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, len(c.Series))
	for i, s := range c.Series {
		items[i] = lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i))) + " " + s.Name
	}
	return tuistyles.SubtitleStyle.Render("Legend: ") + strings.Join(items, "  ")
}

// formatChartValue formats a Y-axis value
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	}
	return fmt.Sprintf("$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
