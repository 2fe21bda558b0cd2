package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxzinnx/deskfolio/internal/content"
)

const (
	chartHeight = 8
	chartBarW   = 12
)

// renderPanel renders the modal body for p. launches is the number of times
// the panel was opened, or -1 when unknown.
func renderPanel(p content.Panel, launches, width int) string {
	width = max(24, width)
	var b strings.Builder
	title := p.Title
	if title == "" {
		title = p.Label
	}
	b.WriteString(modalTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(footerStyle.Render("esc fechar"))
	b.WriteString("\n\n")

	if p.Heading != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Color)).Render(p.Heading))
		b.WriteString("\n")
	}
	if p.Subheading != "" {
		b.WriteString(modalMuted.Render(p.Subheading))
		b.WriteString("\n")
	}
	if p.Note != "" {
		b.WriteString(modalMuted.Render(p.Note))
		b.WriteString("\n")
	}

	for _, s := range p.Sections {
		b.WriteString("\n")
		b.WriteString(modalSection.Render(s.Title))
		b.WriteString("\n")
		b.WriteString(renderSection(s, width))
		b.WriteString("\n")
	}

	if p.Link.URL != "" {
		label := p.Link.Label
		if label == "" {
			label = p.Link.URL
		}
		b.WriteString("\n")
		b.WriteString(modalLink.Render("↗ " + label))
		b.WriteString(footerStyle.Render("  enter"))
	}
	if launches >= 0 {
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render(fmt.Sprintf("aberto %d %s", launches, plural(launches, "vez", "vezes"))))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(b.String(), "\n"))
}

func renderSection(s content.Section, width int) string {
	if s.Chart {
		if chart := renderStats(s); chart != "" {
			return chart
		}
	}
	if allChips(s.Items) {
		chips := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			chips = append(chips, chipStyle.Render(it.Label))
		}
		return wrapChips(chips, width)
	}
	lines := make([]string, 0, len(s.Items))
	labelW := 0
	for _, it := range s.Items {
		labelW = max(labelW, lipgloss.Width(it.Label))
	}
	for _, it := range s.Items {
		pad := strings.Repeat(" ", labelW-lipgloss.Width(it.Label)+2)
		lines = append(lines, it.Label+pad+modalMuted.Render(it.Value))
	}
	return strings.Join(lines, "\n")
}

// renderStats draws the numeric items of s as a bar chart with the values
// listed underneath.
func renderStats(s content.Section) string {
	labels, values := s.ChartValues()
	if len(values) == 0 {
		return ""
	}
	colors := statColors()
	data := make([]barchart.BarData, 0, len(values))
	legend := make([]string, 0, len(values))
	for i, v := range values {
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)])
		data = append(data, barchart.BarData{
			Label:  labels[i],
			Values: []barchart.BarValue{{Name: labels[i], Value: v, Style: style}},
		})
		legend = append(legend, style.Render("■")+" "+fmt.Sprintf("%s %g", labels[i], v))
	}
	bc := barchart.New(chartBarW*len(values), chartHeight)
	bc.PushAll(data)
	bc.Draw()
	return bc.View() + "\n" + strings.Join(legend, "   ")
}

func allChips(items []content.Item) bool {
	for _, it := range items {
		if it.Value != "" {
			return false
		}
	}
	return len(items) > 0
}

func wrapChips(chips []string, width int) string {
	var lines []string
	line := ""
	for _, c := range chips {
		switch {
		case line == "":
			line = c
		case lipgloss.Width(line)+1+lipgloss.Width(c) > width:
			lines = append(lines, line)
			line = c
		default:
			line += " " + c
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
