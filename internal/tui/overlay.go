package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var modalFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorSurface1).
	Background(colorBase).
	Padding(1, 2)

// overlayCentered draws body inside a bordered card centred over base.
// base is padded or clipped to width x height first.
func overlayCentered(base, body string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := fitCanvas(base, width, height)
	card := modalFrame.Render(body)
	cardLines := strings.Split(card, "\n")
	cardWidth := maxLineWidth(cardLines)
	if cardWidth == 0 {
		return canvas
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(cardLines))/2)
	return overlayAt(canvas, cardLines, x, y, width)
}

func overlayAt(canvas string, card []string, x, y, width int) string {
	rows := strings.Split(canvas, "\n")
	cardWidth := maxLineWidth(card)
	for i, line := range card {
		row := y + i
		if row < 0 || row >= len(rows) {
			continue
		}
		target := padRightANSI(rows[row], width)
		left := padRightANSI(ansi.Truncate(target, x, ""), x)
		mid := padRightANSI(line, cardWidth)
		right := dropColumns(target, x+ansi.StringWidth(mid))
		rows[row] = padRightANSI(left+mid+right, width)
	}
	return strings.Join(rows, "\n")
}

// fitCanvas pads or clips s to exactly height lines of width columns.
func fitCanvas(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padRightANSI(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// shiftUp moves a canvas up by rows lines, filling the bottom with blanks.
func shiftUp(s string, rows, width int) string {
	if rows <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if rows > len(lines) {
		rows = len(lines)
	}
	blank := strings.Repeat(" ", width)
	out := append([]string(nil), lines[rows:]...)
	for len(out) < len(lines) {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

func dropColumns(s string, cols int) string {
	if cols <= 0 {
		return s
	}
	return strings.TrimPrefix(s, ansi.Truncate(s, cols, ""))
}

func padRightANSI(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
