package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const lockButtonLabel = "bloquear"

// lockButtonSpan returns the column range [start, end) of the status bar
// lock button for a terminal of the given width.
func lockButtonSpan(width int) (int, int) {
	// right side layout: <button> <space> HH:MM <space>
	w := ansi.StringWidth(lockButton.Render(lockButtonLabel))
	end := width - len("00:00") - 2
	return max(0, end-w), max(0, end)
}

func renderStatusBar(width int, clockLabel, status string, isErr bool, help string) string {
	if width <= 0 {
		return ""
	}
	left := " ▣ deskfolio"
	msgStyle := statusOKStyle
	if isErr {
		msgStyle = statusErrStyle
	}
	if status != "" {
		left += "  " + msgStyle.Render(status)
	} else if help != "" {
		left += "  " + statusBarStyle.Render(help)
	}
	right := lockButton.Render(lockButtonLabel) + statusBarStyle.Render(" "+clockLabel+" ")
	start, _ := lockButtonSpan(width)
	left = padRightANSI(left, start)
	return statusBarStyle.Width(width).MaxWidth(width).Render(padRightANSI(left+right, width))
}

func renderFooter(keys *KeyRegistry, scope string) string {
	bindings := keys.HelpBindings(scope)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKey.Render(h.Key)+" "+footerStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerStyle.Render(" · "))
}

