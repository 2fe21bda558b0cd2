package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/foxzinnx/deskfolio/internal/content"
)

// launcher is the "/" quick-open prompt over the desktop icons.
type launcher struct {
	active  bool
	input   textinput.Model
	results []int
	cursor  int
}

func newLauncher() launcher {
	ti := textinput.New()
	ti.Placeholder = "abrir…"
	ti.Prompt = "/ "
	ti.CharLimit = 40
	return launcher{input: ti}
}

func (l *launcher) open(panels []content.Panel) {
	l.active = true
	l.input.SetValue("")
	l.input.Focus()
	l.refresh(panels)
}

func (l *launcher) close() {
	l.active = false
	l.input.Blur()
	l.results = nil
	l.cursor = 0
}

func (l *launcher) refresh(panels []content.Panel) {
	l.results = rankPanels(l.input.Value(), panels)
	if l.cursor >= len(l.results) {
		l.cursor = max(0, len(l.results)-1)
	}
}

func (l *launcher) move(delta int) {
	if len(l.results) == 0 {
		return
	}
	l.cursor = (l.cursor + delta + len(l.results)) % len(l.results)
}

// selected returns the panel index under the cursor, or -1.
func (l *launcher) selected() int {
	if l.cursor < 0 || l.cursor >= len(l.results) {
		return -1
	}
	return l.results[l.cursor]
}

type rankedPanel struct {
	index int
	score int
}

// rankPanels orders panel indexes by how well query matches their label or
// slug: prefix matches first, then substrings, then near misses by edit
// distance. Panels that match nothing are left out.
func rankPanels(query string, panels []content.Panel) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(panels))
	if q == "" {
		for i := range panels {
			out = append(out, i)
		}
		return out
	}
	ranked := make([]rankedPanel, 0, len(panels))
	for i, p := range panels {
		best := -1
		for _, cand := range []string{strings.ToLower(p.Label), p.Slug} {
			if s := matchScore(q, cand); s >= 0 && (best < 0 || s < best) {
				best = s
			}
		}
		if best >= 0 {
			ranked = append(ranked, rankedPanel{index: i, score: best})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score < ranked[j].score })
	for _, r := range ranked {
		out = append(out, r.index)
	}
	return out
}

func matchScore(q, cand string) int {
	switch {
	case cand == "":
		return -1
	case strings.HasPrefix(cand, q):
		return 0
	case strings.Contains(cand, q):
		return 1
	}
	head := []rune(cand)
	if n := len([]rune(q)); len(head) > n {
		head = head[:n]
	}
	dist := levenshtein.ComputeDistance(q, string(head))
	if dist > max(1, len([]rune(q))/3) {
		return -1
	}
	return 2 + dist
}
