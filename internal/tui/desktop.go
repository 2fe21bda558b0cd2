package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxzinnx/deskfolio/internal/content"
)

const (
	iconCellW  = 16
	iconCellH  = 6
	iconTileW  = 8
	gridLeft   = 2
	gridTop    = 1
	launchKey  = "key"
	launchPtr  = "mouse"
	launchFind = "launcher"
)

// LaunchMsg reports that an icon was activated.
type LaunchMsg struct {
	Panel content.Panel
	Via   string
}

// OpenURLMsg asks the app to open an external link.
type OpenURLMsg struct {
	URL string
}

// RelockMsg asks the app to show the lock screen again.
type RelockMsg struct {
	Reason string
}

type quitMsg struct{}

// Desktop is the unlocked surface: an icon grid, panel modals and the
// launcher prompt.
type Desktop struct {
	panels   []content.Panel
	cursor   int
	pressed  int
	modal    int
	launches map[string]int
	launcher launcher
	width    int
	height   int
}

func NewDesktop(panels []content.Panel) *Desktop {
	return &Desktop{
		panels:   panels,
		pressed:  -1,
		modal:    -1,
		launcher: newLauncher(),
	}
}

func (d *Desktop) SetSize(width, height int) {
	d.width, d.height = width, height
}

func (d *Desktop) SetLaunchCounts(counts map[string]int) {
	d.launches = counts
}

// Label returns the display label of the panel with slug, or slug itself
// when no such panel is on the desktop.
func (d *Desktop) Label(slug string) string {
	for _, p := range d.panels {
		if p.Slug == slug {
			return p.Label
		}
	}
	return slug
}

// Scope returns the key scope of the topmost desktop layer.
func (d *Desktop) Scope() string {
	switch {
	case d.launcher.active:
		return scopeLauncher
	case d.modal >= 0:
		return scopeModal
	default:
		return scopeDesktop
	}
}

func (d *Desktop) Cursor() int { return d.cursor }

// ModalPanel returns the open panel, if any.
func (d *Desktop) ModalPanel() (content.Panel, bool) {
	if d.modal < 0 || d.modal >= len(d.panels) {
		return content.Panel{}, false
	}
	return d.panels[d.modal], true
}

// Reset clears transient state when the desktop is hidden.
func (d *Desktop) Reset() {
	d.pressed = -1
	d.modal = -1
	d.launcher.close()
}

func (d *Desktop) columns() int {
	return max(1, (d.width-gridLeft*2)/iconCellW)
}

// iconAt maps a terminal cell to an icon index, or -1.
func (d *Desktop) iconAt(x, y int) int {
	if x < gridLeft || y < gridTop {
		return -1
	}
	col := (x - gridLeft) / iconCellW
	row := (y - gridTop) / iconCellH
	if col >= d.columns() {
		return -1
	}
	idx := row*d.columns() + col
	if idx >= len(d.panels) {
		return -1
	}
	return idx
}

func (d *Desktop) Update(msg tea.Msg, keys *KeyRegistry) tea.Cmd {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(m, keys)
	case tea.MouseMsg:
		return d.handleMouse(m)
	}
	if d.launcher.active {
		var cmd tea.Cmd
		d.launcher.input, cmd = d.launcher.input.Update(msg)
		return cmd
	}
	return nil
}

func (d *Desktop) handleKey(m tea.KeyMsg, keys *KeyRegistry) tea.Cmd {
	scope := d.Scope()
	b := keys.Lookup(m.String(), scope)
	if scope == scopeLauncher {
		if b == nil {
			var cmd tea.Cmd
			d.launcher.input, cmd = d.launcher.input.Update(m)
			d.launcher.refresh(d.panels)
			return cmd
		}
		switch b.Action {
		case actionClose:
			d.launcher.close()
		case actionUp:
			d.launcher.move(-1)
		case actionDown:
			d.launcher.move(1)
		case actionActivate:
			idx := d.launcher.selected()
			d.launcher.close()
			if idx >= 0 {
				d.cursor = idx
				return d.activate(idx, launchFind)
			}
		case actionQuit:
			return emit(quitMsg{})
		}
		return nil
	}
	if b == nil {
		return nil
	}
	if scope == scopeModal {
		switch b.Action {
		case actionClose:
			d.modal = -1
		case actionOpenLink:
			if p, ok := d.ModalPanel(); ok && p.Link.URL != "" {
				return emit(OpenURLMsg{URL: p.Link.URL})
			}
		case actionRelock:
			return emit(RelockMsg{Reason: "key"})
		case actionQuit:
			return emit(quitMsg{})
		}
		return nil
	}
	cols := d.columns()
	switch b.Action {
	case actionLeft:
		d.moveCursor(-1)
	case actionRight:
		d.moveCursor(1)
	case actionUp:
		d.moveCursor(-cols)
	case actionDown:
		d.moveCursor(cols)
	case actionActivate:
		return d.activate(d.cursor, launchKey)
	case actionLauncher:
		d.launcher.open(d.panels)
	case actionRelock:
		return emit(RelockMsg{Reason: "key"})
	case actionQuit:
		return emit(quitMsg{})
	}
	return nil
}

func (d *Desktop) moveCursor(delta int) {
	next := d.cursor + delta
	if next < 0 || next >= len(d.panels) {
		return
	}
	d.cursor = next
}

func (d *Desktop) handleMouse(m tea.MouseMsg) tea.Cmd {
	if m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft && d.onLockButton(m.X, m.Y) {
		return emit(RelockMsg{Reason: "button"})
	}
	if d.modal >= 0 || d.launcher.active {
		return nil
	}
	idx := d.iconAt(m.X, m.Y)
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return nil
		}
		d.pressed = idx
		if idx >= 0 {
			d.cursor = idx
		}
	case tea.MouseActionMotion:
		if d.pressed >= 0 && idx != d.pressed {
			d.pressed = -1
		}
	case tea.MouseActionRelease:
		pressed := d.pressed
		d.pressed = -1
		if pressed >= 0 && pressed == idx {
			return d.activate(idx, launchPtr)
		}
	}
	return nil
}

func (d *Desktop) activate(idx int, via string) tea.Cmd {
	if idx < 0 || idx >= len(d.panels) {
		return nil
	}
	p := d.panels[idx]
	if p.HasModal() {
		d.modal = idx
	}
	return emit(LaunchMsg{Panel: p, Via: via})
}

func (d *Desktop) onLockButton(x, y int) bool {
	if y != d.height-1 {
		return false
	}
	start, end := lockButtonSpan(d.width)
	return x >= start && x < end
}

// View renders the desktop body above the status bar.
func (d *Desktop) View() string {
	height := max(1, d.height-1)
	grid := d.renderGrid()
	canvas := fitCanvas(grid, d.width, height)
	if p, ok := d.ModalPanel(); ok {
		count := -1
		if d.launches != nil {
			count = d.launches[p.Slug]
		}
		canvas = overlayCentered(canvas, renderPanel(p, count, min(72, d.width-8)), d.width, height)
	}
	if d.launcher.active {
		canvas = overlayCentered(canvas, d.renderLauncher(), d.width, height)
	}
	return canvas
}

func (d *Desktop) renderGrid() string {
	cols := d.columns()
	var rows []string
	for start := 0; start < len(d.panels); start += cols {
		end := min(start+cols, len(d.panels))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, d.renderIcon(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return strings.Repeat("\n", gridTop) + lipgloss.NewStyle().MarginLeft(gridLeft).Render(grid)
}

func (d *Desktop) renderIcon(i int) string {
	p := d.panels[i]
	tile := lipgloss.NewStyle().
		Width(iconTileW).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true).
		Foreground(colorCrust).
		Background(lipgloss.Color(p.Color))
	label := iconLabelStyle
	if d.pressed == i {
		tile = tile.Faint(true)
		label = label.Faint(true)
	}
	if d.cursor == i && d.modal < 0 {
		label = label.Foreground(colorFocus).Underline(true)
	}
	body := lipgloss.JoinVertical(lipgloss.Center, tile.Render(p.Glyph), label.Render(p.Label))
	return lipgloss.Place(iconCellW, iconCellH, lipgloss.Center, lipgloss.Top, body)
}

func (d *Desktop) renderLauncher() string {
	var b strings.Builder
	b.WriteString(d.launcher.input.View())
	b.WriteString("\n")
	if len(d.launcher.results) == 0 {
		b.WriteString(modalMuted.Render("nada encontrado"))
	}
	for i, idx := range d.launcher.results {
		line := "  " + d.panels[idx].Label
		if i == d.launcher.cursor {
			line = lipgloss.NewStyle().Foreground(colorFocus).Render("› " + d.panels[idx].Label)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
