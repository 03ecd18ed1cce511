package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/shortkey/internal/settings"
	"github.com/jpl-au/shortkey/internal/shortcut"
)

// Styles holds the popup's lipgloss styles.
type Styles struct {
	Key      lipgloss.Style
	Title    lipgloss.Style
	Group    lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
	Tag      lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns the standard styles.
func DefaultStyles() Styles {
	return Styles{
		Key:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Title:    lipgloss.NewStyle(),
		Group:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Selected: lipgloss.NewStyle().Reverse(true),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Tag:      lipgloss.NewStyle().Padding(0, 1),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.executed != nil {
		return ""
	}

	header := lipgloss.JoinVertical(lipgloss.Left, m.input.View(), m.hint())
	list := m.grid()
	filters := m.filters()
	if filters == "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, list) + "\n"
	}

	var body string
	switch m.snap.CategoryFilterPosition {
	case settings.PositionBottom:
		body = lipgloss.JoinVertical(lipgloss.Left, list, filters)
	case settings.PositionLeft:
		body = lipgloss.JoinHorizontal(lipgloss.Top, filters, "  ", list)
	case settings.PositionRight:
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", filters)
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, filters, list)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body) + "\n"
}

func (m Model) hint() string {
	switch {
	case m.mode == ModeSearch:
		return m.styles.Hint.Render("esc to close")
	case m.buffer != "":
		return m.styles.Hint.Render("keys: " + m.buffer)
	}
	return m.styles.Hint.Render("press a key")
}

// filters renders the tag bar, vertical when placed at the side.
func (m Model) filters() string {
	if len(m.tags) == 0 {
		return ""
	}
	cells := []string{m.tagCell("all", "", m.tag == "")}
	for _, t := range m.tags {
		cells = append(cells, m.tagCell(t.Name, t.Color, m.tag == t.Name))
	}
	switch m.snap.CategoryFilterPosition {
	case settings.PositionLeft, settings.PositionRight:
		return lipgloss.JoinVertical(lipgloss.Left, cells...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) tagCell(name, color string, active bool) string {
	s := m.styles.Tag
	if color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	if active {
		s = s.Reverse(true)
	}
	return s.Render(name)
}

// grid lays the candidates out row by row in the configured column count.
func (m Model) grid() string {
	if len(m.items) == 0 {
		return m.styles.Empty.Render("no matches")
	}

	cols := max(m.snap.ListColumnCount, 1)
	width := max(m.width/cols, 16)
	cell := lipgloss.NewStyle().Width(width).MaxWidth(width)

	var rows []string
	for start := 0; start < len(m.items); start += cols {
		end := min(start+cols, len(m.items))
		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, cell.Render(m.item(i)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) item(i int) string {
	c := m.items[i]
	line := m.styles.Key.Render(padKey(c)) + " " + m.styles.Title.Render(c.Title)
	if c.IsGroup() {
		line += " " + m.styles.Group.Render("[group]")
	}
	if i == m.selected {
		return m.styles.Selected.Render(line)
	}
	return line
}

func padKey(c shortcut.Candidate) string {
	if c.Key == "" {
		return "  "
	}
	return c.Key
}
