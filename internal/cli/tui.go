package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/memlayout/pkg/node"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ClassListModel - Interactive class selection
// =============================================================================

// ClassListModel is the bubbletea model for interactive class selection.
// Typing filters the list by class name.
type ClassListModel struct {
	Classes  []*node.ClassNode
	Filter   string
	Cursor   int
	Selected *node.ClassNode
	Height   int
	Offset   int
}

// NewClassListModel creates a new class list model.
func NewClassListModel(classes []*node.ClassNode) ClassListModel {
	return ClassListModel{
		Classes: classes,
		Height:  15,
	}
}

// visible returns the classes matching the current filter.
func (m ClassListModel) visible() []*node.ClassNode {
	if m.Filter == "" {
		return m.Classes
	}
	needle := strings.ToLower(m.Filter)
	var out []*node.ClassNode
	for _, c := range m.Classes {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case tea.KeyDown:
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case tea.KeyEnter:
			if vis := m.visible(); len(vis) > 0 {
				m.Selected = vis[m.Cursor]
				return m, tea.Quit
			}
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-7, 5)
	}
	return m, nil
}

func (m ClassListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Class"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	b.WriteString("\n")
	if m.Filter != "" {
		b.WriteString("filter: " + StyleValue.Render(m.Filter))
	}
	b.WriteString("\n\n")

	vis := m.visible()
	end := min(m.Offset+m.Height, len(vis))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		c := vis[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, c.Name, fmt.Sprintf("0x%X", c.Size()), fmt.Sprint(c.Len())})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Size", "Fields").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(vis) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if vis[idx].IsPlaceholder() {
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(vis)), len(vis))))

	return b.String()
}
