package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/layout"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// historyModel - Interactive history browser
// =============================================================================

// historyModel is the bubbletea model for browsing a session: it lists the
// objects and steps through undo and redo.
type historyModel struct {
	sess   *editor.Session
	cursor int
	offset int
	height int
	status string
	failed bool
	err    error
}

func newHistoryModel(sess *editor.Session) historyModel {
	return historyModel{sess: sess, height: 15}
}

func (m historyModel) Init() tea.Cmd {
	return nil
}

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < m.sess.Document().Len()-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "u", "ctrl+z":
			m.report(m.sess.Undo())("undo", "nothing to undo")
		case "r", "ctrl+y":
			m.report(m.sess.Redo())("redo", "nothing to redo")
		case "h":
			m.report(m.sess.Distribute(layout.Horizontal, m.ids()...))("distributed horizontally", "needs three objects")
		case "v":
			m.report(m.sess.Distribute(layout.Vertical, m.ids()...))("distributed vertically", "needs three objects")
		case "x":
			if obj := m.selected(); obj != nil {
				m.report(m.sess.Edit(func(d *canvas.Document) error { return d.Remove(obj.ID) }))("deleted "+obj.ID, "")
			}
		}
		m.clamp()
		if m.err != nil {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-9, 5)
	}
	return m, nil
}

// report turns a session result into a status line. A corrupt snapshot is
// kept in m.err and ends the browser; other errors are shown and editing
// continues.
func (m *historyModel) report(ok bool, err error) func(done, noop string) {
	return func(done, noop string) {
		m.failed = err != nil
		switch {
		case errors.Is(err, errors.ErrCodeCorruptSnapshot):
			m.err = err
			m.status = errors.UserMessage(err)
		case err != nil:
			m.status = err.Error()
		case ok:
			m.status = done
		default:
			m.status = noop
		}
	}
}

func (m *historyModel) clamp() {
	n := m.sess.Document().Len()
	if m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m historyModel) ids() []string {
	objs := m.sess.Document().Objects
	ids := make([]string, len(objs))
	for i, o := range objs {
		ids[i] = o.ID
	}
	return ids
}

func (m historyModel) selected() *canvas.Object {
	objs := m.sess.Document().Objects
	if m.cursor < len(objs) {
		return objs[m.cursor]
	}
	return nil
}

func (m historyModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Session " + m.sess.ID()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("u undo  r redo  h/v distribute  x delete  ↑/↓ select  q quit"))
	b.WriteString("\n\n")

	objs := m.sess.Document().Objects
	end := min(m.offset+m.height, len(objs))

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		o := objs[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, o.ID, o.Type, num(o.Left), num(o.Top), num(o.Extent(layout.Horizontal)), num(o.Extent(layout.Vertical))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Object", "Type", "X", "Y", "W", "H").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			if col >= 3 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.historyLine())
	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(listErrorStyle.Render("  " + m.status))
		} else {
			b.WriteString(listDimStyle.Render("  " + m.status))
		}
	}

	return b.String()
}

// historyLine renders the undo log as one cell per entry with the cursor
// highlighted.
func (m historyModel) historyLine() string {
	h := m.sess.History()
	cells := make([]string, h.Len())
	for i := range cells {
		if i == h.Cursor() {
			cells[i] = StyleHighlight.Render("●")
		} else {
			cells[i] = listDimStyle.Render("○")
		}
	}
	return fmt.Sprintf("  %s %s", strings.Join(cells, ""), listDimStyle.Render(fmt.Sprintf("[%d/%d]", h.Cursor()+1, h.Len())))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
