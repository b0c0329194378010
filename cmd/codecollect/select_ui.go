package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hayeah/codecollect/internal/tree"
)

// keyAction is the closed vocabulary of logical key events the picker
// responds to. Raw-mode setup, restore on every exit path, and escape
// sequence decoding (including the bounded escape-vs-arrow disambiguation
// read) are bubbletea's responsibility; decodeKey reduces its key messages
// to this vocabulary.
type keyAction int

const (
	actionNone keyAction = iota
	actionUp
	actionDown
	actionCollapse
	actionExpand
	actionActivate
	actionExpandAll
	actionCollapseAll
	actionSelectAll
	actionSelectNone
	actionReset
	actionFind
	actionConfirm
	actionCancel
	actionEscape
)

func decodeKey(msg tea.KeyMsg) keyAction {
	switch msg.String() {
	case "up", "k", "w", "W":
		return actionUp
	case "down", "j", "s", "S":
		return actionDown
	case "left":
		return actionCollapse
	case "right":
		return actionExpand
	case " ":
		return actionActivate
	case "+", "=":
		return actionExpandAll
	case "-", "_":
		return actionCollapseAll
	case "a", "A":
		return actionSelectAll
	case "n", "N":
		return actionSelectNone
	case "r", "R":
		return actionReset
	case "f", "F":
		return actionFind
	case "enter":
		return actionConfirm
	case "q", "Q", "ctrl+c":
		return actionCancel
	case "esc":
		return actionEscape
	}
	return actionNone
}

// ExitState indicates how the picker is exiting.
type ExitState int

const (
	ExitStateNone    ExitState = iota // still running
	ExitStateAbort                    // cancelled, selection cleared
	ExitStateConfirm                  // confirmed
)

const pickerPageSize = 18

// pickerModel is the interactive selection controller: it owns the cursor,
// page window, find input, and the tri-state tree it mutates in place.
type pickerModel struct {
	root     *tree.Node
	rootPath string

	cursor   int
	page     int
	pageSize int

	// The search term is captured and displayed but does not filter the
	// visible list; pattern-based filtering lives on the non-interactive
	// path.
	searchTerm string
	findInput  textinput.Model
	finding    bool

	exitState ExitState
}

func newPickerModel(root *tree.Node, rootPath string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "search term"
	ti.Prompt = "find: "
	ti.CharLimit = 0
	return pickerModel{
		root:      root,
		rootPath:  rootPath,
		pageSize:  pickerPageSize,
		findInput: ti,
	}
}

// runPicker runs the interactive loop and returns the selected files in
// canonical pre-order. Cancelling clears every selection flag and returns
// an empty list. The caller must not invoke this with an empty tree.
func runPicker(root *tree.Node, rootPath string) ([]string, error) {
	m := newPickerModel(root, rootPath)
	// Render to stderr so the collected output can be piped from stdout.
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	fm, ok := final.(pickerModel)
	if !ok {
		return nil, fmt.Errorf("could not get final picker state")
	}
	if fm.exitState != ExitStateConfirm {
		return nil, nil
	}
	return root.SelectedFiles(), nil
}

func (m pickerModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.finding {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.searchTerm = strings.TrimSpace(m.findInput.Value())
			m.finding = false
			return m, nil
		case tea.KeyEsc:
			m.finding = false
			m.findInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.findInput, cmd = m.findInput.Update(msg)
		return m, cmd
	}

	visible := m.root.Flatten()

	switch decodeKey(keyMsg) {
	case actionUp:
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.page*m.pageSize {
				m.page--
			}
		}
	case actionDown:
		if m.cursor < len(visible)-1 {
			m.cursor++
			if m.cursor >= (m.page+1)*m.pageSize {
				m.page++
			}
		}
	case actionActivate:
		if n := nodeAt(visible, m.cursor); n != nil {
			if n.IsDir {
				n.Toggle()
			} else {
				n.Selected = !n.Selected
			}
		}
	case actionExpand:
		if n := nodeAt(visible, m.cursor); n != nil && n.IsDir {
			n.Expanded = true
		}
	case actionCollapse:
		if n := nodeAt(visible, m.cursor); n != nil && n.IsDir {
			n.Expanded = false
		}
	case actionExpandAll:
		m.root.ExpandAll()
	case actionCollapseAll:
		m.root.CollapseAll()
	case actionSelectAll:
		m.root.SetSelectedRecursive(true)
	case actionSelectNone, actionReset:
		m.root.SetSelectedRecursive(false)
	case actionFind:
		m.finding = true
		m.findInput.SetValue(m.searchTerm)
		m.findInput.Focus()
		return m, textinput.Blink
	case actionConfirm:
		m.exitState = ExitStateConfirm
		return m, tea.Quit
	case actionCancel:
		return m.cancel()
	case actionEscape:
		if m.searchTerm != "" {
			m.searchTerm = ""
			return m, nil
		}
		return m.cancel()
	}

	m.clamp()
	return m, nil
}

// cancel clears the whole selection before terminating, so an aborted
// session never leaks a partial selection back to the caller.
func (m pickerModel) cancel() (tea.Model, tea.Cmd) {
	m.root.SetSelectedRecursive(false)
	m.exitState = ExitStateAbort
	return m, tea.Quit
}

// clamp re-bounds the cursor and page after any mutation; expanding or
// collapsing an ancestor changes the visible list length, so both must be
// re-checked every time.
func (m *pickerModel) clamp() {
	count := len(m.root.Flatten())
	if count == 0 {
		m.cursor, m.page = 0, 0
		return
	}
	if m.cursor > count-1 {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	totalPages := (count-1)/m.pageSize + 1
	if m.page > totalPages-1 {
		m.page = totalPages - 1
	}
	if m.page < 0 {
		m.page = 0
	}
	if m.cursor < m.page*m.pageSize || m.cursor >= (m.page+1)*m.pageSize {
		m.page = m.cursor / m.pageSize
	}
}

func nodeAt(visible []tree.Visible, i int) *tree.Node {
	if i < 0 || i >= len(visible) {
		return nil
	}
	return visible[i].Node
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	legendStyle = lipgloss.NewStyle().Faint(true)
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

func (m pickerModel) View() string {
	if m.exitState != ExitStateNone {
		return ""
	}
	visible := m.root.Flatten()

	selected := len(m.root.SelectedFiles())
	total := m.root.FileCount()
	totalPages := 1
	if len(visible) > 0 {
		totalPages = (len(visible)-1)/m.pageSize + 1
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"Select files (%d/%d selected)  page %d/%d", selected, total, m.page+1, totalPages)))
	b.WriteString("\n")
	b.WriteString(legendStyle.Render(
		"↑/↓ move · space select · →/← expand/collapse · +/- expand/collapse all · a/n all/none · r reset · f find · enter confirm · q/esc cancel"))
	b.WriteString("\n\n")

	if m.finding {
		b.WriteString(m.findInput.View() + "\n\n")
	} else if m.searchTerm != "" {
		b.WriteString(fmt.Sprintf("find: %q (esc clears)\n\n", m.searchTerm))
	}

	if len(visible) == 0 {
		b.WriteString("nothing to display\n")
		return b.String()
	}

	start := m.page * m.pageSize
	end := min(start+m.pageSize, len(visible))
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(visible[i], i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%d files selected", selected))
	if m.cursor < len(visible) {
		b.WriteString("  ·  " + visible[m.cursor].Node.RelPath(m.rootPath))
	}
	b.WriteString("\n")
	return b.String()
}

func (m pickerModel) renderRow(v tree.Visible, underCursor bool) string {
	n := v.Node
	indent := strings.Repeat("  ", v.Depth)
	marker := "  "
	if underCursor {
		marker = "→ "
	}

	var line string
	if n.IsDir {
		line = fmt.Sprintf("%s%s%s %s %s/ (%d files)",
			marker, indent, stateGlyph(n.State()), expandGlyph(n.Expanded), n.Name(), n.FileCount())
	} else {
		line = fmt.Sprintf("%s%s%s %s", marker, indent, stateGlyph(n.State()), n.Name())
	}
	if underCursor {
		return cursorStyle.Render(line)
	}
	return line
}

func stateGlyph(s tree.SelState) string {
	switch s {
	case tree.All:
		return "[x]"
	case tree.Partial:
		return "[~]"
	default:
		return "[ ]"
	}
}

func expandGlyph(expanded bool) string {
	if expanded {
		return "▾"
	}
	return "▸"
}
