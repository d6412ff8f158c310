package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// dirPickerModel - Interactive project directory selection
// =============================================================================

// dirEntry is a single selectable row in the picker.
type dirEntry struct {
	path    string // absolute path
	label   string // display label
	hasCode bool   // directory contains .py files at its top level
}

// dirPickerModel is the bubbletea model for choosing a project directory
// when no path argument was given. It lists the working directory and its
// immediate subdirectories.
type dirPickerModel struct {
	entries  []dirEntry
	cursor   int
	offset   int
	height   int
	selected string
}

func newDirPickerModel(entries []dirEntry) dirPickerModel {
	return dirPickerModel{entries: entries, height: 15}
}

func (m dirPickerModel) Init() tea.Cmd {
	return nil
}

func (m dirPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.entries[m.cursor].path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m dirPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Project Directory"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		label := e.label
		if e.hasCode {
			label += listDimStyle.Render("  ·py")
		}
		b.WriteString(cursor + style.Render(label) + "\n")
	}

	return b.String()
}

// pickProjectDir runs the interactive picker rooted at base and returns the
// chosen directory. It returns an error when the user quits without
// selecting.
func pickProjectDir(base string) (string, error) {
	entries, err := listProjectDirs(base)
	if err != nil {
		return "", err
	}

	p := tea.NewProgram(newDirPickerModel(entries), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	m := final.(dirPickerModel)
	if m.selected == "" {
		return "", fmt.Errorf("no directory selected")
	}
	return m.selected, nil
}

// listProjectDirs builds picker entries: base itself first, then its
// immediate subdirectories sorted by name, hidden directories skipped.
func listProjectDirs(base string) ([]dirEntry, error) {
	items, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}

	entries := []dirEntry{{path: base, label: ".", hasCode: hasPythonFiles(base)}}

	var dirs []dirEntry
	for _, item := range items {
		if !item.IsDir() || strings.HasPrefix(item.Name(), ".") {
			continue
		}
		path := filepath.Join(base, item.Name())
		dirs = append(dirs, dirEntry{
			path:    path,
			label:   item.Name() + string(filepath.Separator),
			hasCode: hasPythonFiles(path),
		})
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].label < dirs[j].label })

	return append(entries, dirs...), nil
}

// hasPythonFiles reports whether dir directly contains at least one .py file.
func hasPythonFiles(dir string) bool {
	items, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, item := range items {
		if !item.IsDir() && strings.HasSuffix(item.Name(), ".py") {
			return true
		}
	}
	return false
}
