package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type UpdateSelection struct {
	Idx int
}

type SelectionOption struct {
	key         string
	displayText string
}

// Selection picks one of a fixed set of options with the arrow keys or the
// option's number.
type Selection struct {
	label      string
	selections []SelectionOption

	selected      int
	displayInline bool
	focused       bool
}

func NewSelection(label string, options []string) *Selection {
	s := &Selection{label: label, displayInline: true}
	for _, o := range options {
		s.selections = append(s.selections, SelectionOption{key: o, displayText: o})
	}
	return s
}

func (m *Selection) GetKey() *string {
	if m.selected < 0 || m.selected >= len(m.selections) {
		return nil
	}
	return &m.selections[m.selected].key
}

func (m *Selection) Label() string {
	return m.label
}

func (m *Selection) Focus() tea.Cmd {
	m.focused = true
	return nil
}

func (m *Selection) Blur() {
	m.focused = false
}

func (m *Selection) Value() string {
	if key := m.GetKey(); key != nil {
		return *key
	}
	return ""
}

func (m *Selection) Validate() error {
	if m.GetKey() == nil {
		return fmt.Errorf("nothing selected")
	}
	return nil
}

func (m *Selection) Update(msg tea.Msg) (Field, tea.Cmd) {
	switch msg := msg.(type) {
	case UpdateSelection:
		if msg.Idx >= 0 && msg.Idx < len(m.selections) {
			m.selected = msg.Idx
		}
	case tea.KeyMsg:
		if !m.focused || len(m.selections) == 0 {
			return m, nil
		}
		switch msg.String() {
		case "left", "h", "up", "k":
			m.selected = (m.selected - 1 + len(m.selections)) % len(m.selections)
		case "right", "l", "down", "j", "tab":
			m.selected = (m.selected + 1) % len(m.selections)
		default:
			if idx, err := strconv.Atoi(msg.String()); err == nil {
				return m.Update(UpdateSelection{Idx: idx - 1})
			}
		}
	}
	return m, nil
}

func (m *Selection) View() string {
	selectionStrArr := make([]string, len(m.selections))
	for i, selection := range m.selections {
		marker := " "
		if i == m.selected {
			marker = "x"
		}
		selectionStrArr[i] = fmt.Sprintf("[%s] %s", marker, selection.displayText)
	}
	sep := "\n"
	if m.displayInline {
		sep = " "
	}
	return fmt.Sprintf("%s: %s", m.label, strings.Join(selectionStrArr, sep))
}
