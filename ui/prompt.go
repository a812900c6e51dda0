package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field is one question of a Form.
type Field interface {
	Label() string
	Focus() tea.Cmd
	Blur()
	Update(tea.Msg) (Field, tea.Cmd)
	View() string
	Value() string
	Validate() error
}

type InputData struct {
	Question     string
	DefaultValue string

	// Function that gets run on the input value
	Parse func(string) error
}

// Prompt is a free text Field.
type Prompt struct {
	Input textinput.Model
	Data  InputData
}

func NewPrompt(inputData InputData) *Prompt {
	input := textinput.New()
	input.Prompt = fmt.Sprintf("%s: ", inputData.Question)
	input.Placeholder = inputData.DefaultValue
	return &Prompt{Data: inputData, Input: input}
}

func (m *Prompt) Label() string {
	return m.Data.Question
}

func (m *Prompt) Focus() tea.Cmd {
	return m.Input.Focus()
}

func (m *Prompt) Blur() {
	m.Input.Blur()
}

func (m *Prompt) SetValue(value string) {
	m.Input.SetValue(value)
}

// Value is the typed answer, or the default when nothing was typed.
func (m *Prompt) Value() string {
	if v := strings.TrimSpace(m.Input.Value()); v != "" {
		return v
	}
	return m.Data.DefaultValue
}

func (m *Prompt) Validate() error {
	if m.Data.Parse == nil {
		return nil
	}
	return m.Data.Parse(m.Value())
}

func (m *Prompt) Update(msg tea.Msg) (Field, tea.Cmd) {
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m *Prompt) View() string {
	return m.Input.View()
}
