package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrCancelled = errors.New("form cancelled")

// Form asks its fields one after another. Enter accepts the current answer
// once it validates; Esc or Ctrl+C abandons the form.
type Form struct {
	title     string
	fields    []Field
	current   int
	err       error
	done      bool
	cancelled bool
}

func NewForm(title string, fields ...Field) *Form {
	return &Form{title: title, fields: fields}
}

func (f *Form) Init() tea.Cmd {
	if len(f.fields) == 0 {
		f.done = true
		return tea.Quit
	}
	return f.fields[0].Focus()
}

func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.done || f.cancelled {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			f.cancelled = true
			return f, tea.Quit
		case tea.KeyEnter:
			return f.accept()
		}
	}
	field, cmd := f.fields[f.current].Update(msg)
	f.fields[f.current] = field
	return f, cmd
}

func (f *Form) accept() (tea.Model, tea.Cmd) {
	field := f.fields[f.current]
	if err := field.Validate(); err != nil {
		f.err = err
		return f, nil
	}
	f.err = nil
	field.Blur()
	f.current++
	if f.current == len(f.fields) {
		f.done = true
		return f, tea.Quit
	}
	return f, f.fields[f.current].Focus()
}

func (f *Form) View() string {
	var b strings.Builder
	if f.title != "" {
		fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(f.title))
	}
	for i, field := range f.fields {
		switch {
		case i < f.current:
			fmt.Fprintf(&b, "%s ✔\n", answeredStyle.Render(field.Label()+": "+field.Value()))
		case i == f.current && !f.done:
			fmt.Fprintf(&b, "%s\n", field.View())
		}
	}
	if f.err != nil {
		fmt.Fprintf(&b, "%s\n", errorStyle.Render("❌ "+f.err.Error()))
	}
	if !f.done && !f.cancelled {
		b.WriteString("\n" + helpStyle.Render("enter: next  esc: cancel") + "\n")
	}
	return b.String()
}

func (f *Form) Done() bool {
	return f.done
}

func (f *Form) Cancelled() bool {
	return f.cancelled
}

// Value returns the answer of the field with the given label.
func (f *Form) Value(label string) string {
	for _, field := range f.fields {
		if field.Label() == label {
			return field.Value()
		}
	}
	return ""
}

// Run shows the form on out, reading keys from in, until it is completed or
// cancelled.
func (f *Form) Run(in io.Reader, out io.Writer) error {
	if _, err := tea.NewProgram(f, tea.WithInput(in), tea.WithOutput(out)).Run(); err != nil {
		return err
	}
	if f.cancelled || !f.done {
		return ErrCancelled
	}
	return nil
}
