package prompts

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Nydauron/beercan/race"
)

var ErrNoInput = errors.New("input closed")

// Prompter asks questions on out and reads answers line by line from in.
// Invalid answers are asked again.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// Today is offered as the default race date.
	Today func() time.Time
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, Today: time.Now}
}

func (p *Prompter) Prompt(message string) (string, error) {
	fmt.Fprint(p.out, message)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", ErrNoInput
	}
	return strings.TrimRight(input, "\r\n"), nil
}

func (p *Prompter) RaceDatePrompt() (time.Time, error) {
	today := race.FormatDate(p.Today())
	for {
		userInput, err := p.Prompt(fmt.Sprintf("Race date [%s]: ", today))
		if err != nil {
			return time.Time{}, err
		}
		if strings.TrimSpace(userInput) == "" {
			userInput = today
		}
		if d, err := race.ParseDate(userInput); err == nil {
			return d, nil
		}
	}
}

func (p *Prompter) ClockPrompt(label string) (time.Time, error) {
	for {
		userInput, err := p.Prompt(fmt.Sprintf("%s (HH:MM): ", label))
		if err != nil {
			return time.Time{}, err
		}
		if t, err := race.ParseClock(userInput); err == nil {
			return t, nil
		}
	}
}

// ChoicePrompt accepts an option's number or any non-empty free text, so a
// new boat or skipper can be entered without changing the option lists.
func (p *Prompter) ChoicePrompt(label string, options []string) (string, error) {
	for {
		userInput, err := p.Prompt(fmt.Sprintf("%s %s: ", label, numbered(options)))
		if err != nil {
			return "", err
		}
		userInput = strings.TrimSpace(userInput)
		if choice, ok := pick(userInput, options); ok {
			return choice, nil
		}
		if _, err := strconv.Atoi(userInput); err == nil {
			continue
		}
		if userInput != "" {
			return userInput, nil
		}
	}
}

// MultiChoicePrompt reads a comma separated list of option numbers or names.
// An empty answer selects nothing. Repeats are kept.
func (p *Prompter) MultiChoicePrompt(label string, options []string) ([]string, error) {
	for {
		userInput, err := p.Prompt(fmt.Sprintf("%s %s, comma separated: ", label, numbered(options)))
		if err != nil {
			return nil, err
		}
		if selected, err := MatchOptions(userInput, options); err == nil {
			return selected, nil
		}
	}
}

// MatchOptions resolves a comma separated answer of option numbers or names.
func MatchOptions(answer string, options []string) ([]string, error) {
	selected := []string{}
	for _, item := range race.SplitList(answer) {
		choice, ok := pick(item, options)
		if !ok {
			return nil, fmt.Errorf("unknown option %q", item)
		}
		selected = append(selected, choice)
	}
	return selected, nil
}

func (p *Prompter) WindDirectionPrompt() (string, error) {
	for {
		userInput, err := p.Prompt(fmt.Sprintf("Wind direction (%s): ", strings.Join(WindDirections, ", ")))
		if err != nil {
			return "", err
		}
		if dir, ok := TranslateWindDirection(userInput); ok {
			return dir, nil
		}
	}
}

// TranslateWindDirection accepts an abbreviation or a full name such as
// "south west".
func TranslateWindDirection(input string) (string, bool) {
	upper := strings.ToUpper(strings.Join(strings.Fields(input), ""))
	upper = strings.ReplaceAll(upper, "-", "")
	if slices.Contains(WindDirections, upper) {
		return upper, true
	}
	if slices.Contains(windNames, upper) {
		return windMapping[upper], true
	}
	return "", false
}

// EntryFormPrompt walks through the entry form.
func (p *Prompter) EntryFormPrompt(boatTypes []string) (race.Submission, error) {
	var sub race.Submission
	var err error
	if sub.Date, err = p.RaceDatePrompt(); err != nil {
		return sub, err
	}
	if sub.BoatName, err = p.ChoicePrompt("Boat name", Boats); err != nil {
		return sub, err
	}
	if sub.Skipper, err = p.ChoicePrompt("Skipper", Skippers); err != nil {
		return sub, err
	}
	if sub.BoatType, err = p.ChoicePrompt("Make & model", boatTypes); err != nil {
		return sub, err
	}
	for {
		if sub.StartTime, err = p.ClockPrompt("Start time"); err != nil {
			return sub, err
		}
		if sub.FinishTime, err = p.ClockPrompt("Finish time"); err != nil {
			return sub, err
		}
		if _, err := sub.Elapsed(); err == nil {
			break
		}
		fmt.Fprintln(p.out, "Finish time must be after start time.")
	}
	if sub.WindDirection, err = p.WindDirectionPrompt(); err != nil {
		return sub, err
	}
	if sub.Marks, err = p.MultiChoicePrompt("Marks rounded", Marks); err != nil {
		return sub, err
	}
	if sub.Weather, err = p.MultiChoicePrompt("Weather conditions", Weather); err != nil {
		return sub, err
	}
	return sub, nil
}

func numbered(options []string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprintf("%d) %s", i+1, o)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pick(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}
