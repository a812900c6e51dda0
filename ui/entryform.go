package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/Nydauron/beercan/prompts"
	"github.com/Nydauron/beercan/race"
)

const (
	dateLabel    = "Race date"
	boatLabel    = "Boat name"
	skipperLabel = "Skipper"
	modelLabel   = "Make & model"
	startLabel   = "Start time (HH:MM)"
	finishLabel  = "Finish time (HH:MM)"
	windLabel    = "Wind direction"
	marksLabel   = "Marks rounded"
	weatherLabel = "Weather conditions"
)

// NewEntryForm builds the race entry form. boatTypes are offered as model
// suggestions; any model can be typed.
func NewEntryForm(boatTypes []string, today time.Time) *Form {
	required := func(label string) func(string) error {
		return func(v string) error {
			if v == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
	}

	start := NewPrompt(InputData{
		Question: startLabel,
		Parse: func(v string) error {
			_, err := race.ParseClock(v)
			return err
		},
	})
	finish := NewPrompt(InputData{
		Question: finishLabel,
		Parse: func(v string) error {
			f, err := race.ParseClock(v)
			if err != nil {
				return err
			}
			s, err := race.ParseClock(start.Value())
			if err == nil && f.Before(s) {
				return race.ErrFinishBeforeStart
			}
			return nil
		},
	})

	return NewForm("Beer can race entry",
		NewPrompt(InputData{
			Question:     dateLabel,
			DefaultValue: race.FormatDate(today),
			Parse: func(v string) error {
				_, err := race.ParseDate(v)
				return err
			},
		}),
		NewPrompt(InputData{Question: boatLabel, DefaultValue: first(prompts.Boats), Parse: required("boat name")}),
		NewPrompt(InputData{Question: skipperLabel, DefaultValue: first(prompts.Skippers), Parse: required("skipper")}),
		NewPrompt(InputData{Question: modelLabel, DefaultValue: first(boatTypes), Parse: required("make & model")}),
		start,
		finish,
		NewSelection(windLabel, prompts.WindDirections),
		NewPrompt(InputData{
			Question: marksLabel,
			Parse: func(v string) error {
				_, err := prompts.MatchOptions(v, prompts.Marks)
				return err
			},
		}),
		NewPrompt(InputData{
			Question: weatherLabel,
			Parse: func(v string) error {
				_, err := prompts.MatchOptions(v, prompts.Weather)
				return err
			},
		}),
	)
}

// Submission reads the answers of a completed entry form.
func (f *Form) Submission() (race.Submission, error) {
	if !f.done {
		return race.Submission{}, ErrCancelled
	}
	date, err := race.ParseDate(f.Value(dateLabel))
	if err != nil {
		return race.Submission{}, err
	}
	start, err := race.ParseClock(f.Value(startLabel))
	if err != nil {
		return race.Submission{}, err
	}
	finish, err := race.ParseClock(f.Value(finishLabel))
	if err != nil {
		return race.Submission{}, err
	}
	marks, err := prompts.MatchOptions(f.Value(marksLabel), prompts.Marks)
	if err != nil {
		return race.Submission{}, err
	}
	weather, err := prompts.MatchOptions(f.Value(weatherLabel), prompts.Weather)
	if err != nil {
		return race.Submission{}, err
	}
	return race.Submission{
		Date:          date,
		BoatName:      f.Value(boatLabel),
		Skipper:       f.Value(skipperLabel),
		BoatType:      f.Value(modelLabel),
		StartTime:     start,
		FinishTime:    finish,
		Marks:         marks,
		WindDirection: f.Value(windLabel),
		Weather:       weather,
	}, nil
}

// RunEntryForm shows the entry form and returns the submission.
func RunEntryForm(in io.Reader, out io.Writer, boatTypes []string, today time.Time) (race.Submission, error) {
	form := NewEntryForm(boatTypes, today)
	if err := form.Run(in, out); err != nil {
		return race.Submission{}, err
	}
	return form.Submission()
}

func first(options []string) string {
	if len(options) == 0 {
		return ""
	}
	return options[0]
}
