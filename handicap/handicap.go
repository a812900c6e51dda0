package handicap

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Rating of the hypothetical reference boat. A boat rated at ReferenceRating
// has corrected time equal to elapsed time.
const ReferenceRating = 100.0

const DefaultRating = 220.0

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidElapsed       = errors.New("elapsed minutes must be a finite, non-negative number")
)

// Table maps a boat type to its handicap rating. Boat types missing from the
// table are rated at Default. A Table is read-only once built.
type Table struct {
	ratings map[string]float64
	Default float64
}

// NewTable copies ratings so later changes to the map do not leak into the
// table.
func NewTable(ratings map[string]float64, defaultRating float64) *Table {
	r := make(map[string]float64, len(ratings))
	for boatType, rating := range ratings {
		r[boatType] = rating
	}
	return &Table{ratings: r, Default: defaultRating}
}

// ShippedTable is the rating table the series started with.
func ShippedTable() *Table {
	return NewTable(map[string]float64{
		"Sirius 21": 240,
		"Hobie 16":  215,
	}, DefaultRating)
}

func (t *Table) Rating(boatType string) float64 {
	if rating, ok := t.ratings[boatType]; ok {
		return rating
	}
	return t.Default
}

func (t *Table) Has(boatType string) bool {
	_, ok := t.ratings[boatType]
	return ok
}

// BoatTypes returns the rated boat types in name order.
func (t *Table) BoatTypes() []string {
	types := make([]string, 0, len(t.ratings))
	for boatType := range t.ratings {
		types = append(types, boatType)
	}
	sort.Strings(types)
	return types
}

// Ratings returns a copy of the per-boat-type ratings.
func (t *Table) Ratings() map[string]float64 {
	r := make(map[string]float64, len(t.ratings))
	for boatType, rating := range t.ratings {
		r[boatType] = rating
	}
	return r
}

func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: no handicap table", ErrInvalidConfiguration)
	}
	if err := validateRating(t.Default); err != nil {
		return fmt.Errorf("default rating: %w", err)
	}
	for _, boatType := range t.BoatTypes() {
		if err := validateRating(t.ratings[boatType]); err != nil {
			return fmt.Errorf("rating for %q: %w", boatType, err)
		}
	}
	return nil
}

func validateRating(rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) || rating <= 0 {
		return fmt.Errorf("%w: rating must be a positive number, got %v", ErrInvalidConfiguration, rating)
	}
	return nil
}

// Correct converts elapsed sailing minutes into corrected minutes:
// elapsed * (ReferenceRating / rating).
func Correct(elapsedMinutes float64, boatType string, table *Table) (float64, error) {
	if table == nil {
		return 0, fmt.Errorf("%w: no handicap table", ErrInvalidConfiguration)
	}
	if math.IsNaN(elapsedMinutes) || math.IsInf(elapsedMinutes, 0) || elapsedMinutes < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidElapsed, elapsedMinutes)
	}
	rating := table.Rating(boatType)
	if err := validateRating(rating); err != nil {
		return 0, fmt.Errorf("boat type %q: %w", boatType, err)
	}
	return elapsedMinutes * (ReferenceRating / rating), nil
}
