package prompts

import (
	"slices"
)

var windMapping = map[string]string{
	"NORTH":     "N",
	"NORTHEAST": "NE",
	"EAST":      "E",
	"SOUTHEAST": "SE",
	"SOUTH":     "S",
	"SOUTHWEST": "SW",
	"WEST":      "W",
	"NORTHWEST": "NW",
}

// WindDirections in compass order.
var WindDirections = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var windNames = func() []string {
	arr := make([]string, 0, len(windMapping))
	for v := range windMapping {
		arr = append(arr, v)
	}
	slices.Sort(arr)
	return arr
}()

var (
	Boats    = []string{"V&G", "Claire the Cat"}
	Skippers = []string{"Steven Knight", "Heather Knight"}
	Marks    = []string{"Island A", "Island B", "Big Channel", "North Mark", "South Bay"}
	Weather  = []string{"Calm", "Light Air", "Breezy", "Windy", "Gusty", "Rain", "Fog", "Cold", "Hot"}
)
