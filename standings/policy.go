package standings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Nydauron/beercan/handicap"
)

// Policy returns the points for the boat finishing at rank (1-based) in a heat
// of fleetSize qualifying boats.
type Policy func(fleetSize, rank int) int

const (
	FixedTop3Name = "fixed-top3"
	GraduatedName = "graduated"
)

// FixedTop3 awards 3, 2 and 1 points to the podium and nothing below it.
func FixedTop3(fleetSize, rank int) int {
	switch rank {
	case 1:
		return 3
	case 2:
		return 2
	case 3:
		return 1
	}
	return 0
}

// Graduated scales the podium with turnout and gives every other finisher a
// point for showing up:
//
//	5+ boats: 4, 3, 2, then 1
//	3-4 boats: 3, 2, 1, then 1
//	1-2 boats: fleetSize down to 1
func Graduated(fleetSize, rank int) int {
	switch {
	case fleetSize >= 5:
		if rank <= 3 {
			return 5 - rank
		}
		return 1
	case fleetSize >= 3:
		if rank <= 3 {
			return 4 - rank
		}
		return 1
	default:
		return fleetSize - rank + 1
	}
}

var policies = map[string]Policy{
	FixedTop3Name: FixedTop3,
	GraduatedName: Graduated,
}

// PolicyNames lists the policies PolicyByName knows.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func PolicyByName(name string) (Policy, error) {
	p, ok := policies[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown points policy %q (known: %s)", handicap.ErrInvalidConfiguration, name, strings.Join(PolicyNames(), ", "))
	}
	return p, nil
}
