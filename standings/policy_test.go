package standings

import (
	"testing"

	"github.com/Nydauron/beercan/handicap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointsFor(policy Policy, fleetSize int) []int {
	points := make([]int, fleetSize)
	for rank := 1; rank <= fleetSize; rank++ {
		points[rank-1] = policy(fleetSize, rank)
	}
	return points
}

func TestFixedTop3(t *testing.T) {
	assert.Equal(t, []int{3}, pointsFor(FixedTop3, 1))
	assert.Equal(t, []int{3, 2}, pointsFor(FixedTop3, 2))
	assert.Equal(t, []int{3, 2, 1, 0, 0, 0}, pointsFor(FixedTop3, 6))
}

func TestGraduated(t *testing.T) {
	tests := []struct {
		fleet int
		want  []int
	}{
		{1, []int{1}},
		{2, []int{2, 1}},
		{3, []int{3, 2, 1}},
		{4, []int{3, 2, 1, 1}},
		{5, []int{4, 3, 2, 1, 1}},
		{6, []int{4, 3, 2, 1, 1, 1}},
		{9, []int{4, 3, 2, 1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pointsFor(Graduated, tt.fleet), "fleet of %d", tt.fleet)
	}
}

func TestGraduated_TotalBound(t *testing.T) {
	for fleet := 1; fleet <= 30; fleet++ {
		top := pointsFor(Graduated, fleet)
		n := min(3, fleet)
		topSum := 0
		for _, p := range top[:n] {
			topSum += p
		}
		total := 0
		for _, p := range top {
			total += p
		}
		assert.LessOrEqual(t, total, topSum+(fleet-n), "fleet of %d", fleet)
	}
}

func TestPolicyByName(t *testing.T) {
	p, err := PolicyByName(" Graduated ")
	require.NoError(t, err)
	assert.Equal(t, 4, p(5, 1))

	p, err = PolicyByName(FixedTop3Name)
	require.NoError(t, err)
	assert.Equal(t, 0, p(5, 4))

	_, err = PolicyByName("low-point")
	assert.ErrorIs(t, err, handicap.ErrInvalidConfiguration)
	assert.Equal(t, []string{FixedTop3Name, GraduatedName}, PolicyNames())
}
