package analyzer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAssignment(t *testing.T) {
	tests := []struct {
		name     string
		cost     [][]float64
		expected float64
	}{
		{
			name:     "single cell",
			cost:     [][]float64{{3}},
			expected: 3,
		},
		{
			name: "two by two prefers the cross pairing",
			cost: [][]float64{
				{4, 1},
				{2, 0},
			},
			expected: 3,
		},
		{
			name: "zero diagonal",
			cost: [][]float64{
				{0, 5, 5},
				{5, 0, 5},
				{5, 5, 0},
			},
			expected: 0,
		},
		{
			name: "forced expensive pick",
			cost: [][]float64{
				{1, 2, 3},
				{2, 4, 6},
				{3, 6, 9},
			},
			expected: 10,
		},
		{
			name: "classic three by three",
			cost: [][]float64{
				{2, 3, 3},
				{3, 2, 3},
				{3, 3, 2},
			},
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, solveAssignment(tt.cost), 1e-9)
		})
	}
}

// bruteAssignment tries every permutation
func bruteAssignment(cost [][]float64) float64 {
	n := len(cost)
	perm := make([]int, n)
	used := make([]bool, n)
	best := -1.0

	var walk func(row int, acc float64)
	walk = func(row int, acc float64) {
		if row == n {
			if best < 0 || acc < best {
				best = acc
			}
			return
		}
		for col := 0; col < n; col++ {
			if !used[col] {
				used[col] = true
				perm[row] = col
				walk(row+1, acc+cost[row][col])
				used[col] = false
			}
		}
	}
	walk(0, 0)
	return best
}

func TestSolveAssignment_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(6)
		cost := make([][]float64, n)
		for i := range cost {
			cost[i] = make([]float64, n)
			for j := range cost[i] {
				cost[i][j] = float64(rng.Intn(20))
			}
		}

		require.InDelta(t, bruteAssignment(cost), solveAssignment(cost), 1e-9, "trial %d: %v", trial, cost)
	}
}
