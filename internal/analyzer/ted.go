package analyzer

import (
	"math"
)

// TreeDistance computes the minimum-cost ordered tree edit distance between
// two trees given as label slices and child-index adjacency (node 0 is the
// root). Sibling order matters. The dynamic program follows the keyroot
// decomposition: for each pair of keyroots the forest-distance matrix is
// filled via the delete/insert/substitute recurrence, reusing subtree
// distances computed for earlier keyroot pairs.
func TreeDistance(labelsA []string, adjA [][]int, labelsB []string, adjB [][]int, costs Costs) float64 {
	nA, nB := len(labelsA), len(labelsB)
	if nA == 0 && nB == 0 {
		return 0
	}
	if nA == 0 {
		return sumUnary(labelsB, costs)
	}
	if nB == 0 {
		return sumUnary(labelsA, costs)
	}

	ia := buildOrderedIndex(labelsA, adjA)
	ib := buildOrderedIndex(labelsB, adjB)

	// td[i][j] = distance between the subtrees rooted at postorder ids i, j
	td := newMatrix(nA, nB)

	// Keyroots ascend, so every inner subtree distance a later pair needs
	// has already been filled in.
	for _, i := range ia.keyroots {
		for _, j := range ib.keyroots {
			forestDistance(ia, ib, i, j, td, costs)
		}
	}

	return td[nA-1][nB-1]
}

// orderedIndex holds the postorder view of a tree needed by the ordered DP
type orderedIndex struct {
	labels   []string // labels reordered to postorder
	lml      []int    // leftmost-leaf postorder id per postorder id
	keyroots []int    // ascending postorder ids
}

func buildOrderedIndex(labels []string, adj [][]int) *orderedIndex {
	n := len(labels)

	po := postorderOf(adj)
	pos := make([]int, n)
	for i, v := range po {
		pos[v] = i
	}

	idx := &orderedIndex{
		labels: make([]string, n),
		lml:    make([]int, n),
	}
	for i, v := range po {
		idx.labels[i] = labels[v]
		if len(adj[v]) == 0 {
			idx.lml[i] = i
		} else {
			idx.lml[i] = idx.lml[pos[adj[v][0]]]
		}
	}

	// A keyroot is the highest postorder id sharing its leftmost leaf.
	highest := make(map[int]int)
	for i := 0; i < n; i++ {
		highest[idx.lml[i]] = i
	}
	for i := 0; i < n; i++ {
		if highest[idx.lml[i]] == i {
			idx.keyroots = append(idx.keyroots, i)
		}
	}

	return idx
}

// forestDistance fills the forest-distance matrix for the keyroot pair
// (i, j) and records subtree distances into td
func forestDistance(ia, ib *orderedIndex, i, j int, td [][]float64, costs Costs) {
	li, lj := ia.lml[i], ib.lml[j]
	m, n := i-li+2, j-lj+2

	fd := newMatrix(m, n)
	for x := 1; x < m; x++ {
		fd[x][0] = fd[x-1][0] + costs.Unary(ia.labels[li+x-1])
	}
	for y := 1; y < n; y++ {
		fd[0][y] = fd[0][y-1] + costs.Unary(ib.labels[lj+y-1])
	}

	for x := 1; x < m; x++ {
		for y := 1; y < n; y++ {
			xi, yj := li+x-1, lj+y-1

			del := fd[x-1][y] + costs.Unary(ia.labels[xi])
			ins := fd[x][y-1] + costs.Unary(ib.labels[yj])

			if ia.lml[xi] == li && ib.lml[yj] == lj {
				// Both prefixes are whole subtrees: the substitute case
				// closes a subtree pair, so record it.
				sub := fd[x-1][y-1] + costs.Substitute(ia.labels[xi], ib.labels[yj])
				fd[x][y] = math.Min(del, math.Min(ins, sub))
				td[xi][yj] = fd[x][y]
			} else {
				sub := fd[ia.lml[xi]-li][ib.lml[yj]-lj] + td[xi][yj]
				fd[x][y] = math.Min(del, math.Min(ins, sub))
			}
		}
	}
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func sumUnary(labels []string, costs Costs) float64 {
	total := 0.0
	for _, l := range labels {
		total += costs.Unary(l)
	}
	return total
}
