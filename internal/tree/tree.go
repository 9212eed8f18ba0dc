package tree

import (
	"sort"
	"strings"

	"github.com/ludo-technologies/treesim/domain"
)

// Tree is a rooted, labeled tree stored as an index arena: node 0 is the
// root, each node has a label, an ordered child-index list, and a depth
// (root depth is 1). The zero value is the empty tree.
//
// Trees are read-only value objects once built; derived trees are produced
// by Truncate, Contextualize, and Clone.
type Tree struct {
	labels   []string
	children [][]int
	depths   []int
}

// Empty returns the empty tree
func Empty() *Tree {
	return &Tree{}
}

// FromNested builds a tree from the nested-mapping exchange format: each
// subtree is a single-entry map from a label to the map of its children,
// and an empty child map denotes a leaf. Sibling order follows the sorted
// key order, since Go maps carry no document order; use FromJSON or
// FromYAML to preserve source order.
func FromNested(data map[string]any) (*Tree, error) {
	label, childMap, err := splitEntry(data)
	if err != nil {
		return nil, err
	}

	t := &Tree{}

	// Explicit work list instead of recursion so deep trees cannot
	// exhaust the call stack. Children are pushed in reverse so they
	// are numbered in key order.
	type item struct {
		parent  int
		label   string
		entries map[string]any
	}
	stack := []item{{parent: -1, label: label, entries: childMap}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := t.addNode(cur.parent, cur.label)

		keys := make([]string, 0, len(cur.entries))
		for k := range cur.entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for i := len(keys) - 1; i >= 0; i-- {
			grandchildren, err := childEntries(cur.entries[keys[i]])
			if err != nil {
				return nil, err
			}
			stack = append(stack, item{parent: idx, label: keys[i], entries: grandchildren})
		}
	}

	return t, nil
}

// addNode appends a node under parent (-1 for the root) and returns its index
func (t *Tree) addNode(parent int, label string) int {
	idx := len(t.labels)
	t.labels = append(t.labels, label)
	t.children = append(t.children, nil)
	if parent < 0 {
		t.depths = append(t.depths, 1)
	} else {
		t.depths = append(t.depths, t.depths[parent]+1)
		t.children[parent] = append(t.children[parent], idx)
	}
	return idx
}

func splitEntry(data map[string]any) (string, map[string]any, error) {
	if len(data) == 0 {
		return "", nil, domain.NewMalformedTreeError("subtree has no label entry")
	}
	if len(data) > 1 {
		return "", nil, domain.NewMalformedTreeError("subtree has more than one label entry")
	}
	for label, v := range data {
		children, err := childEntries(v)
		if err != nil {
			return "", nil, err
		}
		return label, children, nil
	}
	return "", nil, nil // unreachable
}

func childEntries(v any) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
	}
	return m, nil
}

// Size returns the number of nodes
func (t *Tree) Size() int {
	return len(t.labels)
}

// Label returns the label of node i
func (t *Tree) Label(i int) string {
	return t.labels[i]
}

// Labels returns the node labels indexed by node
func (t *Tree) Labels() []string {
	return t.labels
}

// DepthOf returns the depth of node i (root depth is 1)
func (t *Tree) DepthOf(i int) int {
	return t.depths[i]
}

// ChildrenOf returns the ordered child indices of node i
func (t *Tree) ChildrenOf(i int) []int {
	return t.children[i]
}

// Adjacency returns the child-index lists indexed by node
func (t *Tree) Adjacency() [][]int {
	return t.children
}

// MaxDepth returns the maximum node depth, or 0 for the empty tree
func (t *Tree) MaxDepth() int {
	maxDepth := 0
	for _, d := range t.depths {
		if d > maxDepth {
			maxDepth = d
		}
	}
	return maxDepth
}

// Clone returns a deep copy
func (t *Tree) Clone() *Tree {
	c := &Tree{
		labels:   append([]string(nil), t.labels...),
		children: make([][]int, len(t.children)),
		depths:   append([]int(nil), t.depths...),
	}
	for i, kids := range t.children {
		c.children[i] = append([]int(nil), kids...)
	}
	return c
}

// Truncate returns a tree containing only nodes with depth <= depth; nodes
// at exactly that depth become leaves. Indices are renumbered contiguously.
func (t *Tree) Truncate(depth int) (*Tree, error) {
	if depth < 1 {
		return nil, domain.NewInvalidArgumentError("truncation depth must be >= 1")
	}

	parents := make([]int, t.Size())
	for i := range parents {
		parents[i] = -1
	}
	for p, kids := range t.children {
		for _, c := range kids {
			parents[c] = p
		}
	}

	out := &Tree{}
	remap := make([]int, t.Size())
	for i := range remap {
		remap[i] = -1
	}

	// Nodes are numbered parent-first, so a single ascending pass sees
	// every parent before its children.
	for i := 0; i < t.Size(); i++ {
		if t.depths[i] > depth {
			continue
		}
		parent := -1
		if parents[i] >= 0 {
			parent = remap[parents[i]]
		}
		remap[i] = out.addNode(parent, t.labels[i])
	}

	return out, nil
}

// Contextualize returns a structurally identical tree where each label is
// the concatenation of all ancestor labels (root first) with the node's
// own label. This gives a context-free sentence encoder access to the
// node's position in the hierarchy.
func (t *Tree) Contextualize() *Tree {
	c := t.Clone()
	if c.Size() == 0 {
		return c
	}

	// Preorder walk with an explicit stack; each node's new label is the
	// parent's new label followed by its own.
	type frame struct {
		node   int
		prefix string
	}
	stack := []frame{{node: 0, prefix: ""}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		c.labels[f.node] = f.prefix + c.labels[f.node]
		for i := len(c.children[f.node]) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: c.children[f.node][i], prefix: c.labels[f.node]})
		}
	}
	return c
}

// String renders the tree one node per line, indented with one dash per
// depth level below the root
func (t *Tree) String() string {
	var b strings.Builder
	stack := []int{}
	if t.Size() > 0 {
		stack = append(stack, 0)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		b.WriteString(strings.Repeat("-", t.depths[n]-1))
		b.WriteString(t.labels[n])
		b.WriteString("\n")
		for i := len(t.children[n]) - 1; i >= 0; i-- {
			stack = append(stack, t.children[n][i])
		}
	}
	return b.String()
}
