package tree

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/treesim/domain"
)

// FromJSON builds a tree from a JSON document in the exchange format.
// The document is tokenized rather than unmarshalled into a map so that
// sibling order follows the document, not Go map iteration.
func FromJSON(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	first, err := dec.Token()
	if err != nil {
		return nil, domain.NewMalformedTreeError("empty or invalid tree document")
	}
	if d, ok := first.(json.Delim); !ok || d != '{' {
		return nil, domain.NewMalformedTreeError("top-level value must be an object")
	}

	t := &Tree{}
	stack := []int{}
	cur := -1
	pendingKey := ""
	havePending := false
	topKeys := 0
	level := 1

	for level > 0 {
		tok, err := dec.Token()
		if err != nil {
			return nil, domain.NewMalformedTreeError("unexpected end of tree document")
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				// An object here is always the value of the pending key.
				idx := t.addNode(cur, pendingKey)
				havePending = false
				stack = append(stack, cur)
				cur = idx
				level++
			case '}':
				level--
				if level > 0 {
					cur = stack[len(stack)-1]
					stack = stack[:len(stack)-1]
				}
			default:
				return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
			}
		case string:
			if havePending {
				return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
			}
			pendingKey = v
			havePending = true
			if level == 1 {
				topKeys++
			}
		case nil:
			// A null value denotes a leaf, like an empty mapping.
			if !havePending {
				return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
			}
			t.addNode(cur, pendingKey)
			havePending = false
		default:
			return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
		}
	}

	if topKeys == 0 {
		return nil, domain.NewMalformedTreeError("subtree has no label entry")
	}
	if topKeys > 1 {
		return nil, domain.NewMalformedTreeError("subtree has more than one label entry")
	}
	return t, nil
}

// FromYAML builds a tree from a YAML document in the exchange format.
// Decoded through the node API so that sibling order is preserved.
func FromYAML(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.NewMalformedTreeError("invalid tree document: " + err.Error())
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, domain.NewMalformedTreeError("empty or invalid tree document")
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, domain.NewMalformedTreeError("top-level value must be a mapping")
	}
	if len(top.Content) == 0 {
		return nil, domain.NewMalformedTreeError("subtree has no label entry")
	}
	if len(top.Content) > 2 {
		return nil, domain.NewMalformedTreeError("subtree has more than one label entry")
	}

	t := &Tree{}
	type item struct {
		parent int
		key    *yaml.Node
		value  *yaml.Node
	}
	stack := []item{{parent: -1, key: top.Content[0], value: top.Content[1]}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.key.Kind != yaml.ScalarNode {
			return nil, domain.NewMalformedTreeError("node labels must be strings")
		}
		idx := t.addNode(cur.parent, cur.key.Value)

		children, err := yamlChildren(cur.value)
		if err != nil {
			return nil, err
		}
		for i := len(children) - 2; i >= 0; i -= 2 {
			stack = append(stack, item{parent: idx, key: children[i], value: children[i+1]})
		}
	}

	return t, nil
}

func yamlChildren(v *yaml.Node) ([]*yaml.Node, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Kind {
	case yaml.MappingNode:
		return v.Content, nil
	case yaml.ScalarNode:
		// An empty value parses as a null scalar and denotes a leaf.
		if v.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, domain.NewMalformedTreeError("subtree children must be a mapping")
}
