package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treesim/domain"
)

func TestFromJSON(t *testing.T) {
	data := []byte(`{"root": {"zebra": {"leaf": {}}, "apple": null, "mango": {}}}`)

	tr, err := FromJSON(data)
	require.NoError(t, err)

	// Document order, not sorted key order.
	assert.Equal(t, []string{"root", "zebra", "leaf", "apple", "mango"}, tr.Labels())

	var childLabels []string
	for _, c := range tr.ChildrenOf(0) {
		childLabels = append(childLabels, tr.Label(c))
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, childLabels)
	assert.Equal(t, 3, tr.MaxDepth())
}

func TestFromJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty input", data: ``},
		{name: "empty object", data: `{}`},
		{name: "top-level array", data: `["a"]`},
		{name: "top-level scalar", data: `"a"`},
		{name: "two root entries", data: `{"a": {}, "b": {}}`},
		{name: "scalar child", data: `{"root": {"a": "leaf"}}`},
		{name: "number child", data: `{"root": {"a": 3}}`},
		{name: "array child", data: `{"root": {"a": ["b"]}}`},
		{name: "truncated document", data: `{"root": {`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromJSON([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, domain.IsMalformedTree(err), "expected MALFORMED_TREE, got %v", err)
		})
	}
}

func TestFromYAML(t *testing.T) {
	data := []byte(`
root:
  zebra:
    leaf:
  apple:
  mango: {}
`)

	tr, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"root", "zebra", "leaf", "apple", "mango"}, tr.Labels())

	var childLabels []string
	for _, c := range tr.ChildrenOf(0) {
		childLabels = append(childLabels, tr.Label(c))
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, childLabels)
}

func TestFromYAML_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty input", data: ``},
		{name: "top-level sequence", data: "- a\n- b"},
		{name: "top-level scalar", data: `hello`},
		{name: "two root entries", data: "a:\nb:"},
		{name: "scalar child", data: "root:\n  a: leaf"},
		{name: "sequence child", data: "root:\n  a:\n    - b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromYAML([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, domain.IsMalformedTree(err), "expected MALFORMED_TREE, got %v", err)
		})
	}
}

func TestFromJSON_FromYAML_Agree(t *testing.T) {
	jsonDoc := []byte(`{"plan": {"intro": {}, "body": {"point": {}}, "outro": {}}}`)
	yamlDoc := []byte("plan:\n  intro:\n  body:\n    point:\n  outro:\n")

	fromJSON, err := FromJSON(jsonDoc)
	require.NoError(t, err)
	fromYAML, err := FromYAML(yamlDoc)
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Labels(), fromYAML.Labels())
	assert.Equal(t, fromJSON.Adjacency(), fromYAML.Adjacency())
}
