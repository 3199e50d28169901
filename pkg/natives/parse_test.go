package natives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "SYSTEM": {
    "0x4EDE34FBADD967A6": {
      "name": "WAIT",
      "jhash": "0x4EDE34FBADD967A6",
      "comment": "Pauses execution of the current script.",
      "params": [{"type": "int", "name": "ms"}],
      "return_type": "void",
      "build": "323"
    }
  },
  "PLAYER": {
    "0x43A66C31C68491C0": {
      "name": "GET_PLAYER_PED",
      "jhash": "0x6E31E993",
      "comment": "",
      "params": [{"type": "Player", "name": "player"}],
      "return_type": "Ped"
    },
    "0x0000000000000002": {
      "name": "PLAYER_ID",
      "jhash": "0x8AEDCB0A",
      "comment": null,
      "params": null,
      "return_type": "Player"
    }
  },
  "APP": {}
}`

func TestParse_PreservesDocumentOrder(t *testing.T) {
	catalog, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	var names []string
	for _, ns := range catalog.Namespaces {
		names = append(names, ns.Name)
	}
	assert.Equal(t, []string{"SYSTEM", "PLAYER", "APP"}, names)

	player, ok := catalog.Namespace("PLAYER")
	require.True(t, ok)
	require.Len(t, player.Functions, 2)
	assert.Equal(t, "0x43A66C31C68491C0", player.Functions[0].Key)
	assert.Equal(t, "GET_PLAYER_PED", player.Functions[0].Function.Name)
	assert.Equal(t, "PLAYER_ID", player.Functions[1].Function.Name)

	assert.Equal(t, 3, catalog.Len())
}

func TestParse_Fields(t *testing.T) {
	catalog, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	system, ok := catalog.Namespace("SYSTEM")
	require.True(t, ok)
	wait := system.Functions[0].Function
	assert.Equal(t, Function{
		Name:       "WAIT",
		Hash:       "0x4EDE34FBADD967A6",
		Comment:    "Pauses execution of the current script.",
		Params:     []Param{{Type: "int", Name: "ms"}},
		ReturnType: "void",
		Build:      "323",
	}, wait)

	player, _ := catalog.Namespace("PLAYER")
	playerID := player.Functions[1].Function
	assert.Empty(t, playerID.Comment, "null comment decodes as empty")
	assert.Empty(t, playerID.Params, "null params decode as zero parameters")
}

func TestParse_NullNamespace(t *testing.T) {
	catalog, err := Parse([]byte(`{"EMPTY": null, "OTHER": {}}`))
	require.NoError(t, err)
	require.Len(t, catalog.Namespaces, 2)
	assert.Empty(t, catalog.Namespaces[0].Functions)
	assert.Equal(t, 0, catalog.Len())
}

func TestParse_DuplicateKeys(t *testing.T) {
	doc := `{
	  "A": {"k1": {"name": "FIRST", "return_type": "void"}},
	  "B": {"k2": {"name": "SECOND", "return_type": "void"}},
	  "A": {"k1": {"name": "REPLACED", "return_type": "void"},
	        "k1": {"name": "LAST", "return_type": "int"}}
	}`
	catalog, err := Parse([]byte(doc))
	require.NoError(t, err)

	require.Len(t, catalog.Namespaces, 2)
	assert.Equal(t, "A", catalog.Namespaces[0].Name)
	require.Len(t, catalog.Namespaces[0].Functions, 1)
	assert.Equal(t, "LAST", catalog.Namespaces[0].Functions[0].Function.Name)
	assert.Equal(t, "int", catalog.Namespaces[0].Functions[0].Function.ReturnType)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty input", ``, "unexpected end of input"},
		{"top-level array", `[]`, "expected"},
		{"top-level null", `null`, "expected"},
		{"truncated", `{"A": {"k": {"name": "X", "return_type": "void"}`, "namespace A"},
		{"namespace not object", `{"A": []}`, "namespace A: expected object"},
		{"function not object", `{"A": {"k": "oops"}}`, "namespace A, function k"},
		{"missing name", `{"A": {"k": {"return_type": "void"}}}`, "missing name"},
		{"missing return type", `{"A": {"k": {"name": "X"}}}`, "missing return_type"},
		{"param missing type", `{"A": {"k": {"name": "X", "return_type": "void", "params": [{"name": "p"}]}}}`, "param 0: missing type"},
		{"param missing name", `{"A": {"k": {"name": "X", "return_type": "void", "params": [{"type": "int"}]}}}`, "param 0: missing name"},
		{"trailing data", `{} {}`, "unexpected data after catalog"},
		{"malformed", `{"A": {"k": {"name": }}}`, "namespace A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCatalog_Filter(t *testing.T) {
	catalog, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	filtered := catalog.Filter(func(ns string) bool { return ns != "SYSTEM" })
	require.Len(t, filtered.Namespaces, 2)
	assert.Equal(t, "PLAYER", filtered.Namespaces[0].Name)
	assert.Equal(t, "APP", filtered.Namespaces[1].Name)
	assert.Len(t, catalog.Namespaces, 3, "filter must not modify the receiver")

	_, ok := filtered.Namespace("SYSTEM")
	assert.False(t, ok)
}
