package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
)

func TestParseEnumsAppliesDefaults(t *testing.T) {
	c, err := ParseEnums("enums.yaml", []byte("Color: {}\n"))
	require.NoError(t, err)
	require.Len(t, c.Enums, 1)

	color := c.Enums[0]
	assert.Equal(t, "Color", color.Name)
	assert.Equal(t, "Int32", color.UnderlyingType)
	assert.False(t, color.IsFlag)
	assert.Equal(t, int64(0), color.StartValue)
	assert.Empty(t, color.Values)
}

func TestParseEnumsKeepsDocumentOrder(t *testing.T) {
	doc := `
ResourceType:
  underlying_type: UInt8
  values: [eTexture, eMaterial, eMesh]
AnimationState:
  start_value: 5
BufferUsage:
  is_flag: true
  underlying_type: UInt32
  description: GPU buffer usage bits
Color:
`
	c, err := ParseEnums("enums.yaml", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"ResourceType", "AnimationState", "BufferUsage", "Color"}, c.Names())

	rt, ok := c.Lookup("ResourceType")
	require.True(t, ok)
	assert.Equal(t, "UInt8", rt.UnderlyingType)
	assert.Equal(t, []string{"eTexture", "eMaterial", "eMesh"}, rt.Values)

	as, _ := c.Lookup("AnimationState")
	assert.Equal(t, int64(5), as.StartValue)
	assert.Equal(t, "Int32", as.UnderlyingType)

	bu, _ := c.Lookup("BufferUsage")
	assert.True(t, bu.IsFlag)
	assert.Equal(t, "GPU buffer usage bits", bu.Description)

	color, _ := c.Lookup("Color")
	assert.Equal(t, "Int32", color.UnderlyingType)

	_, ok = c.Lookup("Missing")
	assert.False(t, ok)
}

func TestParseEnumsAcceptsJSON(t *testing.T) {
	doc := `{"Color": {}, "Mode": {"underlying_type": "Int64", "is_flag": true, "start_value": -1}}`
	c, err := ParseEnums("enums.json", []byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Color", "Mode"}, c.Names())
	mode, _ := c.Lookup("Mode")
	assert.Equal(t, "Int64", mode.UnderlyingType)
	assert.True(t, mode.IsFlag)
	assert.Equal(t, int64(-1), mode.StartValue)
}

func TestParseEnumsEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "# nothing yet\n", "~\n"} {
		c, err := ParseEnums("enums.yaml", []byte(doc))
		require.NoError(t, err)
		assert.Empty(t, c.Enums)
	}
}

func TestParseEnumsErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		schema bool
	}{
		{"malformed", "Color: {underlying_type: [", false},
		{"top level list", "- Color\n- Mode\n", true},
		{"entry not mapping", "Color: 3\n", true},
		{"unknown field", "Color:\n  bits: 8\n", true},
		{"flag not bool", "Color:\n  is_flag: maybe\n", true},
		{"start not int", "Color:\n  start_value: one\n", true},
		{"values not list", "Color:\n  values: red\n", true},
		{"duplicate value", "Color:\n  values: [red, red]\n", true},
		{"duplicate enum", "Color: {}\nColor: {}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnums("enums.yaml", []byte(tt.doc))
			require.Error(t, err)
			if tt.schema {
				var se *SchemaError
				require.True(t, errors.As(err, &se), "got %T: %v", err, err)
				assert.True(t, errors.Is(err, errors.ErrSchema))
			} else {
				var le *LoadError
				require.True(t, errors.As(err, &le), "got %T: %v", err, err)
				assert.True(t, errors.Is(err, errors.ErrLoad))
			}
			assert.True(t, errors.IsLoadError(err))
		})
	}
}

func TestLoadEnumsMissingFile(t *testing.T) {
	_, err := LoadEnums(filepath.Join(t.TempDir(), "enums.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLoad))
	assert.True(t, os.IsNotExist(errors.UnwrapAll(err)) || errors.Is(err, os.ErrNotExist))
}

func TestLoadEnumsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enums.yaml")
	require.NoError(t, os.WriteFile(path, []byte("Color: {}\nMode: {is_flag: true}\n"), 0o644))

	c, err := LoadEnums(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, []string{"Color", "Mode"}, c.Names())
}

func TestSchemaErrorMessage(t *testing.T) {
	_, err := ParseEnums("enums.yaml", []byte("Color:\n  bits: 8\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enums.yaml:2")
	assert.Contains(t, err.Error(), "Color")
	assert.Contains(t, err.Error(), `unknown enum field "bits"`)
}
