package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/schemagen/errors"
)

const sampleMessages = `
SceneMessage:
  description: Base of every scene-scoped message
  members:
    sceneId:
      type: Uuid
      description: Target scene
AddSceneObject:
  parent: SceneMessage
  members:
    objectName:
      type: GString
      default_value: '""'
    parentId:
      type: Uuid
      deserialize_function: fromJsonUuid
Ping:
`

func TestParseMessages(t *testing.T) {
	c, err := ParseMessages("messages.yaml", []byte(sampleMessages))
	require.NoError(t, err)

	assert.Equal(t, []string{"SceneMessage", "AddSceneObject", "Ping"}, c.Names())

	base, ok := c.Lookup("SceneMessage")
	require.True(t, ok)
	assert.False(t, base.HasParent())
	assert.Equal(t, "Base of every scene-scoped message", base.Description)

	add, _ := c.Lookup("AddSceneObject")
	assert.Equal(t, "SceneMessage", add.Parent)
	require.Len(t, add.Members, 2)
	assert.Equal(t, "objectName", add.Members[0].Name)
	assert.Equal(t, "parentId", add.Members[1].Name)

	typ, ok := add.Members[0].Get(KindType)
	require.True(t, ok)
	assert.Equal(t, "GString", typ)
	def, _ := add.Members[0].Get(KindDefaultValue)
	assert.Equal(t, `""`, def)

	parentID, ok := add.Member("parentId")
	require.True(t, ok)
	fn, _ := parentID.Get(KindDeserializeFunction)
	assert.Equal(t, "fromJsonUuid", fn)

	ping, _ := c.Lookup("Ping")
	assert.Empty(t, ping.Members)
	assert.False(t, ping.HasParent())
}

func TestParseMessagesKeepsUnknownDescriptorKinds(t *testing.T) {
	doc := "Base:\n  members:\n    id:\n      type: int\n      tyep: int\n"
	c, err := ParseMessages("messages.yaml", []byte(doc))
	require.NoError(t, err)

	base, _ := c.Lookup("Base")
	require.Len(t, base.Members, 1)
	require.Len(t, base.Members[0].Descriptors, 2)
	assert.True(t, base.Members[0].Descriptors[0].Kind.Valid())
	assert.False(t, base.Members[0].Descriptors[1].Kind.Valid())
	assert.Equal(t, DescriptorKind("tyep"), base.Members[0].Descriptors[1].Kind)
}

func TestParseMessagesAcceptsJSON(t *testing.T) {
	doc := `{"Base": {"members": {"id": {"type": "int"}}}, "Derived": {"parent": "Base", "members": {"id": {"type": "int"}}}}`
	c, err := ParseMessages("messages.json", []byte(doc))
	require.NoError(t, err)

	derived, ok := c.Lookup("Derived")
	require.True(t, ok)
	assert.Equal(t, "Base", derived.Parent)
	_, ok = derived.Member("id")
	assert.True(t, ok)
}

func TestParseMessagesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"top level scalar", "hello\n"},
		{"entry not mapping", "Base: [1, 2]\n"},
		{"unknown field", "Base:\n  extends: Root\n"},
		{"members not mapping", "Base:\n  members: [id]\n"},
		{"member not mapping", "Base:\n  members:\n    id: int\n"},
		{"descriptor not scalar", "Base:\n  members:\n    id:\n      type: [int]\n"},
		{"duplicate member", "Base:\n  members:\n    id: {type: int}\n    id: {type: int}\n"},
		{"parent not scalar", "Base:\n  parent: {name: Root}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMessages("messages.yaml", []byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrSchema), "got %v", err)
		})
	}
}

func TestParseMessagesMalformed(t *testing.T) {
	_, err := ParseMessages("messages.yaml", []byte("Base: {members: {id: {type: int}\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLoad))
}

func TestDescriptorKindValid(t *testing.T) {
	for _, k := range DescriptorKinds {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, DescriptorKind("").Valid())
	assert.False(t, DescriptorKind("Type").Valid())
}
