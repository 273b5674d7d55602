package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DescriptorKind names one facet of a message member.
type DescriptorKind string

// The allowed descriptor kinds. Anything else found in a catalog is kept as
// written and rejected during message validation.
const (
	KindType                DescriptorKind = "type"
	KindDefaultValue        DescriptorKind = "default_value"
	KindDescription         DescriptorKind = "description"
	KindDeserializeFunction DescriptorKind = "deserialize_function"
)

// DescriptorKinds lists the allowed kinds in their canonical order.
var DescriptorKinds = []DescriptorKind{
	KindType,
	KindDefaultValue,
	KindDescription,
	KindDeserializeFunction,
}

// Valid reports whether k is one of the allowed descriptor kinds.
func (k DescriptorKind) Valid() bool {
	switch k {
	case KindType, KindDefaultValue, KindDescription, KindDeserializeFunction:
		return true
	}
	return false
}

// Descriptor is one kind/value facet of a member.
type Descriptor struct {
	Kind  DescriptorKind
	Value string
	Line  int
}

// Member is a named message member and its descriptor set.
type Member struct {
	Name        string
	Descriptors []Descriptor
}

// Get returns the value of the descriptor of the given kind.
func (m Member) Get(kind DescriptorKind) (string, bool) {
	for _, d := range m.Descriptors {
		if d.Kind == kind {
			return d.Value, true
		}
	}
	return "", false
}

// MessageDefinition is one network message type. Parent is empty for a
// root message.
type MessageDefinition struct {
	Name        string
	Parent      string
	Description string
	Members     []Member
}

// HasParent reports whether the message declares a parent type.
func (d MessageDefinition) HasParent() bool {
	return d.Parent != ""
}

// Member returns the member declared on d itself called name.
func (d MessageDefinition) Member(name string) (Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// MessageCatalog holds every message of one definitions file, in document order.
type MessageCatalog struct {
	Path     string
	Messages []MessageDefinition
	index    map[string]int
}

// Lookup returns the message called name.
func (c *MessageCatalog) Lookup(name string) (MessageDefinition, bool) {
	i, ok := c.index[name]
	if !ok {
		return MessageDefinition{}, false
	}
	return c.Messages[i], true
}

// Names returns all message type names in catalog order.
func (c *MessageCatalog) Names() []string {
	names := make([]string, len(c.Messages))
	for i, m := range c.Messages {
		names[i] = m.Name
	}
	return names
}

// LoadMessages reads and parses the message catalog at path.
func LoadMessages(path string) (*MessageCatalog, error) {
	root, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return buildMessages(path, root)
}

// ParseMessages parses a message catalog document. path is only used in errors.
func ParseMessages(path string, data []byte) (*MessageCatalog, error) {
	root, err := parseDocument(path, data)
	if err != nil {
		return nil, err
	}
	return buildMessages(path, root)
}

func buildMessages(path string, root *yaml.Node) (*MessageCatalog, error) {
	c := &MessageCatalog{Path: path, index: make(map[string]int)}
	if root == nil {
		return c, nil
	}

	items, err := entries(path, "", root)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		def, err := parseMessage(path, item)
		if err != nil {
			return nil, err
		}
		c.index[def.Name] = len(c.Messages)
		c.Messages = append(c.Messages, def)
	}
	return c, nil
}

func parseMessage(path string, item pair) (MessageDefinition, error) {
	def := MessageDefinition{Name: item.key}
	if isNull(item.value) {
		return def, nil
	}
	if item.value.Kind != yaml.MappingNode {
		return def, &SchemaError{Path: path, Entity: item.key, Line: item.value.Line, Reason: "message definition must be a mapping"}
	}

	fields, err := entries(path, item.key, item.value)
	if err != nil {
		return def, err
	}
	for _, f := range fields {
		if isNull(f.value) {
			continue
		}
		switch f.key {
		case "parent":
			err = scalar(path, item.key, f.key, f.value, &def.Parent)
		case "description":
			err = scalar(path, item.key, f.key, f.value, &def.Description)
		case "members":
			def.Members, err = parseMembers(path, item.key, f.value)
		default:
			err = &SchemaError{Path: path, Entity: item.key, Line: f.line, Reason: fmt.Sprintf("unknown message field %q", f.key)}
		}
		if err != nil {
			return def, err
		}
	}
	return def, nil
}

func parseMembers(path, entity string, n *yaml.Node) ([]Member, error) {
	if n.Kind != yaml.MappingNode {
		return nil, &SchemaError{Path: path, Entity: entity, Line: n.Line, Reason: "members must be a mapping of member name to descriptors"}
	}
	items, err := entries(path, entity, n)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(items))
	for _, item := range items {
		m := Member{Name: item.key}
		if !isNull(item.value) {
			if item.value.Kind != yaml.MappingNode {
				return nil, &SchemaError{
					Path:   path,
					Entity: entity,
					Line:   item.value.Line,
					Reason: fmt.Sprintf("member %q must be a mapping of descriptor kind to value", item.key),
				}
			}
			descriptors, err := entries(path, entity, item.value)
			if err != nil {
				return nil, err
			}
			for _, d := range descriptors {
				if d.value.Kind != yaml.ScalarNode {
					return nil, &SchemaError{
						Path:   path,
						Entity: entity,
						Line:   d.line,
						Reason: fmt.Sprintf("member %q descriptor %q must be a scalar", item.key, d.key),
					}
				}
				value := d.value.Value
				if isNull(d.value) {
					value = ""
				}
				m.Descriptors = append(m.Descriptors, Descriptor{Kind: DescriptorKind(d.key), Value: value, Line: d.line})
			}
		}
		members = append(members, m)
	}
	return members, nil
}
