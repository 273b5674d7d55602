package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Enum field defaults applied to entries that omit them.
const (
	DefaultUnderlyingType = "Int32"
	DefaultIsFlag         = false
	DefaultStartValue     = 0
)

// EnumDefinition is one enumeration type.
type EnumDefinition struct {
	Name           string
	UnderlyingType string
	IsFlag         bool
	StartValue     int64
	Values         []string
	Description    string
}

// EnumCatalog holds every enum of one definitions file, in document order.
type EnumCatalog struct {
	Path  string
	Enums []EnumDefinition
	index map[string]int
}

// Lookup returns the enum called name.
func (c *EnumCatalog) Lookup(name string) (EnumDefinition, bool) {
	i, ok := c.index[name]
	if !ok {
		return EnumDefinition{}, false
	}
	return c.Enums[i], true
}

// Names returns all enum type names in catalog order.
func (c *EnumCatalog) Names() []string {
	names := make([]string, len(c.Enums))
	for i, e := range c.Enums {
		names[i] = e.Name
	}
	return names
}

// LoadEnums reads and parses the enum catalog at path.
func LoadEnums(path string) (*EnumCatalog, error) {
	root, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return buildEnums(path, root)
}

// ParseEnums parses an enum catalog document. path is only used in errors.
func ParseEnums(path string, data []byte) (*EnumCatalog, error) {
	root, err := parseDocument(path, data)
	if err != nil {
		return nil, err
	}
	return buildEnums(path, root)
}

func buildEnums(path string, root *yaml.Node) (*EnumCatalog, error) {
	c := &EnumCatalog{Path: path, index: make(map[string]int)}
	if root == nil {
		return c, nil
	}

	items, err := entries(path, "", root)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		def, err := parseEnum(path, item)
		if err != nil {
			return nil, err
		}
		c.index[def.Name] = len(c.Enums)
		c.Enums = append(c.Enums, def)
	}
	return c, nil
}

func parseEnum(path string, item pair) (EnumDefinition, error) {
	def := EnumDefinition{
		Name:           item.key,
		UnderlyingType: DefaultUnderlyingType,
		IsFlag:         DefaultIsFlag,
		StartValue:     DefaultStartValue,
	}
	if isNull(item.value) {
		return def, nil
	}
	if item.value.Kind != yaml.MappingNode {
		return def, &SchemaError{Path: path, Entity: item.key, Line: item.value.Line, Reason: "enum definition must be a mapping"}
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
		case "underlying_type":
			err = scalar(path, item.key, f.key, f.value, &def.UnderlyingType)
			if err == nil && def.UnderlyingType == "" {
				def.UnderlyingType = DefaultUnderlyingType
			}
		case "is_flag":
			err = scalar(path, item.key, f.key, f.value, &def.IsFlag)
		case "start_value":
			err = scalar(path, item.key, f.key, f.value, &def.StartValue)
		case "description":
			err = scalar(path, item.key, f.key, f.value, &def.Description)
		case "values":
			def.Values, err = parseValues(path, item.key, f.value)
		default:
			err = &SchemaError{Path: path, Entity: item.key, Line: f.line, Reason: fmt.Sprintf("unknown enum field %q", f.key)}
		}
		if err != nil {
			return def, err
		}
	}
	return def, nil
}

func parseValues(path, entity string, n *yaml.Node) ([]string, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &SchemaError{Path: path, Entity: entity, Line: n.Line, Reason: "values must be a list"}
	}
	values := make([]string, 0, len(n.Content))
	seen := make(map[string]bool, len(n.Content))
	for _, item := range n.Content {
		item = resolve(item)
		var v string
		if err := scalar(path, entity, "values", item, &v); err != nil {
			return nil, err
		}
		if seen[v] {
			return nil, &SchemaError{Path: path, Entity: entity, Line: item.Line, Reason: fmt.Sprintf("duplicate enum value %q", v)}
		}
		seen[v] = true
		values = append(values, v)
	}
	return values, nil
}
