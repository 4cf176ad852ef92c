package values

import (
	"fmt"
	"strings"

	"github.com/onflow/cadence"
)

// composite is a uniform view over the struct, resource, event, contract and
// enum values.
type composite struct {
	kind   string
	typeID string
	names  []string
	fields []cadence.Value
}

func asComposite(value cadence.Value) (composite, bool) {
	switch v := value.(type) {
	case cadence.Struct:
		c := composite{kind: "Struct", fields: v.Fields}
		if v.StructType != nil {
			c.typeID = v.StructType.ID()
			c.names = fieldNames(v.StructType.Fields)
		}
		return c, true
	case cadence.Resource:
		c := composite{kind: "Resource", fields: v.Fields}
		if v.ResourceType != nil {
			c.typeID = v.ResourceType.ID()
			c.names = fieldNames(v.ResourceType.Fields)
		}
		return c, true
	case cadence.Event:
		c := composite{kind: "Event", fields: v.Fields}
		if v.EventType != nil {
			c.typeID = v.EventType.ID()
			c.names = fieldNames(v.EventType.Fields)
		}
		return c, true
	case cadence.Contract:
		c := composite{kind: "Contract", fields: v.Fields}
		if v.ContractType != nil {
			c.typeID = v.ContractType.ID()
			c.names = fieldNames(v.ContractType.Fields)
		}
		return c, true
	case cadence.Enum:
		c := composite{kind: "Enum", fields: v.Fields}
		if v.EnumType != nil {
			c.typeID = v.EnumType.ID()
			c.names = fieldNames(v.EnumType.Fields)
		}
		return c, true
	}
	return composite{}, false
}

func fieldNames(fields []cadence.Field) []string {
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Identifier
	}
	return names
}

// typed reports whether every field value has a name.
func (c composite) typed() bool {
	return len(c.names) == len(c.fields)
}

// field returns the value of the field with the given name. Names are
// matched case-sensitively.
func (c composite) field(name string) (cadence.Value, bool) {
	for i, n := range c.names {
		if n == name && i < len(c.fields) {
			return c.fields[i], true
		}
	}
	return nil, false
}

func (c composite) String() string {
	if c.typeID == "" {
		return c.kind
	}
	return c.kind + " " + c.typeID
}

// kindOf describes a value for error messages.
func kindOf(value cadence.Value) string {
	if value == nil {
		return "nil"
	}
	if c, ok := asComposite(value); ok {
		return c.String()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", value), "cadence.")
}
