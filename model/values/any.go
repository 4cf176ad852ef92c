package values

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/onflow/cadence"
	"github.com/shopspring/decimal"

	"github.com/onflow/flow-client-go/model/flow"
)

// DecodeAny decodes a value tree without a target shape.
//
// Composites become map[string]interface{}, arrays []interface{} and
// dictionaries map[interface{}]interface{}. Absent optionals become nil.
// Small integers keep their Go type, big integers become *big.Int and fixed
// point numbers decimal.Decimal. Addresses become flow.Address.
//
// Dictionary keys that have no comparable Go form are keyed by a string:
// big numbers and fixed point numbers by their decimal form, enum cases by
// their type id and raw value.
func DecodeAny(value cadence.Value) (interface{}, error) {
	return decodeAny("", value)
}

func decodeAny(path string, value cadence.Value) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case cadence.Optional:
		if v.Value == nil {
			return nil, nil
		}
		return decodeAny(path, v.Value)
	case cadence.Void:
		return nil, nil
	case cadence.Bool:
		return bool(v), nil
	case cadence.String:
		return string(v), nil
	case cadence.Character:
		return string(v), nil
	case cadence.Address:
		return flow.Address(v), nil
	case cadence.Path:
		return v.String(), nil
	case cadence.TypeValue:
		return v.String(), nil
	case cadence.Int8:
		return int8(v), nil
	case cadence.Int16:
		return int16(v), nil
	case cadence.Int32:
		return int32(v), nil
	case cadence.Int64:
		return int64(v), nil
	case cadence.UInt8:
		return uint8(v), nil
	case cadence.UInt16:
		return uint16(v), nil
	case cadence.UInt32:
		return uint32(v), nil
	case cadence.UInt64:
		return uint64(v), nil
	case cadence.Word8:
		return uint8(v), nil
	case cadence.Word16:
		return uint16(v), nil
	case cadence.Word32:
		return uint32(v), nil
	case cadence.Word64:
		return uint64(v), nil
	case cadence.Int, cadence.Int128, cadence.Int256,
		cadence.UInt, cadence.UInt128, cadence.UInt256:
		i, _ := bigIntOf(v)
		return i, nil
	case cadence.Fix64, cadence.UFix64:
		d, _ := decimalOf(v)
		return d, nil
	case cadence.Array:
		values := make([]interface{}, len(v.Values))
		for i, element := range v.Values {
			decoded, err := decodeAny(indexPath(path, i), element)
			if err != nil {
				return nil, err
			}
			values[i] = decoded
		}
		return values, nil
	case cadence.Dictionary:
		return decodeAnyDictionary(path, v)
	}

	if c, ok := asComposite(value); ok {
		return decodeAnyComposite(path, c)
	}

	return nil, UnsupportedShapeError{
		Path:   path,
		Shape:  "interface {}",
		Reason: fmt.Sprintf("%s value has no generic representation", kindOf(value)),
	}
}

func decodeAnyDictionary(path string, dictionary cadence.Dictionary) (interface{}, error) {
	m := make(map[interface{}]interface{}, len(dictionary.Pairs))

	for _, pair := range dictionary.Pairs {
		p := keyPath(path, pair.Key)

		key, err := decodeAnyKey(p, pair.Key, "map[interface {}]interface {}")
		if err != nil {
			return nil, err
		}

		element, err := decodeAny(p, pair.Value)
		if err != nil {
			return nil, err
		}

		m[key] = element
	}

	return m, nil
}

// decodeAnyKey decodes a dictionary key into a comparable Go value. Big
// numbers and fixed point numbers are keyed by their string form, enum cases
// by their type id and raw value, e.g. "A.0000000000000001.Color.2".
func decodeAnyKey(path string, value cadence.Value, shape string) (interface{}, error) {
	if enum, ok := value.(cadence.Enum); ok {
		c, _ := asComposite(enum)
		raw, ok := integerOf(enum)
		if !ok {
			return nil, UnsupportedShapeError{
				Path:   path,
				Shape:  shape,
				Reason: fmt.Sprintf("%s key has no raw value", c),
			}
		}
		return c.typeID + "." + raw.String(), nil
	}

	key, err := decodeAny(path, value)
	if err != nil {
		return nil, err
	}

	switch k := key.(type) {
	case *big.Int:
		key = k.String()
	case decimal.Decimal:
		key = k.String()
	}

	if key != nil && !reflect.TypeOf(key).Comparable() {
		return nil, UnsupportedShapeError{
			Path:   path,
			Shape:  shape,
			Reason: fmt.Sprintf("%s key is not comparable", kindOf(value)),
		}
	}

	return key, nil
}

func decodeAnyComposite(path string, c composite) (interface{}, error) {
	if !c.typed() {
		return nil, UnsupportedShapeError{
			Path:   path,
			Shape:  "map[string]interface {}",
			Reason: fmt.Sprintf("%s value carries no field names", c.kind),
		}
	}

	m := make(map[string]interface{}, len(c.fields))
	for i, name := range c.names {
		decoded, err := decodeAny(fieldPath(path, name), c.fields[i])
		if err != nil {
			return nil, err
		}
		m[name] = decoded
	}

	return m, nil
}
