// Package values materializes cadence value trees into Go values and back.
//
// Decode walks a value tree and fills a Go value of any shape: scalars, big
// integers, decimals, slices, arrays, maps, ordered maps, pointers for
// optionals and structs for composites. Struct fields are matched by name
// using the `cadence` struct tag:
//
//	type Vault struct {
//		Balance decimal.Decimal              // composite field "balance"
//		Owner   flow.Address `cadence:"owner"`
//		UUID    uint64       `cadence:"uuid,optional"`
//		Type    string       `cadence:",typeid"`
//		Cache   []byte       `cadence:"-"`
//	}
package values

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/shopspring/decimal"

	"github.com/onflow/flow-client-go/model/flow"
)

// Unmarshaler is implemented by types that decode themselves from a value tree.
type Unmarshaler interface {
	UnmarshalCadence(value cadence.Value) error
}

var (
	cadenceValueType = reflect.TypeOf((*cadence.Value)(nil)).Elem()
	unmarshalerType  = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	orderedMapType   = reflect.TypeOf((*orderedMap)(nil)).Elem()
	keyValuePairType = reflect.TypeOf((*keyValuePair)(nil)).Elem()
	bigIntType       = reflect.TypeOf(big.Int{})
	decimalType      = reflect.TypeOf(decimal.Decimal{})
	addressType      = reflect.TypeOf(flow.Address{})
)

// Decode decodes value into the Go value pointed to by target.
//
// Errors are TypeMismatchError, MissingFieldError or UnsupportedShapeError
// and carry the path of the offending node, e.g. "children[2].name".
func Decode(value cadence.Value, target interface{}) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return UnsupportedShapeError{
			Shape:  fmt.Sprintf("%T", target),
			Reason: "target must be a non-nil pointer",
		}
	}

	return decodeValue("", value, rv.Elem())
}

// DecodeJSON parses a JSON-Cadence document and decodes it into target.
func DecodeJSON(b []byte, target interface{}) error {
	value, err := jsoncdc.Decode(nil, b)
	if err != nil {
		return fmt.Errorf("could not parse JSON-Cadence value: %w", err)
	}

	return Decode(value, target)
}

// DecodeEvent decodes the payload of an event into target.
func DecodeEvent(event flow.Event, target interface{}) error {
	value, err := event.Value()
	if err != nil {
		return err
	}

	return Decode(value, target)
}

func isAbsent(value cadence.Value) bool {
	if value == nil {
		return true
	}
	optional, ok := value.(cadence.Optional)
	return ok && optional.Value == nil
}

func decodeValue(path string, value cadence.Value, target reflect.Value) error {
	t := target.Type()

	if t == cadenceValueType {
		if value == nil {
			target.Set(reflect.Zero(t))
			return nil
		}
		target.Set(reflect.ValueOf(value))
		return nil
	}

	if target.CanAddr() && reflect.PointerTo(t).Implements(unmarshalerType) {
		err := target.Addr().Interface().(Unmarshaler).UnmarshalCadence(value)
		if err != nil {
			return fmt.Errorf("%s: %w", displayPath(path), err)
		}
		return nil
	}

	if t.Kind() == reflect.Pointer {
		return decodePointer(path, value, target)
	}

	if isAbsent(value) {
		switch t.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice:
			target.Set(reflect.Zero(t))
			return nil
		}
		return UnsupportedShapeError{
			Path:   path,
			Shape:  t.String(),
			Reason: "absent value cannot be represented",
		}
	}

	if optional, ok := value.(cadence.Optional); ok {
		return decodeValue(path, optional.Value, target)
	}

	switch {
	case t == bigIntType:
		return decodeBigInt(path, value, target)
	case t == decimalType:
		return decodeDecimal(path, value, target)
	case t == addressType:
		return decodeAddress(path, value, target)
	case reflect.PointerTo(t).Implements(orderedMapType):
		return decodeOrderedMap(path, value, target)
	case t.Kind() == reflect.Slice && t.Elem().Implements(keyValuePairType):
		return decodePairs(path, value, target)
	}

	switch t.Kind() {
	case reflect.Interface:
		return decodeInterface(path, value, target)
	case reflect.Bool:
		b, ok := value.(cadence.Bool)
		if !ok {
			return mismatch(path, t, value)
		}
		target.SetBool(bool(b))
		return nil
	case reflect.String:
		return decodeString(path, value, target)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decodeInt(path, value, target)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decodeUint(path, value, target)
	case reflect.Float32, reflect.Float64:
		d, ok := decimalOf(value)
		if !ok {
			return mismatch(path, t, value)
		}
		f, _ := d.Float64()
		target.SetFloat(f)
		return nil
	case reflect.Slice:
		return decodeSlice(path, value, target)
	case reflect.Array:
		return decodeArray(path, value, target)
	case reflect.Map:
		return decodeMap(path, value, target)
	case reflect.Struct:
		return decodeStruct(path, value, target)
	}

	return UnsupportedShapeError{
		Path:   path,
		Shape:  t.String(),
		Reason: fmt.Sprintf("%s kind is not supported", t.Kind()),
	}
}

func mismatch(path string, t reflect.Type, value cadence.Value) error {
	return TypeMismatchError{
		Path:     path,
		Expected: t.String(),
		Actual:   kindOf(value),
	}
}

// decodePointer maps optionals to pointers: an absent value yields nil, any
// other value is decoded into a newly allocated element.
func decodePointer(path string, value cadence.Value, target reflect.Value) error {
	if isAbsent(value) {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	if optional, ok := value.(cadence.Optional); ok {
		value = optional.Value
	}

	elem := reflect.New(target.Type().Elem())
	if err := decodeValue(path, value, elem.Elem()); err != nil {
		return err
	}

	target.Set(elem)
	return nil
}

func decodeInterface(path string, value cadence.Value, target reflect.Value) error {
	if target.Type().NumMethod() != 0 {
		return UnsupportedShapeError{
			Path:   path,
			Shape:  target.Type().String(),
			Reason: "only the empty interface can be decoded into",
		}
	}

	v, err := decodeAny(path, value)
	if err != nil {
		return err
	}

	if v == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	target.Set(reflect.ValueOf(v))
	return nil
}

func decodeString(path string, value cadence.Value, target reflect.Value) error {
	switch v := value.(type) {
	case cadence.String:
		target.SetString(string(v))
	case cadence.Character:
		target.SetString(string(v))
	case cadence.Address:
		target.SetString("0x" + hex.EncodeToString(v[:]))
	case cadence.Path:
		target.SetString(v.String())
	default:
		return mismatch(path, target.Type(), value)
	}
	return nil
}

func decodeInt(path string, value cadence.Value, target reflect.Value) error {
	i, ok := integerOf(value)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	min, max := signedBounds(target.Type().Bits())
	if i.Cmp(min) < 0 || i.Cmp(max) > 0 {
		return TypeMismatchError{
			Path:     path,
			Expected: target.Type().String(),
			Actual:   fmt.Sprintf("%s %s (out of range)", kindOf(value), i),
		}
	}

	target.SetInt(i.Int64())
	return nil
}

func decodeUint(path string, value cadence.Value, target reflect.Value) error {
	i, ok := integerOf(value)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	if i.Sign() < 0 || i.Cmp(unsignedMax(target.Type().Bits())) > 0 {
		return TypeMismatchError{
			Path:     path,
			Expected: target.Type().String(),
			Actual:   fmt.Sprintf("%s %s (out of range)", kindOf(value), i),
		}
	}

	target.SetUint(i.Uint64())
	return nil
}

func decodeBigInt(path string, value cadence.Value, target reflect.Value) error {
	i, ok := integerOf(value)
	if !ok {
		return mismatch(path, target.Type(), value)
	}
	target.Set(reflect.ValueOf(*i))
	return nil
}

func decodeDecimal(path string, value cadence.Value, target reflect.Value) error {
	d, ok := decimalOf(value)
	if !ok {
		return mismatch(path, target.Type(), value)
	}
	target.Set(reflect.ValueOf(d))
	return nil
}

func decodeAddress(path string, value cadence.Value, target reflect.Value) error {
	switch v := value.(type) {
	case cadence.Address:
		target.Set(reflect.ValueOf(flow.Address(v)))
		return nil
	case cadence.String:
		address, err := flow.HexToAddress(string(v))
		if err != nil {
			return fmt.Errorf("%s: %w", displayPath(path), err)
		}
		target.Set(reflect.ValueOf(address))
		return nil
	}
	return mismatch(path, target.Type(), value)
}

func decodeSlice(path string, value cadence.Value, target reflect.Value) error {
	array, ok := value.(cadence.Array)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	slice := reflect.MakeSlice(target.Type(), len(array.Values), len(array.Values))
	for i, element := range array.Values {
		if err := decodeValue(indexPath(path, i), element, slice.Index(i)); err != nil {
			return err
		}
	}

	target.Set(slice)
	return nil
}

func decodeArray(path string, value cadence.Value, target reflect.Value) error {
	array, ok := value.(cadence.Array)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	if len(array.Values) != target.Len() {
		return TypeMismatchError{
			Path:     path,
			Expected: target.Type().String(),
			Actual:   fmt.Sprintf("Array of length %d", len(array.Values)),
		}
	}

	for i, element := range array.Values {
		if err := decodeValue(indexPath(path, i), element, target.Index(i)); err != nil {
			return err
		}
	}

	return nil
}

func decodeMap(path string, value cadence.Value, target reflect.Value) error {
	dictionary, ok := value.(cadence.Dictionary)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	t := target.Type()
	m := reflect.MakeMapWithSize(t, len(dictionary.Pairs))

	for _, pair := range dictionary.Pairs {
		k, v, err := decodeMapPair(path, pair, t, t.Key(), t.Elem())
		if err != nil {
			return err
		}
		m.SetMapIndex(k, v)
	}

	target.Set(m)
	return nil
}

func decodeOrderedMap(path string, value cadence.Value, target reflect.Value) error {
	dictionary, ok := value.(cadence.Dictionary)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	keysField := target.FieldByName("Keys")
	valuesField := target.FieldByName("Values")

	keys := reflect.MakeSlice(keysField.Type(), 0, len(dictionary.Pairs))
	values := reflect.MakeMapWithSize(valuesField.Type(), len(dictionary.Pairs))

	for _, pair := range dictionary.Pairs {
		k, v, err := decodeMapPair(path, pair, target.Type(), keysField.Type().Elem(), valuesField.Type().Elem())
		if err != nil {
			return err
		}
		if !values.MapIndex(k).IsValid() {
			keys = reflect.Append(keys, k)
		}
		values.SetMapIndex(k, v)
	}

	keysField.Set(keys)
	valuesField.Set(values)
	return nil
}

func decodePairs(path string, value cadence.Value, target reflect.Value) error {
	dictionary, ok := value.(cadence.Dictionary)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	pairs := reflect.MakeSlice(target.Type(), len(dictionary.Pairs), len(dictionary.Pairs))
	pairType := target.Type().Elem()

	for i, pair := range dictionary.Pairs {
		k, v, err := decodePair(path, pair, pairType.Field(0).Type, pairType.Field(1).Type)
		if err != nil {
			return err
		}
		pairs.Index(i).Field(0).Set(k)
		pairs.Index(i).Field(1).Set(v)
	}

	target.Set(pairs)
	return nil
}

// decodeMapPair decodes a pair whose key is used to index a Go map. Keys
// decoded into the empty interface take the comparable form of DecodeAny
// dictionary keys.
func decodeMapPair(path string, pair cadence.KeyValuePair, mapType, keyType, valueType reflect.Type) (reflect.Value, reflect.Value, error) {
	if keyType.Kind() != reflect.Interface || keyType.NumMethod() != 0 {
		return decodePair(path, pair, keyType, valueType)
	}

	p := keyPath(path, pair.Key)
	k := reflect.New(keyType).Elem()

	key, err := decodeAnyKey(p, pair.Key, mapType.String())
	if err != nil {
		return k, reflect.Value{}, err
	}
	if key != nil {
		k.Set(reflect.ValueOf(key))
	}

	v := reflect.New(valueType).Elem()
	if err := decodeValue(p, pair.Value, v); err != nil {
		return k, v, err
	}

	return k, v, nil
}

func decodePair(path string, pair cadence.KeyValuePair, keyType, valueType reflect.Type) (reflect.Value, reflect.Value, error) {
	k := reflect.New(keyType).Elem()
	if err := decodeValue(keyPath(path, pair.Key), pair.Key, k); err != nil {
		return k, reflect.Value{}, err
	}

	v := reflect.New(valueType).Elem()
	if err := decodeValue(keyPath(path, pair.Key), pair.Value, v); err != nil {
		return k, v, err
	}

	return k, v, nil
}

func decodeStruct(path string, value cadence.Value, target reflect.Value) error {
	c, ok := asComposite(value)
	if !ok {
		return mismatch(path, target.Type(), value)
	}

	if !c.typed() {
		return UnsupportedShapeError{
			Path:   path,
			Shape:  target.Type().String(),
			Reason: fmt.Sprintf("%s value carries no field names", c.kind),
		}
	}

	d, err := descriptorOf(target.Type())
	if err != nil {
		return err
	}

	for _, field := range d.fields {
		fv := target.FieldByIndex(field.index)

		if field.typeID {
			fv.SetString(c.typeID)
			continue
		}

		source, ok := c.field(field.name)
		if !ok {
			if field.optional {
				continue
			}
			return MissingFieldError{
				Path:      path,
				Composite: c.String(),
				Field:     field.name,
			}
		}

		if err := decodeValue(fieldPath(path, field.name), source, fv); err != nil {
			return err
		}
	}

	return nil
}
