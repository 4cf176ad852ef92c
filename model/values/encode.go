package values

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/onflow/cadence"
	jsoncdc "github.com/onflow/cadence/encoding/json"
	"github.com/onflow/cadence/runtime/common"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/onflow/flow-client-go/model/flow"
)

// Marshaler is implemented by types that encode themselves into a value tree.
type Marshaler interface {
	MarshalCadence() (cadence.Value, error)
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

var (
	maxFix64 = decimal.New(1<<63-1, -fixedPointScale)
	minFix64 = decimal.New(-1<<63, -fixedPointScale)
)

// Encode builds a value tree from a Go value. It is the inverse of Decode:
// pointers become optionals, slices and arrays become arrays, maps become
// dictionaries and structs become Struct values whose type is derived from
// the Go type.
func Encode(v interface{}) (cadence.Value, error) {
	e := &encoder{structTypes: make(map[reflect.Type]*cadence.StructType)}
	return e.encode("", reflect.ValueOf(v))
}

// EncodeJSON encodes a Go value as a JSON-Cadence document.
func EncodeJSON(v interface{}) ([]byte, error) {
	value, err := Encode(v)
	if err != nil {
		return nil, err
	}

	b, err := jsoncdc.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode JSON-Cadence value: %w", err)
	}

	return b, nil
}

type encoder struct {
	// structTypes holds the types created during one Encode call. A type is
	// registered before its fields are resolved so that self-referential
	// structs terminate.
	structTypes map[reflect.Type]*cadence.StructType
}

func (e *encoder) encode(path string, v reflect.Value) (cadence.Value, error) {
	if !v.IsValid() {
		return cadence.NewOptional(nil), nil
	}

	t := v.Type()

	if t.Implements(marshalerType) {
		if t.Kind() == reflect.Pointer && v.IsNil() {
			return cadence.NewOptional(nil), nil
		}
		value, err := v.Interface().(Marshaler).MarshalCadence()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", displayPath(path), err)
		}
		return value, nil
	}

	if t.Implements(cadenceValueType) {
		if t.Kind() == reflect.Interface && v.IsNil() {
			return cadence.NewOptional(nil), nil
		}
		return v.Interface().(cadence.Value), nil
	}

	switch {
	case t == reflect.PointerTo(bigIntType):
		if v.IsNil() {
			return cadence.NewOptional(nil), nil
		}
		return cadence.Int{Value: new(big.Int).Set(v.Interface().(*big.Int))}, nil
	case t == bigIntType:
		b := v.Interface().(big.Int)
		return cadence.Int{Value: new(big.Int).Set(&b)}, nil
	case t == decimalType:
		return encodeDecimal(path, v.Interface().(decimal.Decimal))
	case t == addressType:
		return cadence.Address(v.Interface().(flow.Address)), nil
	case reflect.PointerTo(t).Implements(orderedMapType):
		return e.encodeOrderedMap(path, v)
	case t.Kind() == reflect.Slice && t.Elem().Implements(keyValuePairType):
		return e.encodePairs(path, v)
	}

	switch t.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return cadence.NewOptional(nil), nil
		}
		inner, err := e.encode(path, v.Elem())
		if err != nil {
			return nil, err
		}
		return cadence.NewOptional(inner), nil
	case reflect.Interface:
		if v.IsNil() {
			return cadence.NewOptional(nil), nil
		}
		return e.encode(path, v.Elem())
	case reflect.Bool:
		return cadence.NewBool(v.Bool()), nil
	case reflect.String:
		return cadence.NewString(v.String())
	case reflect.Int:
		return cadence.NewInt(int(v.Int())), nil
	case reflect.Int8:
		return cadence.NewInt8(int8(v.Int())), nil
	case reflect.Int16:
		return cadence.NewInt16(int16(v.Int())), nil
	case reflect.Int32:
		return cadence.NewInt32(int32(v.Int())), nil
	case reflect.Int64:
		return cadence.NewInt64(v.Int()), nil
	case reflect.Uint:
		return cadence.UInt{Value: new(big.Int).SetUint64(v.Uint())}, nil
	case reflect.Uint8:
		return cadence.NewUInt8(uint8(v.Uint())), nil
	case reflect.Uint16:
		return cadence.NewUInt16(uint16(v.Uint())), nil
	case reflect.Uint32:
		return cadence.NewUInt32(uint32(v.Uint())), nil
	case reflect.Uint64:
		return cadence.NewUInt64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return encodeDecimal(path, decimal.NewFromFloat(v.Float()).Round(fixedPointScale))
	case reflect.Slice, reflect.Array:
		return e.encodeArray(path, v, t)
	case reflect.Map:
		return e.encodeMap(path, v)
	case reflect.Struct:
		return e.encodeStruct(path, v)
	}

	return nil, UnsupportedShapeError{
		Path:   path,
		Shape:  t.String(),
		Reason: fmt.Sprintf("%s kind cannot be encoded", t.Kind()),
	}
}

func encodeDecimal(path string, d decimal.Decimal) (cadence.Value, error) {
	if !d.Equal(d.Round(fixedPointScale)) {
		return nil, UnsupportedShapeError{
			Path:   path,
			Shape:  "Fix64",
			Reason: fmt.Sprintf("%s has more than %d fractional digits", d, fixedPointScale),
		}
	}

	if d.GreaterThan(maxFix64) || d.LessThan(minFix64) {
		return nil, UnsupportedShapeError{
			Path:   path,
			Shape:  "Fix64",
			Reason: fmt.Sprintf("%s is out of range", d),
		}
	}

	return cadence.Fix64(d.Shift(fixedPointScale).IntPart()), nil
}

// cadenceType returns the static type of values encoded from t.
func (e *encoder) cadenceType(t reflect.Type) cadence.Type {
	switch {
	case t.Implements(marshalerType), t.Implements(cadenceValueType):
		return cadence.AnyStructType{}
	case t == reflect.PointerTo(bigIntType), t == bigIntType:
		return cadence.IntType{}
	case t == decimalType:
		return cadence.Fix64Type{}
	case t == addressType:
		return cadence.AddressType{}
	case reflect.PointerTo(t).Implements(orderedMapType):
		keys, _ := t.FieldByName("Keys")
		values, _ := t.FieldByName("Values")
		return &cadence.DictionaryType{
			KeyType:     e.cadenceType(keys.Type.Elem()),
			ElementType: e.cadenceType(values.Type.Elem()),
		}
	case t.Kind() == reflect.Slice && t.Elem().Implements(keyValuePairType):
		return &cadence.DictionaryType{
			KeyType:     e.cadenceType(t.Elem().Field(0).Type),
			ElementType: e.cadenceType(t.Elem().Field(1).Type),
		}
	}

	switch t.Kind() {
	case reflect.Pointer:
		return &cadence.OptionalType{Type: e.cadenceType(t.Elem())}
	case reflect.Bool:
		return cadence.BoolType{}
	case reflect.String:
		return cadence.StringType{}
	case reflect.Int:
		return cadence.IntType{}
	case reflect.Int8:
		return cadence.Int8Type{}
	case reflect.Int16:
		return cadence.Int16Type{}
	case reflect.Int32:
		return cadence.Int32Type{}
	case reflect.Int64:
		return cadence.Int64Type{}
	case reflect.Uint:
		return cadence.UIntType{}
	case reflect.Uint8:
		return cadence.UInt8Type{}
	case reflect.Uint16:
		return cadence.UInt16Type{}
	case reflect.Uint32:
		return cadence.UInt32Type{}
	case reflect.Uint64:
		return cadence.UInt64Type{}
	case reflect.Float32, reflect.Float64:
		return cadence.Fix64Type{}
	case reflect.Slice:
		return &cadence.VariableSizedArrayType{ElementType: e.cadenceType(t.Elem())}
	case reflect.Array:
		return &cadence.ConstantSizedArrayType{ElementType: e.cadenceType(t.Elem()), Size: uint(t.Len())}
	case reflect.Map:
		return &cadence.DictionaryType{
			KeyType:     e.cadenceType(t.Key()),
			ElementType: e.cadenceType(t.Elem()),
		}
	case reflect.Struct:
		return e.structType(t)
	}

	return cadence.AnyStructType{}
}

func (e *encoder) structType(t reflect.Type) *cadence.StructType {
	if st, ok := e.structTypes[t]; ok {
		return st
	}

	st := &cadence.StructType{
		Location:            common.StringLocation(locationName(t)),
		QualifiedIdentifier: identifierName(t),
	}
	e.structTypes[t] = st

	d, err := descriptorOf(t)
	if err != nil {
		return st
	}

	for _, field := range d.fields {
		if field.typeID {
			continue
		}
		st.Fields = append(st.Fields, cadence.Field{
			Identifier: field.name,
			Type:       e.cadenceType(t.FieldByIndex(field.index).Type),
		})
	}

	return st
}

// locationName derives a location from the package name of t.
func locationName(t reflect.Type) string {
	pkg := t.PkgPath()
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		pkg = pkg[i+1:]
	}
	if pkg == "" {
		pkg = "go"
	}
	return strings.NewReplacer(".", "_", "-", "_").Replace(pkg)
}

// identifierName strips the type parameters from the name of t.
func identifierName(t reflect.Type) string {
	name, _, _ := strings.Cut(t.Name(), "[")
	if name == "" {
		return "Anonymous"
	}
	return name
}

func (e *encoder) encodeArray(path string, v reflect.Value, t reflect.Type) (cadence.Value, error) {
	values := make([]cadence.Value, v.Len())
	for i := 0; i < v.Len(); i++ {
		value, err := e.encode(indexPath(path, i), v.Index(i))
		if err != nil {
			return nil, err
		}
		values[i] = value
	}

	arrayType, _ := e.cadenceType(t).(cadence.ArrayType)
	return cadence.NewArray(values).WithType(arrayType), nil
}

func (e *encoder) encodeMap(path string, v reflect.Value) (cadence.Value, error) {
	keys := v.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	})

	pairs := make([]cadence.KeyValuePair, 0, len(keys))
	for _, key := range keys {
		pair, err := e.encodePair(path, key, v.MapIndex(key))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return e.dictionary(v.Type(), pairs), nil
}

func (e *encoder) encodeOrderedMap(path string, v reflect.Value) (cadence.Value, error) {
	keys := v.FieldByName("Keys")
	values := v.FieldByName("Values")

	pairs := make([]cadence.KeyValuePair, 0, keys.Len())
	for i := 0; i < keys.Len(); i++ {
		key := keys.Index(i)
		value := values.MapIndex(key)
		if !value.IsValid() {
			value = reflect.Zero(values.Type().Elem())
		}
		pair, err := e.encodePair(path, key, value)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return e.dictionary(v.Type(), pairs), nil
}

func (e *encoder) encodePairs(path string, v reflect.Value) (cadence.Value, error) {
	pairs := make([]cadence.KeyValuePair, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		pair, err := e.encodePair(path, v.Index(i).Field(0), v.Index(i).Field(1))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return e.dictionary(v.Type(), pairs), nil
}

func (e *encoder) encodePair(path string, key, value reflect.Value) (cadence.KeyValuePair, error) {
	k, err := e.encode(path, key)
	if err != nil {
		return cadence.KeyValuePair{}, err
	}

	element, err := e.encode(keyPath(path, k), value)
	if err != nil {
		return cadence.KeyValuePair{}, err
	}

	return cadence.KeyValuePair{Key: k, Value: element}, nil
}

func (e *encoder) dictionary(t reflect.Type, pairs []cadence.KeyValuePair) cadence.Dictionary {
	dictionaryType, _ := e.cadenceType(t).(*cadence.DictionaryType)
	return cadence.NewDictionary(pairs).WithType(dictionaryType)
}

func (e *encoder) encodeStruct(path string, v reflect.Value) (cadence.Value, error) {
	t := v.Type()

	d, err := descriptorOf(t)
	if err != nil {
		return nil, err
	}

	structType := e.structType(t)

	fields := make([]cadence.Value, 0, len(structType.Fields))
	typeID := ""
	for _, field := range d.fields {
		fv := v.FieldByIndex(field.index)

		if field.typeID {
			typeID = fv.String()
			continue
		}

		value, err := e.encode(fieldPath(path, field.name), fv)
		if err != nil {
			return nil, err
		}
		fields = append(fields, value)
	}

	if typeID != "" {
		structType = &cadence.StructType{
			QualifiedIdentifier: typeID,
			Fields:              structType.Fields,
		}
	}

	return cadence.NewStruct(fields).WithType(structType), nil
}
