package values

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

const descriptorCacheSize = 1024

const (
	tagName        = "cadence"
	optionOptional = "optional"
	optionTypeID   = "typeid"
)

// fieldDescriptor maps one Go struct field to a composite field.
type fieldDescriptor struct {
	index    []int
	name     string
	optional bool
	typeID   bool
}

// structDescriptor lists the decodable fields of a struct type. Descriptors
// only record field names and indices; nested types are resolved when a value
// of that type is reached, which lets a struct refer to itself.
type structDescriptor struct {
	fields []fieldDescriptor
}

var descriptors *lru.Cache[reflect.Type, *structDescriptor]

func init() {
	var err error
	descriptors, err = lru.New[reflect.Type, *structDescriptor](descriptorCacheSize)
	if err != nil {
		panic(err)
	}
}

func descriptorOf(t reflect.Type) (*structDescriptor, error) {
	if d, ok := descriptors.Get(t); ok {
		return d, nil
	}

	d, err := newStructDescriptor(t)
	if err != nil {
		return nil, err
	}

	descriptors.Add(t, d)
	return d, nil
}

func newStructDescriptor(t reflect.Type) (*structDescriptor, error) {
	d := &structDescriptor{}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get(tagName)
		if tag == "-" {
			continue
		}

		name, options, _ := strings.Cut(tag, ",")
		if name == "" {
			name = defaultFieldName(f.Name)
		}

		field := fieldDescriptor{
			index: f.Index,
			name:  name,
		}

		for _, option := range strings.Split(options, ",") {
			switch option {
			case optionOptional:
				field.optional = true
			case optionTypeID:
				if f.Type.Kind() != reflect.String {
					return nil, UnsupportedShapeError{
						Shape:  t.String(),
						Reason: "typeid field " + f.Name + " must be a string",
					}
				}
				field.typeID = true
			}
		}

		d.fields = append(d.fields, field)
	}

	return d, nil
}

// defaultFieldName lower-cases the first letter of a Go field name, so that
// field Name matches composite field name.
func defaultFieldName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}
