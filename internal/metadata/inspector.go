package metadata

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Option configures Inspect.
type Option func(*inspector)

type inspector struct {
	enums map[reflect.Type][]string
}

// WithEnum marks fields of type T as enumerations with the given options.
func WithEnum[T ~string](values []T) Option {
	return func(in *inspector) {
		opts := make([]string, len(values))
		for i, v := range values {
			opts[i] = string(v)
		}
		in.enums[reflect.TypeOf(*new(T))] = opts
	}
}

// Inspect analyzes a struct and returns its EntityDef.
// Pointer fields and fields tagged omitempty are optional; the rest are required.
func Inspect(entity any, name string, opts ...Option) EntityDef {
	in := &inspector{enums: make(map[reflect.Type][]string)}
	for _, opt := range opts {
		opt(in)
	}

	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if name == "" {
		name = t.Name()
	}

	def := EntityDef{
		Name:   name,
		Label:  guessLabel(t.Name()),
		Fields: make([]FieldDef, 0, t.NumField()),
	}
	in.inspectStruct(t, &def)
	return def
}

func (in *inspector) inspectStruct(t reflect.Type, def *EntityDef) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.PkgPath != "" { // unexported
			continue
		}

		// Handle embedded structs (flattening)
		if field.Anonymous {
			in.inspectStruct(field.Type, def)
			continue
		}

		fDef := FieldDef{
			Name:     jsonName(field),
			Label:    guessLabel(field.Name),
			Required: isRequired(field),
		}
		if fDef.Name == "-" {
			continue
		}

		in.mapFieldType(&fDef, field.Type)
		def.Fields = append(def.Fields, fDef)
	}
}

var (
	moneyType = reflect.TypeOf(decimal.Decimal{})
	timeType  = reflect.TypeOf(time.Time{})
)

func (in *inspector) mapFieldType(def *FieldDef, t reflect.Type) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if options, ok := in.enums[t]; ok {
		def.Type = TypeEnum
		def.Options = options
		return
	}

	switch t {
	case moneyType:
		def.Type = TypeMoney
		def.Scale = 2
		return
	case timeType:
		def.Type = TypeDate
		return
	}

	switch t.Kind() {
	case reflect.String:
		def.Type = TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		def.Type = TypeInteger
	case reflect.Float32, reflect.Float64:
		def.Type = TypeNumber
		def.Scale = 2
	case reflect.Bool:
		def.Type = TypeBoolean
	default:
		def.Type = TypeString // fallback
	}
}

func jsonName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			return parts[0]
		}
	}
	// Fallback: camelCase
	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func isRequired(field reflect.StructField) bool {
	if field.Type.Kind() == reflect.Ptr {
		return false
	}
	tag := field.Tag.Get("json")
	return !strings.Contains(tag, ",omitempty")
}

// guessLabel splits a CamelCase name into words: "OfficeChair" -> "Office Chair".
// Acronyms stay together: "ID" -> "ID".
func guessLabel(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
