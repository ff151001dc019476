package toml

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Marshal returns the TOML encoding of v.
//
// The root value must be a struct or map. Struct fields and map keys are
// written in sorted order for deterministic output; nil pointers and
// `omitempty` zero fields are skipped. Map keys may be strings or any
// integer kind — integer keys are written as quoted decimal strings
// (e.g. "3 = ..." would collide with TOML's table-array grammar, so a
// key of 3 becomes "3") and Unmarshal reverses the conversion.
func Marshal(v any) ([]byte, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("toml: cannot marshal nil pointer")
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct && val.Kind() != reflect.Map {
		return nil, fmt.Errorf("toml: root must be struct or map, got %v", val.Kind())
	}

	buf := new(bytes.Buffer)
	enc := &encoder{w: buf}
	if err := enc.encodeTable(val, ""); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	w *bytes.Buffer
}

// tableKey pairs a field/key's display name with, for map containers,
// the original reflect.Value key needed to fetch it back out — integer
// keys get reformatted to strings for sorting and can't be round-tripped
// through strconv without knowing the original bit width/signedness.
type tableKey struct {
	name string
	raw  reflect.Value // valid only when the container is a map
}

// encodeTable writes a struct's fields or a map's entries as TOML.
// Scalars are written first, then nested tables/array-of-tables, so the
// output never defines a sub-table before the keys that precede it.
func (e *encoder) encodeTable(rv reflect.Value, prefix string) error {
	keys, err := e.sortedKeys(rv)
	if err != nil {
		return err
	}

	var scalars, tables []tableKey
	for _, k := range keys {
		fieldVal := e.resolveValue(rv, k)
		if !fieldVal.IsValid() || e.shouldSkip(rv, k, fieldVal) {
			continue
		}
		if e.isTable(fieldVal) {
			tables = append(tables, k)
		} else {
			scalars = append(scalars, k)
		}
	}

	for _, k := range scalars {
		val := e.resolveValue(rv, k)
		keyName := e.keyName(rv, k)
		if err := e.writeKey(keyName); err != nil {
			return err
		}
		e.w.WriteString(" = ")
		if err := e.encodeValue(val); err != nil {
			return fmt.Errorf("key %q: %w", keyName, err)
		}
		e.w.WriteString("\n")
	}

	for _, k := range tables {
		val := e.resolveValue(rv, k)
		keyName := e.keyName(rv, k)
		seg := keyName
		if !isBareKey(seg) {
			q := &encoder{w: new(bytes.Buffer)}
			q.encodeString(seg)
			seg = q.w.String()
		}
		fullKey := seg
		if prefix != "" {
			fullKey = prefix + "." + seg
		}

		switch val.Kind() {
		case reflect.Struct, reflect.Map:
			e.w.WriteString("\n[" + fullKey + "]\n")
			if err := e.encodeTable(val, fullKey); err != nil {
				return err
			}

		case reflect.Slice, reflect.Array:
			for i := 0; i < val.Len(); i++ {
				elem := val.Index(i)
				if elem.Kind() == reflect.Ptr {
					if elem.IsNil() {
						continue
					}
					elem = elem.Elem()
				}
				e.w.WriteString("\n[[" + fullKey + "]]\n")
				if err := e.encodeTable(elem, fullKey); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (e *encoder) encodeValue(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			e.w.WriteString("true")
		} else {
			e.w.WriteString("false")
		}

	case reflect.String:
		e.encodeString(v.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.w.WriteString(strconv.FormatInt(v.Int(), 10))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.w.WriteString(strconv.FormatUint(v.Uint(), 10))

	case reflect.Float32, reflect.Float64:
		str := strconv.FormatFloat(v.Float(), 'f', -1, 64)
		if !strings.ContainsAny(str, ".eE") {
			str += ".0"
		}
		e.w.WriteString(str)

	case reflect.Slice, reflect.Array:
		e.w.WriteString("[")
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				e.w.WriteString(", ")
			}
			if err := e.encodeValue(v.Index(i)); err != nil {
				return err
			}
		}
		e.w.WriteString("]")

	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return e.encodeValue(v.Elem())

	default:
		return fmt.Errorf("unsupported type: %v", v.Kind())
	}
	return nil
}

// sortedKeys returns a container's keys in deterministic (sorted) order.
// Map keys may be strings or any integer kind; anything else is rejected.
func (e *encoder) sortedKeys(rv reflect.Value) ([]tableKey, error) {
	var keys []tableKey

	switch rv.Kind() {
	case reflect.Map:
		for _, mk := range rv.MapKeys() {
			name, err := mapKeyName(mk)
			if err != nil {
				return nil, err
			}
			keys = append(keys, tableKey{name: name, raw: mk})
		}
	case reflect.Struct:
		typ := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := typ.Field(i)
			if field.PkgPath != "" {
				continue
			}
			if field.Tag.Get("toml") == "-" {
				continue
			}
			keys = append(keys, tableKey{name: field.Name})
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys, nil
}

// mapKeyName renders a map key for TOML output. String keys pass
// through; integer keys become their decimal form, which writeKey then
// quotes (isBareKey rejects anything starting with a digit), matching
// the quoted-integer convention Unmarshal's decodeMapKey expects back.
func mapKeyName(key reflect.Value) (string, error) {
	switch key.Kind() {
	case reflect.String:
		return key.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(key.Uint(), 10), nil
	default:
		return "", fmt.Errorf("map key must be string or integer, got %v", key.Kind())
	}
}

// resolveValue extracts a table key's value, unwrapping interfaces and
// non-nil pointers so the caller always sees the concrete value.
func (e *encoder) resolveValue(container reflect.Value, k tableKey) reflect.Value {
	var val reflect.Value
	if container.Kind() == reflect.Map {
		val = container.MapIndex(k.raw)
	} else {
		val = container.FieldByName(k.name)
	}

	if val.Kind() == reflect.Interface && !val.IsNil() {
		val = val.Elem()
	}
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		val = val.Elem()
	}
	return val
}

// keyName resolves the TOML key name to print: the map key's string
// form, or a struct field's `toml` tag if it set one.
func (e *encoder) keyName(container reflect.Value, k tableKey) string {
	if container.Kind() == reflect.Map {
		return k.name
	}
	field, _ := container.Type().FieldByName(k.name)
	tag := field.Tag.Get("toml")
	if tag == "" {
		return k.name
	}
	if name := strings.Split(tag, ",")[0]; name != "" {
		return name
	}
	return k.name
}

func (e *encoder) shouldSkip(container reflect.Value, k tableKey, val reflect.Value) bool {
	if (val.Kind() == reflect.Ptr || val.Kind() == reflect.Interface) && val.IsNil() {
		return true
	}
	if container.Kind() == reflect.Map {
		return false
	}
	field, _ := container.Type().FieldByName(k.name)
	tag := field.Tag.Get("toml")
	return strings.Contains(tag, "omitempty") && isEmptyValue(val)
}

// isTable reports whether v should render as [table]/[[array-of-tables]]
// rather than an inline scalar.
func (e *encoder) isTable(v reflect.Value) bool {
	if v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct, reflect.Map:
		return true
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return false
		}
		elem := v.Index(0)
		if elem.Kind() == reflect.Interface || elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		return elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}

func (e *encoder) writeKey(s string) error {
	if isBareKey(s) {
		_, err := e.w.WriteString(s)
		return err
	}
	e.encodeString(s)
	return nil
}

func (e *encoder) encodeString(s string) {
	e.w.WriteString("\"")
	for _, r := range s {
		switch r {
		case '"':
			e.w.WriteString(`\"`)
		case '\\':
			e.w.WriteString(`\\`)
		case '\n':
			e.w.WriteString(`\n`)
		case '\r':
			e.w.WriteString(`\r`)
		case '\t':
			e.w.WriteString(`\t`)
		case '\b':
			e.w.WriteString(`\b`)
		case '\f':
			e.w.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7F {
				e.w.WriteString(fmt.Sprintf(`\u%04X`, r))
			} else {
				e.w.WriteRune(r)
			}
		}
	}
	e.w.WriteString("\"")
}

// isBareKey reports whether s can be written unquoted. The scanner only
// emits tokIdent for runs of A-Za-z0-9_- that don't parse as a number or
// bool, so anything that would scan as one of those must be quoted or
// the reader would reject it as a key.
func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return false
		}
	}
	if s == "true" || s == "false" {
		return false
	}

	c0 := s[0]
	if c0 >= '0' && c0 <= '9' {
		return false
	}
	if c0 == '-' && len(s) > 1 && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	return true
}
