package toml

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Unmarshal parses TOML-encoded data and stores the result in the value
// pointed to by v, which must be a non-nil pointer.
func Unmarshal(data []byte, v any) error {
	tree, err := newReader(data).read()
	if err != nil {
		return err
	}
	return decode(tree, v)
}

// decode maps a generic map[string]any tree onto a struct/slice/map via
// reflection, preferring `toml` struct tags and falling back to field
// names.
func decode(data any, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("toml: decode target must be a non-nil pointer")
	}
	return decodeValue(data, val.Elem())
}

func decodeValue(data any, val reflect.Value) error {
	if data == nil {
		return nil
	}

	switch val.Kind() {
	case reflect.Ptr:
		elem := reflect.New(val.Type().Elem())
		if err := decodeValue(data, elem.Elem()); err != nil {
			return err
		}
		val.Set(elem)

	case reflect.Struct:
		dataMap, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table for struct, got %T", data)
		}
		return decodeStruct(dataMap, val)

	case reflect.Slice:
		// A table array comes back from the reader as []map[string]any
		// rather than []any; normalize before indexing uniformly below.
		dataSlice, ok := data.([]any)
		if !ok {
			mapSlice, ok := data.([]map[string]any)
			if !ok {
				return fmt.Errorf("expected array, got %T", data)
			}
			dataSlice = make([]any, len(mapSlice))
			for i, m := range mapSlice {
				dataSlice[i] = m
			}
		}

		out := reflect.MakeSlice(val.Type(), len(dataSlice), len(dataSlice))
		for i := range dataSlice {
			if err := decodeValue(dataSlice[i], out.Index(i)); err != nil {
				return err
			}
		}
		val.Set(out)

	case reflect.Map:
		dataMap, ok := data.(map[string]any)
		if !ok {
			return fmt.Errorf("expected table, got %T", data)
		}

		keyKind := val.Type().Key().Kind()
		if !mapKeyKindSupported(keyKind) {
			return fmt.Errorf("unsupported map key kind %v (only string and integer keys are supported)", keyKind)
		}

		out := reflect.MakeMap(val.Type())
		elemType := val.Type().Elem()

		for k, vData := range dataMap {
			key, err := decodeMapKey(k, val.Type().Key())
			if err != nil {
				return fmt.Errorf("map key %q: %w", k, err)
			}
			elem := reflect.New(elemType).Elem()
			if err := decodeValue(vData, elem); err != nil {
				return fmt.Errorf("map key %q: %w", k, err)
			}
			out.SetMapIndex(key, elem)
		}
		val.Set(out)

	case reflect.Interface:
		val.Set(reflect.ValueOf(data))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := data.(int); ok {
			val.SetInt(int64(n))
			break
		}
		f, ok := toFloat(data)
		if !ok {
			return fmt.Errorf("cannot convert %T to int", data)
		}
		val.SetInt(int64(f))

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(data)
		if !ok {
			return fmt.Errorf("cannot convert %T to float", data)
		}
		val.SetFloat(f)

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return fmt.Errorf("cannot convert %T to string", data)
		}
		val.SetString(s)

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return fmt.Errorf("cannot convert %T to bool", data)
		}
		val.SetBool(b)
	}

	return nil
}

// mapKeyKindSupported governs which map key kinds decodeValue's
// reflect.Map case accepts. Integer keys are serialized as quoted
// decimal strings by the encoder (see mapKeyName in encode.go), so a
// document written by this package's own Marshal round-trips.
func mapKeyKindSupported(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func decodeMapKey(raw string, keyType reflect.Type) (reflect.Value, error) {
	v := reflect.New(keyType).Elem()

	if keyType.Kind() == reflect.String {
		v.SetString(raw)
		return v, nil
	}

	switch keyType.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("not an unsigned integer: %w", err)
		}
		v.SetUint(n)
		return v, nil
	default:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("not an integer: %w", err)
		}
		v.SetInt(n)
		return v, nil
	}
}

func decodeStruct(data map[string]any, val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		if fieldType.PkgPath != "" {
			continue
		}

		key := fieldType.Name
		if tag := fieldType.Tag.Get("toml"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			key = parts[0]
		}

		vData, ok := data[key]
		if !ok {
			continue
		}
		if err := decodeValue(vData, field); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.Name(), fieldType.Name, err)
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch i := v.(type) {
	case int:
		return float64(i), true
	case int8:
		return float64(i), true
	case int16:
		return float64(i), true
	case int32:
		return float64(i), true
	case int64:
		return float64(i), true
	case uint:
		return float64(i), true
	case uint8:
		return float64(i), true
	case uint16:
		return float64(i), true
	case uint32:
		return float64(i), true
	case uint64:
		return float64(i), true
	case float64:
		return i, true
	}
	return 0, false
}
