package asset

import (
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

func (m *assetManager) save(path Path, toSave Asset) error {
	if m.writeFS == nil {
		return ErrNoWritableFS
	}
	if reflect.TypeOf(toSave).Kind() != reflect.Pointer {
		log.Panicf("Save must be given a pointer, got %T.  This is a programming error", toSave)
	}
	d, err := m.descriptorFor(toSave)
	if err != nil {
		return err
	}
	if p, ok := toSave.(PreSavingAsset); ok {
		p.PreSave()
	}

	inner, err := m.encodeValue(reflect.ValueOf(toSave).Elem(), true)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	data, err := json.MarshalIndent(savedContainer{Type: d.FullName, Inner: inner}, "", "  ")
	if err != nil {
		return err
	}

	if !strings.HasSuffix(string(path), ".json") {
		path += ".json"
	}
	if err := m.writeFS.WriteFile(path, data); err != nil {
		return err
	}
	m.assetToPath[toSave] = path
	m.pathToAsset[path] = toSave
	return nil
}

// encodeValue builds the generic json tree for v.  Structs become maps of
// their exported fields and pointers to loaded assets become references.
func (m *assetManager) encodeValue(v reflect.Value, top bool) (any, error) {
	if v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface && v.Type().Implements(textMarshalerType) {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		if path, ok := m.assetToPath[v.Interface()]; ok && !top {
			_, fullname := ObjectTypeName(v.Interface())
			return reference{Type: fullname, Path: path}, nil
		}
		// pointers to values that are not assets are runtime state
		return nil, nil

	case reflect.Struct:
		out := map[string]any{}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			fv, err := m.encodeValue(v.Field(i), false)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", t.Field(i).Name, err)
			}
			out[t.Field(i).Name] = fv
		}
		return out, nil

	case reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(v.Bytes()), nil
		}
		fallthrough
	case reflect.Array:
		list := make([]any, v.Len())
		for i := range list {
			ev, err := m.encodeValue(v.Index(i), false)
			if err != nil {
				return nil, err
			}
			list[i] = ev
		}
		return list, nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("only string keyed maps are supported, got %s", v.Type())
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			ev, err := m.encodeValue(iter.Value(), false)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = ev
		}
		return out, nil

	case reflect.Func, reflect.Chan:
		return nil, nil
	}
	return v.Interface(), nil
}
