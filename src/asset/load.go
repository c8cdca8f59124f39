package asset

import (
	"bytes"
	"encoding"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/jinzhu/copier"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func (m *assetManager) load(path Path, options LoadOptions) (Asset, error) {
	existing, loaded := m.pathToAsset[path]
	if loaded && !options.ForceReload {
		return existing, nil
	}

	data, err := m.readFile(path)
	if err != nil {
		return nil, err
	}
	var c container
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	d, ok := m.descriptors[c.Type]
	if !ok {
		return nil, fmt.Errorf("%s: unknown type %q: %w", path, c.Type, ErrNotRegistered)
	}

	target := existing
	if target == nil {
		if target, err = d.Create(); err != nil {
			return nil, err
		}
	} else if _, fullname := ObjectTypeName(target); fullname != c.Type {
		return nil, fmt.Errorf("%s: reload type mismatch, have %s, file holds %s", path, fullname, c.Type)
	}

	// register before decoding so self references resolve
	m.assetToPath[target] = path
	m.pathToAsset[path] = target

	if err := m.decodeInner(c.Inner, target); err != nil {
		if !loaded {
			delete(m.assetToPath, target)
			delete(m.pathToAsset, path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p, ok := target.(PostLoadingAsset); ok {
		p.PostLoad()
	}
	return target, nil
}

func (m *assetManager) decodeInner(raw json.RawMessage, target Asset) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return err
	}
	// a null Inner keeps every default
	if generic == nil {
		return nil
	}
	return m.decodeValue(generic, reflect.ValueOf(target).Elem(), "Inner")
}

// decodeValue writes the generic json value src into dest, using dest's
// type to recover what the json erased.
func (m *assetManager) decodeValue(src any, dest reflect.Value, at string) error {
	if src == nil {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	if dest.CanAddr() && dest.Addr().Type().Implements(textUnmarshalerType) {
		s, ok := src.(string)
		if !ok {
			return fmt.Errorf("%s: want text, got %T", at, src)
		}
		return dest.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}

	switch dest.Kind() {
	case reflect.Pointer:
		obj, ok := src.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: want object for pointer, got %T", at, src)
		}
		if p, ok := obj["Path"].(string); ok {
			if _, isRef := obj["Type"]; isRef {
				ref, err := m.load(Path(p), LoadOptions{})
				if err != nil {
					return fmt.Errorf("%s: %w", at, err)
				}
				rv := reflect.ValueOf(ref)
				if !rv.Type().AssignableTo(dest.Type()) {
					return fmt.Errorf("%s: %s holds %s, not assignable to %s", at, p, rv.Type(), dest.Type())
				}
				dest.Set(rv)
				return nil
			}
		}
		// an inline value
		if dest.IsNil() {
			dest.Set(reflect.New(dest.Type().Elem()))
		}
		return m.decodeValue(src, dest.Elem(), at)

	case reflect.Struct:
		obj, ok := src.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: want object, got %T", at, src)
		}
		t := dest.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			v, ok := lookupField(obj, field.Name)
			if !ok {
				continue
			}
			if err := m.decodeValue(v, dest.Field(i), at+"."+field.Name); err != nil {
				return err
			}
		}

	case reflect.Slice:
		if dest.Type().Elem().Kind() == reflect.Uint8 {
			s, ok := src.(string)
			if !ok {
				return fmt.Errorf("%s: want base64 string, got %T", at, src)
			}
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return fmt.Errorf("%s: %w", at, err)
			}
			dest.SetBytes(b)
			return nil
		}
		list, ok := src.([]any)
		if !ok {
			return fmt.Errorf("%s: want array, got %T", at, src)
		}
		dest.Set(reflect.MakeSlice(dest.Type(), len(list), len(list)))
		for i, v := range list {
			if err := m.decodeValue(v, dest.Index(i), fmt.Sprintf("%s[%d]", at, i)); err != nil {
				return err
			}
		}

	case reflect.Array:
		list, ok := src.([]any)
		if !ok {
			return fmt.Errorf("%s: want array, got %T", at, src)
		}
		for i := 0; i < dest.Len() && i < len(list); i++ {
			if err := m.decodeValue(list[i], dest.Index(i), fmt.Sprintf("%s[%d]", at, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		obj, ok := src.(map[string]any)
		if !ok || dest.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%s: only string keyed maps are supported", at)
		}
		dest.Set(reflect.MakeMapWithSize(dest.Type(), len(obj)))
		for k, v := range obj {
			elem := reflect.New(dest.Type().Elem()).Elem()
			if err := m.decodeValue(v, elem, at+"."+k); err != nil {
				return err
			}
			dest.SetMapIndex(reflect.ValueOf(k).Convert(dest.Type().Key()), elem)
		}

	case reflect.Interface:
		// interfaces can only hold asset references
		obj, ok := src.(map[string]any)
		p, isPath := obj["Path"].(string)
		if !ok || !isPath {
			return fmt.Errorf("%s: interface fields must hold an asset reference", at)
		}
		ref, err := m.load(Path(p), LoadOptions{})
		if err != nil {
			return fmt.Errorf("%s: %w", at, err)
		}
		dest.Set(reflect.ValueOf(ref))

	default:
		return decodeScalar(src, dest, at)
	}
	return nil
}

func decodeScalar(src any, dest reflect.Value, at string) error {
	switch v := src.(type) {
	case json.Number:
		switch {
		case dest.CanInt():
			n, err := v.Int64()
			if err != nil {
				f, ferr := v.Float64()
				if ferr != nil {
					return fmt.Errorf("%s: %w", at, err)
				}
				n = int64(f)
			}
			dest.SetInt(n)
		case dest.CanUint():
			n, err := v.Int64()
			if err != nil || n < 0 {
				return fmt.Errorf("%s: %v is not an unsigned integer", at, v)
			}
			dest.SetUint(uint64(n))
		case dest.CanFloat():
			f, err := v.Float64()
			if err != nil {
				return fmt.Errorf("%s: %w", at, err)
			}
			dest.SetFloat(f)
		default:
			return fmt.Errorf("%s: cannot store number in %s", at, dest.Type())
		}
	case string:
		if dest.Kind() != reflect.String {
			return fmt.Errorf("%s: cannot store string in %s", at, dest.Type())
		}
		// SetString also covers named string types such as Path
		dest.SetString(v)
	case bool:
		if dest.Kind() != reflect.Bool {
			return fmt.Errorf("%s: cannot store bool in %s", at, dest.Type())
		}
		dest.SetBool(v)
	default:
		return fmt.Errorf("%s: unexpected %T", at, src)
	}
	return nil
}

func lookupField(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func (m *assetManager) newInstance(a Asset) (Asset, error) {
	d, err := m.descriptorFor(a)
	if err != nil {
		return nil, err
	}
	instance, err := d.Create()
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(instance, a, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("instance of %s: %w", d.FullName, err)
	}
	m.relinkReferences(reflect.ValueOf(a).Elem(), reflect.ValueOf(instance).Elem())
	if p, ok := instance.(PostLoadingAsset); ok {
		p.PostLoad()
	}
	return instance, nil
}

// relinkReferences points the copy's asset references back at the shared
// assets the deep copy duplicated.
func (m *assetManager) relinkReferences(src, dst reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer, reflect.Interface:
		if src.IsNil() {
			return
		}
		if _, shared := m.assetToPath[src.Interface()]; shared {
			dst.Set(src)
		}
	case reflect.Struct:
		for i := 0; i < src.NumField(); i++ {
			if src.Type().Field(i).IsExported() {
				m.relinkReferences(src.Field(i), dst.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < src.Len() && i < dst.Len(); i++ {
			m.relinkReferences(src.Index(i), dst.Index(i))
		}
	}
}
