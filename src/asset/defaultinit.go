package asset

import "reflect"

// defaultInitialize walks obj depth first and calls DefaultInitialize on
// every value that implements it, children before parents.
func defaultInitialize(obj any) {
	if obj == nil {
		return
	}
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		initValue(v.Elem())
	}
	if di, ok := obj.(DefaultInitializer); ok {
		di.DefaultInitialize()
	}
}

func initValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				initChild(v.Field(i))
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			initChild(v.Index(i))
		}
	}
}

func initChild(v reflect.Value) {
	switch {
	case v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface:
		if !v.IsNil() {
			defaultInitialize(v.Interface())
		}
	case v.CanAddr():
		defaultInitialize(v.Addr().Interface())
	default:
		initValue(v)
	}
}
