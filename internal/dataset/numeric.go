package dataset

import (
	"fmt"
	"reflect"
)

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Interface:
		if rv.IsNil() {
			return 0, false
		}
		return toFloat(rv.Elem())
	}
	return 0, false
}

// Flatten converts a value returned by the reader (a scalar or a nested
// slice of any numeric element type) into row-major float64 values and the
// lengths of each nesting level.
//
// Nesting is walked one level at a time, so the cost does not grow with
// call depth for high-rank variables.
func Flatten(raw any) ([]float64, []int, error) {
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() {
		return nil, nil, fmt.Errorf("%w: nil", ErrNonNumeric)
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		v, ok := toFloat(rv)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrNonNumeric, rv.Type())
		}
		return []float64{v}, nil, nil
	}

	var shape []int
	level := []reflect.Value{rv}
	for isList(level[0]) && isList(elemOf(level[0])) {
		shape = append(shape, level[0].Len())
		next := make([]reflect.Value, 0, len(level)*max(level[0].Len(), 1))
		for _, lv := range level {
			for i := 0; i < lv.Len(); i++ {
				next = append(next, lv.Index(i))
			}
		}
		if len(next) == 0 {
			return nil, append(shape, 0), nil
		}
		level = next
	}
	shape = append(shape, level[0].Len())

	out := make([]float64, 0, len(level)*level[0].Len())
	for _, lv := range level {
		for i := 0; i < lv.Len(); i++ {
			v, ok := toFloat(lv.Index(i))
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s", ErrNonNumeric, lv.Index(i).Type())
			}
			out = append(out, v)
		}
	}
	return out, shape, nil
}

func isList(rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// elemOf returns a value standing for the element type of a list, so the
// nesting depth is known even for empty lists.
func elemOf(rv reflect.Value) reflect.Value {
	if rv.Len() > 0 {
		return rv.Index(0)
	}
	return reflect.Zero(rv.Type().Elem())
}
