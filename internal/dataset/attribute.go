package dataset

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Reserved attribute names.
const (
	AttrFillValue    = "_FillValue"
	AttrMissingValue = "missing_value"
	AttrLongName     = "long_name"
	AttrUnits        = "units"
)

// Kind tags the type of an attribute value.
type Kind int

const (
	KindNumber Kind = iota
	KindNumbers
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindNumbers:
		return "numbers"
	default:
		return "string"
	}
}

// Value is a tagged attribute value.
type Value struct {
	Kind Kind
	Num  float64
	Nums []float64
	Str  string
}

// Interface returns the value in a form suitable for JSON encoding.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindNumbers:
		return v.Nums
	default:
		return v.Str
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindNumbers:
		parts := make([]string, len(v.Nums))
		for i, n := range v.Nums {
			parts[i] = strconv.FormatFloat(n, 'g', -1, 64)
		}
		return strings.Join(parts, ", ")
	default:
		return v.Str
	}
}

// Attribute is a named value attached to a file or a variable.
type Attribute struct {
	Name  string
	Value Value
}

// Attributes is an insertion-ordered attribute map.
type Attributes struct {
	keys  []string
	items map[string]Attribute
}

// NewAttributes builds an ordered map from attrs; later duplicates replace
// earlier ones but keep the original position.
func NewAttributes(attrs ...Attribute) Attributes {
	a := Attributes{items: make(map[string]Attribute, len(attrs))}
	for _, at := range attrs {
		a.add(at)
	}
	return a
}

func (a *Attributes) add(at Attribute) {
	if a.items == nil {
		a.items = make(map[string]Attribute)
	}
	if _, ok := a.items[at.Name]; !ok {
		a.keys = append(a.keys, at.Name)
	}
	a.items[at.Name] = at
}

func (a Attributes) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

func (a Attributes) Len() int { return len(a.keys) }

func (a Attributes) Get(name string) (Attribute, bool) {
	at, ok := a.items[name]
	return at, ok
}

// Number returns the named attribute as a scalar. A one-element numeric list
// counts as a scalar.
func (a Attributes) Number(name string) (float64, bool) {
	at, ok := a.items[name]
	if !ok {
		return 0, false
	}
	switch at.Value.Kind {
	case KindNumber:
		return at.Value.Num, true
	case KindNumbers:
		if len(at.Value.Nums) == 1 {
			return at.Value.Nums[0], true
		}
	}
	return 0, false
}

// Text returns the named attribute when it holds a string.
func (a Attributes) Text(name string) (string, bool) {
	at, ok := a.items[name]
	if !ok || at.Value.Kind != KindString {
		return "", false
	}
	return at.Value.Str, true
}

func (a Attributes) FillValue() (float64, bool)    { return a.Number(AttrFillValue) }
func (a Attributes) MissingValue() (float64, bool) { return a.Number(AttrMissingValue) }
func (a Attributes) LongName() (string, bool)      { return a.Text(AttrLongName) }
func (a Attributes) Units() (string, bool)         { return a.Text(AttrUnits) }

// Map returns the attributes keyed by name for encoding.
func (a Attributes) Map() map[string]any {
	out := make(map[string]any, len(a.keys))
	for _, k := range a.keys {
		out[k] = a.items[k].Value.Interface()
	}
	return out
}

// attributeMap is the subset of the reader's attribute map used here.
type attributeMap interface {
	Keys() []string
	Get(key string) (any, bool)
}

func convertAttributes(am attributeMap) Attributes {
	a := Attributes{items: make(map[string]Attribute)}
	if am == nil {
		return a
	}
	for _, k := range am.Keys() {
		raw, ok := am.Get(k)
		if !ok {
			continue
		}
		a.add(Attribute{Name: k, Value: convertValue(raw)})
	}
	return a
}

func convertValue(raw any) Value {
	if s, ok := raw.(string); ok {
		return Value{Kind: KindString, Str: s}
	}
	rv := reflect.ValueOf(raw)
	if n, ok := toFloat(rv); ok {
		return Value{Kind: KindNumber, Num: n}
	}
	if rv.Kind() == reflect.Slice {
		if rv.Type().Elem().Kind() == reflect.String {
			parts := make([]string, rv.Len())
			for i := range parts {
				parts[i] = rv.Index(i).String()
			}
			return Value{Kind: KindString, Str: strings.Join(parts, ", ")}
		}
		nums := make([]float64, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			n, ok := toFloat(rv.Index(i))
			if !ok {
				return Value{Kind: KindString, Str: reflectString(rv)}
			}
			nums = append(nums, n)
		}
		return Value{Kind: KindNumbers, Nums: nums}
	}
	return Value{Kind: KindString, Str: reflectString(rv)}
}

func reflectString(rv reflect.Value) string {
	if !rv.IsValid() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
