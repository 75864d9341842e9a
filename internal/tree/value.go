package tree

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	Null Kind = iota
	Scalar
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is one node of a configuration document.
type Value struct {
	kind   Kind
	scalar any
	items  []*Value
	keys   []string
	fields map[string]*Value
}

// NewObject returns an empty object node.
func NewObject() *Value {
	return &Value{kind: Object, fields: map[string]*Value{}}
}

// NewArray returns an array node holding items.
func NewArray(items ...*Value) *Value {
	return &Value{kind: Array, items: items}
}

// NewScalar wraps a string, bool, or number.
func NewScalar(v any) *Value {
	if v == nil {
		return &Value{kind: Null}
	}
	return &Value{kind: Scalar, scalar: v}
}

// String is shorthand for NewScalar(s).
func String(s string) *Value { return NewScalar(s) }

// FromAny converts a decoded YAML or JSON document into a Value.
func FromAny(v any) (*Value, error) {
	switch x := v.(type) {
	case nil:
		return &Value{kind: Null}, nil
	case map[string]any:
		obj := NewObject()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			obj.put(k, child)
		}
		return obj, nil
	case []any:
		arr := NewArray()
		for i, item := range x {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr.items = append(arr.items, child)
		}
		return arr, nil
	case []string:
		arr := NewArray()
		for _, s := range x {
			arr.items = append(arr.items, String(s))
		}
		return arr, nil
	case string, bool, int, int64, uint64, float64, json.Number:
		return NewScalar(x), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// Kind reports the node variant. A nil *Value is Null.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

// Scalar returns the wrapped scalar, or nil for non-scalars.
func (v *Value) Scalar() any {
	if v.Kind() != Scalar {
		return nil
	}
	return v.scalar
}

// Items returns the elements of an array node.
func (v *Value) Items() []*Value {
	if v.Kind() != Array {
		return nil
	}
	return v.items
}

// Keys returns the object keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != Object {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Field returns the child stored under key.
func (v *Value) Field(key string) (*Value, bool) {
	if v.Kind() != Object {
		return nil, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Get walks p from v.
func (v *Value) Get(p Path) (*Value, bool) {
	cur := v
	for _, seg := range p {
		next, ok := cur.Field(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Set stores x at p, creating intermediate objects. An intermediate node that
// exists but is not an object is replaced by a new object.
func (v *Value) Set(p Path, x *Value) error {
	if v.Kind() != Object {
		return fmt.Errorf("set %s: root is %s, not object", p, v.Kind())
	}
	if len(p) == 0 {
		return fmt.Errorf("set: empty path")
	}
	cur := v
	for _, seg := range p[:len(p)-1] {
		next, ok := cur.fields[seg]
		if !ok || next.Kind() != Object {
			next = NewObject()
			cur.put(seg, next)
		}
		cur = next
	}
	cur.put(p[len(p)-1], x)
	return nil
}

func (v *Value) put(key string, x *Value) {
	if _, exists := v.fields[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = x
}

// Clone returns a deep copy.
func (v *Value) Clone() *Value {
	switch v.Kind() {
	case Object:
		out := NewObject()
		for _, k := range v.keys {
			out.put(k, v.fields[k].Clone())
		}
		return out
	case Array:
		out := NewArray()
		for _, item := range v.items {
			out.items = append(out.items, item.Clone())
		}
		return out
	case Scalar:
		return NewScalar(v.scalar)
	default:
		return &Value{kind: Null}
	}
}

// Interface converts v back to plain Go values (map[string]any, []any,
// scalars, nil) suitable for encoding/json.
func (v *Value) Interface() any {
	switch v.Kind() {
	case Object:
		m := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			m[k] = v.fields[k].Interface()
		}
		return m
	case Array:
		a := make([]any, len(v.items))
		for i, item := range v.items {
			a[i] = item.Interface()
		}
		return a
	case Scalar:
		return v.scalar
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}
