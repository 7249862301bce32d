package justify

import (
	"math/big"
	"sort"

	"github.com/letui/justify/event"
)

// Value is a materialized JSON value, reconstructed from a bounded run of
// events. The keywords that need whole-value structural comparison
// (const, enum, uniqueItems) build it only for the subtree they compare;
// ReadValue is the one caller that builds it for an entire instance.
type Value struct {
	Kind   event.Kind
	Str    string
	Num    *big.Rat
	Array  []*Value
	Object map[string]*Value
	// Keys preserves insertion order for values built from events, and
	// holds sorted keys for values built by valueFromRaw; Object alone (a
	// Go map) has no order.
	Keys []string
}

// valueBuilder incrementally reconstructs a single Value from a push-style
// sequence of events fed one at a time through feed, which is what the
// const/enum/uniqueItems evaluators are restricted to: they
// cannot pull ahead in the stream, only accumulate what the engine has
// already handed them. feed returns the completed root once the value it
// started on has fully closed.
type valueBuilder struct {
	stack []*Value
	keys  []string
	root  *Value
	done  bool
}

// feed consumes one event and returns the completed Value once the value
// being built has closed; otherwise it returns nil.
func (vb *valueBuilder) feed(ev event.Event) *Value {
	if vb.done {
		return vb.root
	}
	switch ev.Kind {
	case event.KeyName:
		vb.keys = append(vb.keys, ev.Key)
		return nil
	case event.StartObject:
		v := &Value{Kind: event.StartObject, Object: make(map[string]*Value)}
		vb.attach(v)
		vb.stack = append(vb.stack, v)
		return nil
	case event.StartArray:
		v := &Value{Kind: event.StartArray}
		vb.attach(v)
		vb.stack = append(vb.stack, v)
		return nil
	case event.EndObject, event.EndArray:
		v := vb.stack[len(vb.stack)-1]
		vb.stack = vb.stack[:len(vb.stack)-1]
		if len(vb.stack) == 0 {
			vb.root = v
			vb.done = true
			return v
		}
		return nil
	}

	var leaf *Value
	switch ev.Kind {
	case event.ValueString:
		leaf = &Value{Kind: ev.Kind, Str: ev.Str}
	case event.ValueNumber:
		leaf = &Value{Kind: ev.Kind, Num: ev.Num}
	default: // VALUE_TRUE, VALUE_FALSE, VALUE_NULL
		leaf = &Value{Kind: ev.Kind}
	}
	if len(vb.stack) == 0 {
		vb.root = leaf
		vb.done = true
		return leaf
	}
	vb.attach(leaf)
	return nil
}

func (vb *valueBuilder) attach(v *Value) {
	if len(vb.stack) == 0 {
		return
	}
	parent := vb.stack[len(vb.stack)-1]
	if parent.Kind == event.StartObject {
		key := vb.keys[len(vb.keys)-1]
		vb.keys = vb.keys[:len(vb.keys)-1]
		if _, exists := parent.Object[key]; !exists {
			parent.Keys = append(parent.Keys, key)
		}
		parent.Object[key] = v
	} else {
		parent.Array = append(parent.Array, v)
	}
}

// valuesEqual implements structural equality with number canonicalization:
// 1 == 1.0 == 1e0, object key order is irrelevant, array order matters.
func valuesEqual(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	ak, bk := a.Kind, b.Kind
	if ak != bk {
		return false
	}
	switch ak {
	case event.ValueString:
		return a.Str == b.Str
	case event.ValueNumber:
		return a.Num.Cmp(b.Num) == 0
	case event.ValueTrue, event.ValueFalse, event.ValueNull:
		return true
	case event.StartArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !valuesEqual(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case event.StartObject:
		if len(a.Object) != len(b.Object) {
			return false
		}
		for k, av := range a.Object {
			bv, ok := b.Object[k]
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// valueFromRaw converts a schema document's raw decoded literal (as
// produced by the JSON decoder used at compile time) into a Value, for
// "const" and "enum", which compare a fixed document literal against a
// streamed instance reconstructed by valueBuilder.
func valueFromRaw(raw interface{}) (*Value, error) {
	switch v := raw.(type) {
	case nil:
		return &Value{Kind: event.ValueNull}, nil
	case bool:
		if v {
			return &Value{Kind: event.ValueTrue}, nil
		}
		return &Value{Kind: event.ValueFalse}, nil
	case string:
		return &Value{Kind: event.ValueString, Str: v}, nil
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		n, err := numberFromRaw(v)
		if err != nil {
			return nil, err
		}
		return &Value{Kind: event.ValueNumber, Num: n}, nil
	case []interface{}:
		arr := make([]*Value, len(v))
		for i, item := range v {
			sub, err := valueFromRaw(item)
			if err != nil {
				return nil, err
			}
			arr[i] = sub
		}
		return &Value{Kind: event.StartArray, Array: arr}, nil
	case map[string]interface{}:
		obj := make(map[string]*Value, len(v))
		keys := make([]string, 0, len(v))
		for k, item := range v {
			sub, err := valueFromRaw(item)
			if err != nil {
				return nil, err
			}
			obj[k] = sub
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return &Value{Kind: event.StartObject, Object: obj, Keys: keys}, nil
	default:
		return nil, ErrUnsupportedTypeForRat
	}
}

// sortedKeys returns an object Value's keys in sorted order, used where a
// stable key ordering is needed for diagnostics.
func sortedKeys(v *Value) []string {
	keys := make([]string, 0, len(v.Object))
	for k := range v.Object {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
