package blockkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Body is the canonical representation of an entity: an insertion-ordered
// mapping from wire key to value. Replacing an existing key keeps its
// position; deleting and re-adding a key appends it.
//
// Values are strings, bools, ints, entities, nested bodies, or slices of
// those. A built Body (see Build) holds only plain data.
type Body struct {
	keys   []string
	values map[string]any
}

// NewBody returns an empty body.
func NewBody() *Body {
	return &Body{values: make(map[string]any)}
}

func (b *Body) set(key string, value any) {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

func (b *Body) del(key string) {
	if _, exists := b.values[key]; !exists {
		return
	}
	delete(b.values, key)
	b.keys = slices.DeleteFunc(b.keys, func(k string) bool { return k == key })
}

// replace swaps key from for key to at the same position. A missing from key
// appends to.
func (b *Body) replace(from, to string, value any) {
	i := slices.Index(b.keys, from)
	if i < 0 || from == to {
		b.set(to, value)
		return
	}
	b.del(to)
	i = slices.Index(b.keys, from)
	delete(b.values, from)
	b.keys[i] = to
	b.values[to] = value
}

// Get returns the value stored under key.
func (b *Body) Get(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Has reports whether key is present.
func (b *Body) Has(key string) bool {
	_, ok := b.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (b *Body) Keys() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.keys)
}

// Len returns the number of keys.
func (b *Body) Len() int {
	if b == nil {
		return 0
	}
	return len(b.keys)
}

// Range calls fn for each key in order until fn returns false.
func (b *Body) Range(fn func(key string, value any) bool) {
	if b == nil {
		return
	}
	for _, key := range b.keys {
		if !fn(key, b.values[key]) {
			return
		}
	}
}

// Map converts a body into unordered plain data: nested bodies become
// map[string]any and slices become []any. Entities are lowered first.
func (b *Body) Map() map[string]any {
	out := make(map[string]any, b.Len())
	b.Range(func(key string, value any) bool {
		out[key] = toPlain(Lower(value))
		return true
	})
	return out
}

func toPlain(value any) any {
	switch v := value.(type) {
	case *Body:
		return v.Map()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = toPlain(item)
		}
		return out
	default:
		return v
	}
}

// shallow copies the key order and values without copying nested values.
func (b *Body) shallow() *Body {
	out := NewBody()
	b.Range(func(key string, value any) bool {
		out.set(key, value)
		return true
	})
	return out
}

// clone copies the body. Nested bodies and slices are copied, nested entities
// are deep-copied.
func (b *Body) clone() *Body {
	if b == nil {
		return nil
	}
	out := &Body{keys: slices.Clone(b.keys), values: make(map[string]any, len(b.values))}
	for key, value := range b.values {
		out.values[key] = cloneValue(value)
	}
	return out
}

// Equal reports key-by-key equality of two built bodies. Key order is not
// significant.
func (b *Body) Equal(other *Body) bool {
	if b.Len() != other.Len() {
		return false
	}
	equal := true
	b.Range(func(key string, value any) bool {
		ov, ok := other.Get(key)
		if !ok || !equalValue(Lower(value), Lower(ov)) {
			equal = false
		}
		return equal
	})
	return equal
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case *Body:
		bv, ok := b.(*Body)
		return ok && av.Equal(bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		switch b.(type) {
		case *Body, []any:
			return false
		}
		return a == b
	}
}

// MarshalJSON encodes the body as a JSON object preserving key order.
func (b *Body) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	b.Range(func(key string, value any) bool {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		var raw []byte
		if raw, err = json.Marshal(key); err != nil {
			return false
		}
		buf.Write(raw)
		buf.WriteByte(':')
		if raw, err = json.Marshal(Lower(value)); err != nil {
			err = fmt.Errorf("blockkit: marshal %q: %w", key, err)
			return false
		}
		buf.Write(raw)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the body as a YAML mapping preserving key order.
func (b *Body) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var err error
	b.Range(func(key string, value any) bool {
		valueNode := &yaml.Node{}
		if err = valueNode.Encode(Lower(value)); err != nil {
			err = fmt.Errorf("blockkit: marshal %q: %w", key, err)
			return false
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
