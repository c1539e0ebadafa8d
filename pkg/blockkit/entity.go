package blockkit

import (
	"encoding/json"
	"reflect"
)

// Entity is implemented by every modelled Block Kit object. The interface is
// sealed: only types in this package embed the base that satisfies it.
type Entity interface {
	// Kind is the stable schema name of the concrete type ("button",
	// "section", "static_select" for both select variants, ...).
	Kind() string
	// Body returns a copy of the canonical representation. Nested entities
	// are copies too, so editing them never reaches the receiver.
	Body() *Body
	// Build lowers the entity into plain data. See Build.
	Build() *Body

	entity() *base
}

// base carries the canonical body plus values retained for an inactive
// variant (never serialised). All mutable state of an entity lives here so
// copies and equality can be implemented once.
type base struct {
	kind     string
	body     *Body
	retained map[string]any
}

func newBase(kind string) base {
	return base{kind: kind, body: NewBody()}
}

func (b *base) entity() *base { return b }

// Kind implements Entity.
func (b *base) Kind() string { return b.kind }

// Body implements Entity.
func (b *base) Body() *Body {
	return b.body.clone()
}

// Build implements Entity.
func (b *base) Build() *Body {
	return lowerBody(b.body)
}

// MarshalJSON encodes the built body.
func (b *base) MarshalJSON() ([]byte, error) {
	return b.Build().MarshalJSON()
}

// MarshalYAML encodes the built body.
func (b *base) MarshalYAML() (any, error) {
	return b.Build().MarshalYAML()
}

// store writes a private copy of value under key. An entity owns its
// children: mutating a child after handing it over leaves the parent as it
// was checked.
func (b *base) store(key string, value any) {
	b.body.set(key, cloneValue(value))
}

func (b *base) retain(key string, value any) {
	if b.retained == nil {
		b.retained = make(map[string]any)
	}
	b.retained[key] = value
}

func (b *base) recall(key string) (any, bool) {
	v, ok := b.retained[key]
	return v, ok
}

// Build returns e's canonical body with every nested entity, body and slice
// recursively replaced by plain data. The entity is not modified, and building
// already-built data yields an equal copy.
func Build(e Entity) *Body {
	if e == nil || reflect.ValueOf(e).IsNil() {
		return nil
	}
	return e.Build()
}

// Lower converts a single value into plain data: entities are built, bodies
// are copied with lowered values and slices of any element type become []any.
func Lower(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Entity:
		if reflect.ValueOf(v).IsNil() {
			return nil
		}
		return v.Build()
	case *Body:
		return lowerBody(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Lower(item)
		}
		return out
	case string, bool, int, int64, float64:
		return v
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice {
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Lower(rv.Index(i).Interface())
		}
		return out
	}
	return value
}

func lowerBody(b *Body) *Body {
	if b == nil {
		return nil
	}
	out := NewBody()
	b.Range(func(key string, value any) bool {
		out.set(key, Lower(value))
		return true
	})
	return out
}

// Equal reports structural equality: a and b are the same concrete type and
// their built bodies are equal key by key. Identity is irrelevant.
func Equal(a, b Entity) bool {
	aNil := a == nil || reflect.ValueOf(a).IsNil()
	bNil := b == nil || reflect.ValueOf(b).IsNil()
	if aNil || bNil {
		return aNil == bNil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.Build().Equal(b.Build())
}

// Clone returns a deep copy of e. Nested entities are copied too, so
// mutating the copy never affects the original.
func Clone[T Entity](e T) T {
	if reflect.ValueOf(e).IsNil() {
		return e
	}
	return cloneEntity(e).(T)
}

func cloneEntity(e Entity) Entity {
	rv := reflect.ValueOf(e)
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	out := cp.Interface().(Entity)

	src, dst := e.entity(), out.entity()
	dst.body = src.body.clone()
	if src.retained != nil {
		dst.retained = make(map[string]any, len(src.retained))
		for key, value := range src.retained {
			dst.retained[key] = cloneValue(value)
		}
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case Entity:
		if reflect.ValueOf(v).IsNil() {
			return v
		}
		return cloneEntity(v)
	case *Body:
		return v.clone()
	case string, bool, int, int64, float64:
		return v
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return value
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := cloneValue(rv.Index(i).Interface())
		if item != nil {
			out.Index(i).Set(reflect.ValueOf(item))
		}
	}
	return out.Interface()
}

// field reads a copy of key from e's body as a T.
func field[T any](b *base, key string) (T, bool) {
	var zero T
	v, ok := b.body.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := cloneValue(v).(T)
	return t, ok
}

func stringField(b *base, key string) string {
	s, _ := field[string](b, key)
	return s
}

func boolField(b *base, key string) bool {
	v, _ := field[bool](b, key)
	return v
}

// MarshalIndent is a convenience wrapper producing indented wire JSON for any
// entity.
func MarshalIndent(e Entity, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(Build(e), prefix, indent)
}
