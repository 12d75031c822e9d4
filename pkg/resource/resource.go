package resource

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// Resource is an instance of a declared resource type. It keeps the raw
// wire-cased object it was built from and a domain-cased working copy in which
// every declared nested attribute holds *Resource values.
type Resource struct {
	registry *Registry
	typeName string
	raw      map[string]any
	data     map[string]any
}

// New builds an instance of typeName from a wire-cased JSON object. Keys are
// converted to domain case; declared nested attributes are instantiated
// recursively, everything else is stored unchanged.
func (r *Registry) New(typeName string, raw map[string]any) (*Resource, error) {
	if !r.Has(typeName) {
		return nil, fmt.Errorf("%w: %q is not declared", ErrInvalidResourceType, typeName)
	}

	if raw == nil {
		raw = map[string]any{}
	}

	res := &Resource{
		registry: r,
		typeName: typeName,
		raw:      raw,
		data:     make(map[string]any, len(raw)),
	}

	for key, value := range raw {
		name := ToDomainCase(key)

		decl, ok := r.Lookup(typeName, name)
		if !ok || !decl.Type.IsNested() || value == nil {
			res.data[name] = value

			continue
		}

		nested, err := r.nestedValue(decl, value)
		if err != nil {
			return nil, fmt.Errorf("building %s.%s: %w", typeName, name, err)
		}

		res.data[name] = nested
	}

	return res, nil
}

// nestedValue converts value into the instance form required by decl:
// *Resource for a resource reference, []*Resource for an array.
func (r *Registry) nestedValue(decl Attribute, value any) (any, error) {
	target := decl.Type.ResourceType()

	if !decl.Type.IsArray() {
		return r.single(target, decl.Type, value)
	}

	switch items := value.(type) {
	case []*Resource:
		for i, item := range items {
			if item == nil || item.typeName != target {
				return nil, fmt.Errorf("%w: element %d of %s", ErrInvalidAttributeValue, i, decl.Type)
			}
		}

		return items, nil
	case []map[string]any:
		out := make([]*Resource, 0, len(items))

		for _, item := range items {
			child, err := r.New(target, item)
			if err != nil {
				return nil, err
			}

			out = append(out, child)
		}

		return out, nil
	case []any:
		out := make([]*Resource, 0, len(items))

		for i, item := range items {
			child, err := r.single(target, decl.Type, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}

			out = append(out, child)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: declared %s, received %T", ErrInvalidAttributeValue, decl.Type, value)
	}
}

func (r *Registry) single(target string, declared ValueType, value any) (*Resource, error) {
	switch v := value.(type) {
	case *Resource:
		if v == nil || v.typeName != target {
			return nil, fmt.Errorf("%w: declared %s, received %T", ErrInvalidAttributeValue, declared, value)
		}

		return v, nil
	case map[string]any:
		return r.New(target, v)
	default:
		return nil, fmt.Errorf("%w: declared %s, received %T", ErrInvalidAttributeValue, declared, value)
	}
}

// Type returns the resource type name.
func (r *Resource) Type() string {
	return r.typeName
}

// Raw returns the object the instance was built from.
func (r *Resource) Raw() map[string]any {
	return r.raw
}

// Keys returns the domain-cased keys currently held, sorted.
func (r *Resource) Keys() []string {
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Get returns the normalized value of attr. The second result is false when
// the attribute is absent or null.
func (r *Resource) Get(attr string) (any, bool) {
	v, ok := r.data[attr]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

// Set writes attr. Read-only attributes can be written only while they have
// no value; undeclared attributes are rejected.
func (r *Resource) Set(attr string, value any) error {
	decl, ok := r.registry.Lookup(r.typeName, attr)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, r.typeName, attr)
	}

	if decl.ReadOnly {
		if _, present := r.Get(attr); present {
			return fmt.Errorf("%w: %s.%s", ErrReadOnlyAttribute, r.typeName, attr)
		}
	}

	if decl.Type.IsNested() && value != nil {
		nested, err := r.registry.nestedValue(decl, value)
		if err != nil {
			return fmt.Errorf("setting %s.%s: %w", r.typeName, attr, err)
		}

		value = nested
	}

	r.data[attr] = value

	return nil
}

// ToWireJSON renders the instance as a wire-cased object, serializing nested
// instances recursively.
func (r *Resource) ToWireJSON() map[string]any {
	out := make(map[string]any, len(r.data))
	for k, v := range r.data {
		out[ToWireCase(k)] = wireValue(v)
	}

	return out
}

func wireValue(v any) any {
	switch val := v.(type) {
	case *Resource:
		if val == nil {
			return nil
		}

		return val.ToWireJSON()
	case []*Resource:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, wireValue(item))
		}

		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, wireValue(item))
		}

		return out
	default:
		return v
	}
}

// MarshalJSON implements json.Marshaler using the wire representation.
func (r *Resource) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.ToWireJSON())
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", r.typeName, err)
	}

	return data, nil
}

// GetInt returns attr coerced to an int.
func (r *Resource) GetInt(attr string) (int, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return 0, false
	}

	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}

	return i, true
}

// GetString returns attr coerced to a string.
func (r *Resource) GetString(attr string) (string, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return "", false
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}

	return s, true
}

// GetBool returns attr coerced to a bool.
func (r *Resource) GetBool(attr string) (bool, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return false, false
	}

	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}

	return b, true
}

// GetTime returns a datetime attribute. The API is loose about date formats, so
// strings are parsed with dateparse.
func (r *Resource) GetTime(attr string) (time.Time, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return time.Time{}, false
	}

	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := dateparse.ParseAny(t)
		if err != nil {
			return time.Time{}, false
		}

		return parsed, true
	default:
		return time.Time{}, false
	}
}

// Nested returns a single nested instance.
func (r *Resource) Nested(attr string) (*Resource, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return nil, false
	}

	res, ok := v.(*Resource)

	return res, ok
}

// NestedList returns an array of nested instances.
func (r *Resource) NestedList(attr string) ([]*Resource, bool) {
	v, ok := r.Get(attr)
	if !ok {
		return nil, false
	}

	list, ok := v.([]*Resource)

	return list, ok
}

// Decode copies the domain-cased data into out, which must be a pointer to a
// struct or map. Struct fields are matched by their mapstructure tag.
func (r *Resource) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(resourceHook, timeHook),
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	err = decoder.Decode(r.data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", r.typeName, err)
	}

	return nil
}

func resourceHook(_ reflect.Type, _ reflect.Type, data any) (any, error) {
	switch v := data.(type) {
	case *Resource:
		if v == nil {
			return nil, nil
		}

		return v.data, nil
	case []*Resource:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			out = append(out, item.data)
		}

		return out, nil
	default:
		return data, nil
	}
}

func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}

	s, _ := data.(string)
	if s == "" {
		return time.Time{}, nil
	}

	return dateparse.ParseAny(s)
}
