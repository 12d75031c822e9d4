package resource

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Kind classifies a declared attribute value type.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt
	KindString
	KindDateTime
	KindBoolean
	KindResource
	KindArray
)

// String returns the declaration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindBoolean:
		return "boolean"
	case KindResource:
		return "resource"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// ValueType is the declared type of an attribute: a primitive, a reference to
// another resource type, or a single-level array of resource references.
type ValueType struct {
	kind     Kind
	resource string
	elem     *ValueType
}

// Primitive value types.
var (
	Int      = ValueType{kind: KindInt}
	String   = ValueType{kind: KindString}
	DateTime = ValueType{kind: KindDateTime}
	Boolean  = ValueType{kind: KindBoolean}
)

// ResourceOf references another resource type by name. The name is resolved
// when an instance is built, so forward and circular references are fine.
func ResourceOf(typeName string) ValueType {
	return ValueType{kind: KindResource, resource: typeName}
}

// ArrayOf declares an ordered list of elem. Only resource references are
// accepted as elements; anything else is rejected by Registry.Declare.
func ArrayOf(elem ValueType) ValueType {
	return ValueType{kind: KindArray, elem: &elem}
}

// Kind returns the kind of the value type.
func (v ValueType) Kind() Kind {
	return v.kind
}

// ResourceType returns the referenced resource type name for resource and
// array-of-resource types, or "" for primitives.
func (v ValueType) ResourceType() string {
	switch v.kind {
	case KindResource:
		return v.resource
	case KindArray:
		if v.elem != nil {
			return v.elem.ResourceType()
		}
	}

	return ""
}

// IsNested reports whether values of this type are resource instances.
func (v ValueType) IsNested() bool {
	return v.kind == KindResource || v.kind == KindArray
}

// IsArray reports whether the type is an array of resources.
func (v ValueType) IsArray() bool {
	return v.kind == KindArray
}

func (v ValueType) String() string {
	switch v.kind {
	case KindResource:
		return v.resource
	case KindArray:
		if v.elem == nil {
			return "[]"
		}

		return "[]" + v.elem.String()
	default:
		return v.kind.String()
	}
}

func (v ValueType) validate() error {
	switch v.kind {
	case KindInt, KindString, KindDateTime, KindBoolean:
		return nil
	case KindResource:
		if v.resource == "" {
			return fmt.Errorf("%w: empty resource reference", ErrInvalidResourceType)
		}

		return nil
	case KindArray:
		if v.elem == nil {
			return fmt.Errorf("%w: array without element type", ErrInvalidResourceType)
		}

		if v.elem.kind == KindArray {
			return fmt.Errorf("%w: arrays of arrays are not supported", ErrInvalidResourceType)
		}

		if v.elem.kind != KindResource {
			return fmt.Errorf("%w: array elements must be resources, got %s", ErrInvalidResourceType, v.elem)
		}

		return v.elem.validate()
	default:
		return fmt.Errorf("%w: %s", ErrInvalidResourceType, v)
	}
}

// Attribute is a single declared attribute of a resource type.
type Attribute struct {
	Name     string
	Type     ValueType
	ReadOnly bool
}

// Attr builds an attribute declaration. Read-only is set by Declare.
func Attr(name string, valueType ValueType) Attribute {
	return Attribute{Name: name, Type: valueType}
}

// Schema is the ordered attribute set declared for one resource type.
type Schema struct {
	name  string
	order []string
	attrs map[string]Attribute
}

func newSchema(name string) *Schema {
	return &Schema{name: name, attrs: make(map[string]Attribute)}
}

// Name returns the resource type name.
func (s *Schema) Name() string {
	return s.name
}

// Attributes returns the declarations in declaration order.
func (s *Schema) Attributes() []Attribute {
	out := make([]Attribute, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.attrs[name])
	}

	return out
}

// Lookup returns the declaration for name.
func (s *Schema) Lookup(name string) (Attribute, bool) {
	attr, ok := s.attrs[name]

	return attr, ok
}

func (s *Schema) clone() *Schema {
	out := &Schema{
		name:  s.name,
		order: append([]string(nil), s.order...),
		attrs: make(map[string]Attribute, len(s.attrs)),
	}
	for k, v := range s.attrs {
		out.attrs[k] = v
	}

	return out
}

// Registry holds the schemas of a family of resource types. Schemas should be
// fully declared before the first instance of a type is built.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Declare registers attrs for typeName. Repeated calls merge; a redeclared
// attribute keeps its original position. All invalid declarations are
// reported and nothing is registered when any of them fails.
func (r *Registry) Declare(typeName string, readOnly bool, attrs ...Attribute) error {
	if typeName == "" {
		return fmt.Errorf("%w: resource type name is required", ErrInvalidResourceType)
	}

	var result *multierror.Error

	for _, attr := range attrs {
		if attr.Name == "" {
			result = multierror.Append(result,
				fmt.Errorf("%w: attribute name is required on %s", ErrInvalidResourceType, typeName))

			continue
		}

		err := attr.Type.validate()
		if err != nil {
			result = multierror.Append(result,
				fmt.Errorf("declared type %q for attribute %q is invalid: %w", attr.Type, attr.Name, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	schema, ok := r.schemas[typeName]
	if !ok {
		schema = newSchema(typeName)
		r.schemas[typeName] = schema
	}

	for _, attr := range attrs {
		attr.ReadOnly = readOnly
		if _, exists := schema.attrs[attr.Name]; !exists {
			schema.order = append(schema.order, attr.Name)
		}

		schema.attrs[attr.Name] = attr
	}

	return nil
}

// MustDeclare is Declare for package-level schema setup; it panics on error.
func (r *Registry) MustDeclare(typeName string, readOnly bool, attrs ...Attribute) {
	err := r.Declare(typeName, readOnly, attrs...)
	if err != nil {
		panic(err)
	}
}

// Schema returns a snapshot of the schema declared for typeName.
func (r *Registry) Schema(typeName string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[typeName]
	if !ok {
		return nil, false
	}

	return schema.clone(), true
}

// Has reports whether typeName has been declared.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[typeName]

	return ok
}

// Lookup returns the declaration of attr on typeName.
func (r *Registry) Lookup(typeName, attr string) (Attribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[typeName]
	if !ok {
		return Attribute{}, false
	}

	return schema.Lookup(attr)
}

// IsNested reports whether attr on typeName holds resource instances.
func (r *Registry) IsNested(typeName, attr string) bool {
	decl, ok := r.Lookup(typeName, attr)

	return ok && decl.Type.IsNested()
}
