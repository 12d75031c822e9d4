package resource_test

import (
	"testing"

	"github.com/fivetwenty-io/clientsuccess/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Declare(t *testing.T) {
	t.Parallel()

	t.Run("accepts primitives, references and arrays of references", func(t *testing.T) {
		t.Parallel()

		reg := resource.NewRegistry()
		err := reg.Declare("Widget", false,
			resource.Attr("count", resource.Int),
			resource.Attr("label", resource.String),
			resource.Attr("made_at", resource.DateTime),
			resource.Attr("enabled", resource.Boolean),
			resource.Attr("parent", resource.ResourceOf("Widget")),
			resource.Attr("parts", resource.ArrayOf(resource.ResourceOf("Part"))),
		)
		require.NoError(t, err)

		assert.True(t, reg.Has("Widget"))
		assert.False(t, reg.Has("Part"), "references are resolved lazily")
		assert.True(t, reg.IsNested("Widget", "parent"))
		assert.True(t, reg.IsNested("Widget", "parts"))
		assert.False(t, reg.IsNested("Widget", "count"))
		assert.False(t, reg.IsNested("Widget", "missing"))
	})

	t.Run("rejects arrays of arrays", func(t *testing.T) {
		t.Parallel()

		reg := resource.NewRegistry()
		err := reg.Declare("Widget", false,
			resource.Attr("grid", resource.ArrayOf(resource.ArrayOf(resource.ResourceOf("Part")))),
		)
		require.ErrorIs(t, err, resource.ErrInvalidResourceType)
		assert.False(t, reg.Has("Widget"))
	})

	t.Run("rejects arrays of primitives", func(t *testing.T) {
		t.Parallel()

		reg := resource.NewRegistry()
		err := reg.Declare("Widget", false, resource.Attr("tags", resource.ArrayOf(resource.String)))
		require.ErrorIs(t, err, resource.ErrInvalidResourceType)
	})

	t.Run("rejects zero value types and empty references", func(t *testing.T) {
		t.Parallel()

		reg := resource.NewRegistry()
		err := reg.Declare("Widget", false,
			resource.Attr("mystery", resource.ValueType{}),
			resource.Attr("owner", resource.ResourceOf("")),
		)
		require.ErrorIs(t, err, resource.ErrInvalidResourceType)
		assert.Contains(t, err.Error(), "mystery")
		assert.Contains(t, err.Error(), "owner")
	})

	t.Run("rejects empty type name", func(t *testing.T) {
		t.Parallel()

		err := resource.NewRegistry().Declare("", false, resource.Attr("id", resource.Int))
		require.ErrorIs(t, err, resource.ErrInvalidResourceType)
	})

	t.Run("merges repeated declarations in order", func(t *testing.T) {
		t.Parallel()

		reg := resource.NewRegistry()
		reg.MustDeclare("Widget", true, resource.Attr("id", resource.Int))
		reg.MustDeclare("Widget", false,
			resource.Attr("name", resource.String),
			resource.Attr("size", resource.Int),
		)

		schema, ok := reg.Schema("Widget")
		require.True(t, ok)

		attrs := schema.Attributes()
		require.Len(t, attrs, 3)
		assert.Equal(t, "id", attrs[0].Name)
		assert.True(t, attrs[0].ReadOnly)
		assert.Equal(t, "name", attrs[1].Name)
		assert.False(t, attrs[1].ReadOnly)

		decl, ok := reg.Lookup("Widget", "size")
		require.True(t, ok)
		assert.Equal(t, resource.KindInt, decl.Type.Kind())
	})

	t.Run("MustDeclare panics on invalid declarations", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			resource.NewRegistry().MustDeclare("Widget", false, resource.Attr("bad", resource.ValueType{}))
		})
	})
}

func TestValueType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "int", resource.Int.String())
	assert.Equal(t, "datetime", resource.DateTime.String())
	assert.Equal(t, "Contact", resource.ResourceOf("Contact").String())
	assert.Equal(t, "[]Contact", resource.ArrayOf(resource.ResourceOf("Contact")).String())
	assert.Equal(t, "Contact", resource.ArrayOf(resource.ResourceOf("Contact")).ResourceType())
	assert.Empty(t, resource.Boolean.ResourceType())
}
