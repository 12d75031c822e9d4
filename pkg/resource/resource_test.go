package resource_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fivetwenty-io/clientsuccess/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *resource.Registry {
	t.Helper()

	reg := resource.NewRegistry()
	reg.MustDeclare("Account", true, resource.Attr("id", resource.Int))
	reg.MustDeclare("Account", false,
		resource.Attr("external_id", resource.String),
		resource.Attr("name", resource.String),
		resource.Attr("active", resource.Boolean),
		resource.Attr("inception_date", resource.DateTime),
		resource.Attr("owner", resource.ResourceOf("Person")),
		resource.Attr("custom_field_values", resource.ArrayOf(resource.ResourceOf("FieldValue"))),
	)
	reg.MustDeclare("FieldValue", true, resource.Attr("id", resource.Int))
	reg.MustDeclare("FieldValue", false,
		resource.Attr("auto_sync", resource.Boolean),
		resource.Attr("value", resource.String),
	)
	reg.MustDeclare("Person", true, resource.Attr("id", resource.Int))
	reg.MustDeclare("Person", false,
		resource.Attr("first_name", resource.String),
		resource.Attr("manager", resource.ResourceOf("Person")),
	)

	return reg
}

func TestNew_NestedInstantiation(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{
		"id": 7,
		"customFieldValues": []any{
			map[string]any{"id": 1, "autoSync": true},
		},
	})
	require.NoError(t, err)

	id, ok := res.GetInt("id")
	require.True(t, ok)
	assert.Equal(t, 7, id)

	values, ok := res.NestedList("custom_field_values")
	require.True(t, ok)
	require.Len(t, values, 1)
	assert.Equal(t, "FieldValue", values[0].Type())

	autoSync, ok := values[0].Get("auto_sync")
	require.True(t, ok)
	assert.Equal(t, true, autoSync)
}

func TestNew_CircularReference(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Person", map[string]any{
		"firstName": "Ada",
		"manager":   map[string]any{"firstName": "Grace", "manager": nil},
	})
	require.NoError(t, err)

	manager, ok := res.Nested("manager")
	require.True(t, ok)

	name, _ := manager.GetString("first_name")
	assert.Equal(t, "Grace", name)

	_, ok = manager.Get("manager")
	assert.False(t, ok)
}

func TestNew_UndeclaredKeysPassThrough(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{
		"tenantId": 12,
		"meta":     map[string]any{"nestedKey": 1},
	})
	require.NoError(t, err)

	tenant, ok := res.Get("tenant_id")
	require.True(t, ok)
	assert.Equal(t, 12, tenant)

	meta, ok := res.Get("meta")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"nestedKey": 1}, meta)
}

func TestNew_InvalidNestedValues(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	_, err := reg.New("Account", map[string]any{"customFieldValues": map[string]any{"id": 1}})
	require.ErrorIs(t, err, resource.ErrInvalidAttributeValue)

	_, err = reg.New("Account", map[string]any{"owner": "someone"})
	require.ErrorIs(t, err, resource.ErrInvalidAttributeValue)

	_, err = reg.New("Account", map[string]any{"customFieldValues": []any{"x"}})
	require.ErrorIs(t, err, resource.ErrInvalidAttributeValue)
}

func TestNew_UnknownTypes(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	_, err := reg.New("Nope", map[string]any{})
	require.ErrorIs(t, err, resource.ErrInvalidResourceType)

	reg.MustDeclare("Dangling", false, resource.Attr("ghost", resource.ResourceOf("Ghost")))

	_, err = reg.New("Dangling", map[string]any{"ghost": map[string]any{}})
	require.ErrorIs(t, err, resource.ErrInvalidResourceType)

	_, err = reg.New("Dangling", map[string]any{})
	require.NoError(t, err, "unresolved references only matter when a value is present")
}

func TestNew_Empty(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	for _, raw := range []map[string]any{{}, nil} {
		res, err := reg.New("Account", raw)
		require.NoError(t, err)

		assert.Empty(t, res.Keys())

		_, ok := res.Get("id")
		assert.False(t, ok)

		_, ok = res.GetInt("id")
		assert.False(t, ok)

		_, ok = res.NestedList("custom_field_values")
		assert.False(t, ok)
		assert.Empty(t, res.ToWireJSON())
	}
}

func TestSet_ReadOnly(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{"name": "Acme"})
	require.NoError(t, err)

	require.NoError(t, res.Set("id", 1300))

	err = res.Set("id", 1301)
	require.ErrorIs(t, err, resource.ErrReadOnlyAttribute)

	id, _ := res.GetInt("id")
	assert.Equal(t, 1300, id)

	existing, err := reg.New("Account", map[string]any{"id": 5})
	require.NoError(t, err)
	require.ErrorIs(t, existing.Set("id", 6), resource.ErrReadOnlyAttribute)
}

func TestSet_Regular(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{"name": "Acme"})
	require.NoError(t, err)

	require.NoError(t, res.Set("name", "Acme Corp"))
	require.NoError(t, res.Set("name", "Acme Inc"))

	name, _ := res.GetString("name")
	assert.Equal(t, "Acme Inc", name)

	require.ErrorIs(t, res.Set("nope", 1), resource.ErrUnknownAttribute)
}

func TestSet_Nested(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", nil)
	require.NoError(t, err)

	require.NoError(t, res.Set("owner", map[string]any{"firstName": "Ada"}))

	owner, ok := res.Nested("owner")
	require.True(t, ok)

	name, _ := owner.GetString("first_name")
	assert.Equal(t, "Ada", name)

	value, err := reg.New("FieldValue", map[string]any{"value": "x"})
	require.NoError(t, err)
	require.NoError(t, res.Set("custom_field_values", []*resource.Resource{value}))

	require.ErrorIs(t, res.Set("owner", value), resource.ErrInvalidAttributeValue)
	require.ErrorIs(t, res.Set("custom_field_values", "nope"), resource.ErrInvalidAttributeValue)
}

func TestToWireJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	raw := map[string]any{
		"id":         float64(1306),
		"externalId": "ABC123",
		"name":       "Acme",
		"active":     true,
		"owner": map[string]any{
			"id":        float64(3),
			"firstName": "Ada",
		},
		"customFieldValues": []any{
			map[string]any{"id": float64(1), "autoSync": true, "value": "gold"},
			map[string]any{"id": float64(2), "autoSync": false, "value": "silver"},
		},
	}

	res, err := reg.New("Account", raw)
	require.NoError(t, err)
	assert.Equal(t, raw, res.ToWireJSON())
	assert.Equal(t, raw, res.Raw())
}

func TestToWireJSON_DigitKeys(t *testing.T) {
	t.Parallel()

	reg := resource.NewRegistry()
	reg.MustDeclare("Address", false,
		resource.Attr("address1line", resource.String),
		resource.Attr("line1_address", resource.String),
	)

	raw := map[string]any{"address1line": "1 Main St", "line1Address": "Suite 4"}

	res, err := reg.New("Address", raw)
	require.NoError(t, err)
	assert.Equal(t, raw, res.ToWireJSON())

	value, ok := res.GetString("address1line")
	require.True(t, ok)
	assert.Equal(t, "1 Main St", value)
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{
		"externalId":        "ABC123",
		"customFieldValues": []any{map[string]any{"autoSync": true}},
	})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"externalId":"ABC123","customFieldValues":[{"autoSync":true}]}`, string(data))
}

func TestTypedGetters(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{
		"id":            json.Number("42"),
		"active":        "true",
		"inceptionDate": "2017-03-14T00:00:00",
		"name":          "Acme",
	})
	require.NoError(t, err)

	id, ok := res.GetInt("id")
	require.True(t, ok)
	assert.Equal(t, 42, id)

	active, ok := res.GetBool("active")
	require.True(t, ok)
	assert.True(t, active)

	inception, ok := res.GetTime("inception_date")
	require.True(t, ok)
	assert.Equal(t, time.March, inception.Month())
	assert.Equal(t, 2017, inception.Year())

	_, ok = res.GetTime("name")
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(t)

	res, err := reg.New("Account", map[string]any{
		"id":            float64(9),
		"name":          "Acme",
		"inceptionDate": "2017-03-14",
		"customFieldValues": []any{
			map[string]any{"id": float64(1), "value": "gold"},
		},
	})
	require.NoError(t, err)

	var out struct {
		ID            int       `mapstructure:"id"`
		Name          string    `mapstructure:"name"`
		InceptionDate time.Time `mapstructure:"inception_date"`
		Values        []struct {
			ID    int    `mapstructure:"id"`
			Value string `mapstructure:"value"`
		} `mapstructure:"custom_field_values"`
	}

	require.NoError(t, res.Decode(&out))
	assert.Equal(t, 9, out.ID)
	assert.Equal(t, "Acme", out.Name)
	assert.Equal(t, 2017, out.InceptionDate.Year())
	require.Len(t, out.Values, 1)
	assert.Equal(t, "gold", out.Values[0].Value)
}
