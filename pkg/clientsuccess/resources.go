package clientsuccess

import (
	"strings"
	"time"

	"github.com/fivetwenty-io/clientsuccess/pkg/resource"
)

// Resource type names.
const (
	TypeClient           = "Client"
	TypeContact          = "Contact"
	TypeCustomField      = "CustomField"
	TypeCustomFieldValue = "CustomFieldValue"
)

// Schemas holds the declared attributes of every ClientSuccess resource type.
var Schemas = newSchemas()

func newSchemas() *resource.Registry {
	reg := resource.NewRegistry()

	reg.MustDeclare(TypeClient, true, resource.Attr("id", resource.Int))
	reg.MustDeclare(TypeClient, false,
		resource.Attr("external_id", resource.String),
		resource.Attr("name", resource.String),
		resource.Attr("site_url", resource.String),
		resource.Attr("client_segment_id", resource.Int),
		resource.Attr("zip", resource.String),
		resource.Attr("modified_by_employee_id", resource.Int),
		resource.Attr("status_id", resource.Int),
		resource.Attr("inception_date", resource.DateTime),
		resource.Attr("created_by_employee_id", resource.Int),
		resource.Attr("tenant_id", resource.Int),
		resource.Attr("linkedin_url", resource.String),
		resource.Attr("managed_by_employee_id", resource.Int),
		resource.Attr("active", resource.Boolean),
		resource.Attr("success_score", resource.Int),
		resource.Attr("active_client_success_cycle_id", resource.Int),
		resource.Attr("crm_customer_id", resource.Int),
		resource.Attr("crm_customer_url", resource.String),
		resource.Attr("zendesk_id", resource.Int),
		resource.Attr("desk_id", resource.Int),
		resource.Attr("freshdesk_id", resource.Int),
		resource.Attr("user_voice_id", resource.Int),
		resource.Attr("assigned_sales_rep", resource.String),
		resource.Attr("key_contact_id", resource.Int),
		resource.Attr("street", resource.String),
		resource.Attr("city", resource.String),
		resource.Attr("state", resource.String),
		resource.Attr("country", resource.String),
		resource.Attr("timezone", resource.String),
		resource.Attr("custom_field_values", resource.ArrayOf(resource.ResourceOf(TypeCustomFieldValue))),
	)

	reg.MustDeclare(TypeContact, true, resource.Attr("id", resource.Int))
	reg.MustDeclare(TypeContact, false,
		resource.Attr("client_id", resource.Int),
		resource.Attr("name", resource.String),
		resource.Attr("email", resource.String),
		resource.Attr("phone", resource.String),
		resource.Attr("mobile", resource.String),
		resource.Attr("title", resource.String),
		resource.Attr("preferred_name", resource.String),
		resource.Attr("linkedin_url", resource.String),
		resource.Attr("photo_url", resource.String),
		resource.Attr("first_name", resource.String),
		resource.Attr("last_name", resource.String),
		resource.Attr("tenant_id", resource.Int),
		resource.Attr("note", resource.String),
		resource.Attr("executive_sponsor", resource.Boolean),
		resource.Attr("advocate", resource.Boolean),
		resource.Attr("champion", resource.Boolean),
		resource.Attr("custom_field_values", resource.ArrayOf(resource.ResourceOf(TypeCustomFieldValue))),
	)

	reg.MustDeclare(TypeCustomField, true, resource.Attr("id", resource.Int))
	reg.MustDeclare(TypeCustomField, false,
		resource.Attr("resource_id", resource.Int),
		resource.Attr("name", resource.String),
		resource.Attr("label", resource.String),
		resource.Attr("type_id", resource.Int),
		resource.Attr("type", resource.String),
		resource.Attr("sequence", resource.Int),
		resource.Attr("auto_sync", resource.Boolean),
	)

	reg.MustDeclare(TypeCustomFieldValue, true, resource.Attr("id", resource.Int))
	reg.MustDeclare(TypeCustomFieldValue, false,
		resource.Attr("contact_id", resource.Int),
		resource.Attr("field_id", resource.Int),
		resource.Attr("value_id", resource.Int),
		resource.Attr("name", resource.String),
		resource.Attr("value", resource.String),
		resource.Attr("label", resource.String),
		resource.Attr("auto_sync", resource.Boolean),
		resource.Attr("type", resource.String),
		resource.Attr("sequence", resource.Int),
		resource.Attr("push", resource.Boolean),
		resource.Attr("pull", resource.Boolean),
	)

	return reg
}

// Identified is implemented by every resource carrying a server id.
type Identified interface {
	ID() (int, bool)
}

// Client is a customer account.
type Client struct {
	*resource.Resource
}

// NewClient builds a Client from a wire-cased or domain-cased object.
func NewClient(attrs map[string]any) (*Client, error) {
	res, err := Schemas.New(TypeClient, attrs)
	if err != nil {
		return nil, err
	}

	return &Client{Resource: res}, nil
}

// ID returns the server id, if assigned.
func (c *Client) ID() (int, bool) {
	if c == nil || c.Resource == nil {
		return 0, false
	}

	return c.GetInt("id")
}

// SetID assigns the server id. It fails once an id is present.
func (c *Client) SetID(id int) error {
	return c.Set("id", id)
}

// Name returns the client name.
func (c *Client) Name() string {
	name, _ := c.GetString("name")

	return name
}

// ExternalID returns the id of the client in the caller's own system.
func (c *Client) ExternalID() string {
	id, _ := c.GetString("external_id")

	return id
}

// Active reports whether the client is active.
func (c *Client) Active() bool {
	active, _ := c.GetBool("active")

	return active
}

// InceptionDate returns the date the client relationship started.
func (c *Client) InceptionDate() (time.Time, bool) {
	return c.GetTime("inception_date")
}

// CustomFieldValues returns the nested custom field values.
func (c *Client) CustomFieldValues() []*CustomFieldValue {
	return wrapFieldValues(c.Resource)
}

// Contact is a person at a client.
type Contact struct {
	*resource.Resource
}

// NewContact builds a Contact from a wire-cased or domain-cased object.
func NewContact(attrs map[string]any) (*Contact, error) {
	res, err := Schemas.New(TypeContact, attrs)
	if err != nil {
		return nil, err
	}

	return &Contact{Resource: res}, nil
}

// ID returns the server id, if assigned.
func (c *Contact) ID() (int, bool) {
	if c == nil || c.Resource == nil {
		return 0, false
	}

	return c.GetInt("id")
}

// SetID assigns the server id. It fails once an id is present.
func (c *Contact) SetID(id int) error {
	return c.Set("id", id)
}

// ClientID returns the id of the owning client, if known.
func (c *Contact) ClientID() (int, bool) {
	if c == nil || c.Resource == nil {
		return 0, false
	}

	return c.GetInt("client_id")
}

// Email returns the contact email.
func (c *Contact) Email() string {
	email, _ := c.GetString("email")

	return email
}

// FirstName returns the contact first name.
func (c *Contact) FirstName() string {
	name, _ := c.GetString("first_name")

	return name
}

// LastName returns the contact last name.
func (c *Contact) LastName() string {
	name, _ := c.GetString("last_name")

	return name
}

// FullName joins first and last name with a single space.
func (c *Contact) FullName() string {
	return c.FirstName() + " " + c.LastName()
}

// DisplayName prefers the name attribute and falls back to FullName.
func (c *Contact) DisplayName() string {
	if name, ok := c.GetString("name"); ok && name != "" {
		return name
	}

	return strings.TrimSpace(c.FullName())
}

// CustomFieldValues returns the nested custom field values.
func (c *Contact) CustomFieldValues() []*CustomFieldValue {
	return wrapFieldValues(c.Resource)
}

// CustomField describes a custom field definition.
type CustomField struct {
	*resource.Resource
}

// NewCustomField builds a CustomField from a wire-cased or domain-cased object.
func NewCustomField(attrs map[string]any) (*CustomField, error) {
	res, err := Schemas.New(TypeCustomField, attrs)
	if err != nil {
		return nil, err
	}

	return &CustomField{Resource: res}, nil
}

// ID returns the server id, if assigned.
func (f *CustomField) ID() (int, bool) {
	if f == nil || f.Resource == nil {
		return 0, false
	}

	return f.GetInt("id")
}

// Name returns the field name.
func (f *CustomField) Name() string {
	name, _ := f.GetString("name")

	return name
}

// Label returns the field label.
func (f *CustomField) Label() string {
	label, _ := f.GetString("label")

	return label
}

// CustomFieldValue is the value of a custom field on a client or contact.
type CustomFieldValue struct {
	*resource.Resource
}

// NewCustomFieldValue builds a CustomFieldValue from a wire-cased or
// domain-cased object.
func NewCustomFieldValue(attrs map[string]any) (*CustomFieldValue, error) {
	res, err := Schemas.New(TypeCustomFieldValue, attrs)
	if err != nil {
		return nil, err
	}

	return &CustomFieldValue{Resource: res}, nil
}

// ID returns the server id, if assigned.
func (v *CustomFieldValue) ID() (int, bool) {
	if v == nil || v.Resource == nil {
		return 0, false
	}

	return v.GetInt("id")
}

// Name returns the field name.
func (v *CustomFieldValue) Name() string {
	name, _ := v.GetString("name")

	return name
}

// Value returns the stored value.
func (v *CustomFieldValue) Value() string {
	value, _ := v.GetString("value")

	return value
}

func wrapFieldValues(res *resource.Resource) []*CustomFieldValue {
	list, ok := res.NestedList("custom_field_values")
	if !ok {
		return nil
	}

	out := make([]*CustomFieldValue, 0, len(list))
	for _, item := range list {
		out = append(out, &CustomFieldValue{Resource: item})
	}

	return out
}

// Ref identifies a resource either by id or by an instance carrying one.
type Ref struct {
	id       int
	resource Identified
	set      bool
}

// ByID refers to a resource by its server id.
func ByID(id int) Ref {
	return Ref{id: id, set: true}
}

// ByResource refers to a resource through an instance. The id is read when
// the reference is resolved.
func ByResource(res Identified) Ref {
	if res == nil {
		return Ref{}
	}

	return Ref{resource: res, set: true}
}

// IsZero reports whether the reference was never set.
func (r Ref) IsZero() bool {
	return !r.set
}

// Resource returns the instance the reference was built from, if any.
func (r Ref) Resource() Identified {
	return r.resource
}

// Resolve returns the referenced id. It reports false when the reference is
// empty or points at an instance without an id.
func (r Ref) Resolve() (int, bool) {
	if !r.set {
		return 0, false
	}

	if r.resource != nil {
		return r.resource.ID()
	}

	return r.id, true
}
