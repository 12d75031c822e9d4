package resource_test

import (
	"testing"

	"github.com/fivetwenty-io/clientsuccess/pkg/resource"
	"github.com/stretchr/testify/assert"
)

func TestToDomainCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"externalId", "external_id"},
		{"id", "id"},
		{"customFieldValues", "custom_field_values"},
		{"ExternalID", "external_id"},
		{"HTMLParser", "html_parser"},
		{"linkedinUrl", "linkedin_url"},
		{"zip", "zip"},
		{"line1Address", "line1_address"},
		{"already_snake", "already_snake"},
		{"dash-case", "dash_case"},
		{"Admin::UserRole", "admin/user_role"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resource.ToDomainCase(tt.in))
		})
	}
}

func TestToDomainCase_Memoized(t *testing.T) {
	t.Parallel()

	first := resource.ToDomainCase("activeClientSuccessCycleId")
	second := resource.ToDomainCase("activeClientSuccessCycleId")

	assert.Equal(t, "active_client_success_cycle_id", first)
	assert.Equal(t, first, second)
}

func TestToWireCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"external_id", "externalId"},
		{"id", "id"},
		{"custom_field_values", "customFieldValues"},
		{"site_url", "siteUrl"},
		{"active_client_success_cycle_id", "activeClientSuccessCycleId"},
		{"zip", "zip"},
		{"address1line", "address1line"},
		{"field1name", "field1name"},
		{"a1b", "a1b"},
		{"line1_address", "line1Address"},
		{"trailing_", "trailing_"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resource.ToWireCase(tt.in))
		})
	}
}

func TestCasing_NormalizationIsIdempotent(t *testing.T) {
	t.Parallel()

	keys := []string{
		"externalId", "customFieldValues", "siteUrl", "clientSegmentId",
		"modifiedByEmployeeId", "crmCustomerUrl", "userVoiceId", "autoSync",
		"executiveSponsor", "photoUrl", "typeId", "id", "name",
		"address1line", "field1name", "a1b", "line1Address",
	}

	for _, k := range keys {
		domain := resource.ToDomainCase(k)
		assert.Equal(t, domain, resource.ToDomainCase(resource.ToWireCase(domain)), k)
		assert.Equal(t, k, resource.ToWireCase(domain), k)
	}
}
