package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRBAC(t *testing.T, policy string) *RBAC {
	t.Helper()

	r := &RBAC{}
	require.NoError(t, r.LoadPolicyBytes([]byte(policy)))
	return r
}

func TestCanDirectPermission(t *testing.T) {
	r := newTestRBAC(t, `
roles:
  staff:
    permissions:
      - resource: vehicle
        actions: ["read", "create"]
`)

	assert.True(t, r.Can("staff", "vehicle", "read"))
	assert.True(t, r.Can("staff", "vehicle", "create"))
	assert.False(t, r.Can("staff", "vehicle", "delete"))
	assert.False(t, r.Can("staff", "gate", "read"))
	assert.False(t, r.Can("visitor", "vehicle", "read"))
}

func TestCanWildcards(t *testing.T) {
	r := newTestRBAC(t, `
roles:
  admin:
    permissions:
      - resource: "*"
        actions: ["*"]
  auditor:
    permissions:
      - resource: "*"
        actions: ["read"]
`)

	assert.True(t, r.Can("admin", "gate", "delete"))
	assert.True(t, r.Can("admin", "anything", "whatever"))
	assert.True(t, r.Can("auditor", "incidentreport", "read"))
	assert.False(t, r.Can("auditor", "incidentreport", "update"))
}

func TestInheritance(t *testing.T) {
	r := newTestRBAC(t, `
roles:
  viewer:
    permissions:
      - resource: "*"
        actions: ["read"]
  operator:
    permissions:
      - resource: gate
        actions: ["update"]
inheritance:
  operator: [viewer]
`)

	assert.True(t, r.Can("operator", "gate", "update"))
	assert.True(t, r.Can("operator", "vehicle", "read"), "inherited from viewer")
	assert.False(t, r.Can("operator", "vehicle", "update"))
	assert.False(t, r.Can("viewer", "gate", "update"))
}

func TestDefaultRole(t *testing.T) {
	r := newTestRBAC(t, `
default_role: viewer
roles:
  viewer:
    permissions:
      - resource: gate
        actions: ["read"]
`)

	assert.Equal(t, "viewer", r.DefaultRole())
	// Empty role falls back to the default role
	assert.True(t, r.Can("", "gate", "read"))
	assert.False(t, r.Can("", "gate", "delete"))
}

func TestUnloadedPolicyDeniesAll(t *testing.T) {
	r := &RBAC{}

	assert.False(t, r.Can("admin", "gate", "read"))
	assert.Equal(t, "", r.DefaultRole())
}

func TestLoadPolicyBytesInvalidYAML(t *testing.T) {
	r := &RBAC{}
	assert.Error(t, r.LoadPolicyBytes([]byte("roles: [not: a: map")))
}

func TestReloadReplacesPolicy(t *testing.T) {
	r := newTestRBAC(t, `
roles:
  staff:
    permissions:
      - resource: gate
        actions: ["read"]
`)
	require.True(t, r.Can("staff", "gate", "read"))

	require.NoError(t, r.LoadPolicyBytes([]byte(`
roles:
  staff:
    permissions: []
`)))
	assert.False(t, r.Can("staff", "gate", "read"))
}
