package access

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type Permission struct {
	Resource string   `yaml:"resource"`
	Actions  []string `yaml:"actions"`
}

type Role struct {
	Description string       `yaml:"description"`
	Permissions []Permission `yaml:"permissions"`
}

type RBACPolicy struct {
	DefaultRole string              `yaml:"default_role"`
	Roles       map[string]Role     `yaml:"roles"`
	Inheritance map[string][]string `yaml:"inheritance"`
}

// RBAC answers permission checks against the loaded policy. Decisions
// are keyed by role name since roles travel in the user record and the
// session token. Grants are indexed once at load time.
type RBAC struct {
	mu     sync.RWMutex
	policy *RBACPolicy
	grants map[string]map[string]bool // role -> "resource:action" keys, "*" literal
}

var (
	rbacInstance *RBAC
	rbacOnce     sync.Once
)

// GetRBAC returns the process-wide RBAC instance.
func GetRBAC() *RBAC {
	rbacOnce.Do(func() {
		rbacInstance = &RBAC{}
	})
	return rbacInstance
}

// LoadPolicy reads and installs a YAML policy file.
func (r *RBAC) LoadPolicy(filepath string) error {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("failed to read policy file: %w", err)
	}
	return r.LoadPolicyBytes(data)
}

// LoadPolicyBytes parses a YAML policy and replaces the active one.
func (r *RBAC) LoadPolicyBytes(data []byte) error {
	var policy RBACPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return fmt.Errorf("failed to parse policy file: %w", err)
	}

	grants := make(map[string]map[string]bool, len(policy.Roles))
	for name, role := range policy.Roles {
		keys := make(map[string]bool)
		for _, perm := range role.Permissions {
			for _, action := range perm.Actions {
				keys[grantKey(perm.Resource, action)] = true
			}
		}
		grants[name] = keys
	}

	r.mu.Lock()
	r.policy = &policy
	r.grants = grants
	r.mu.Unlock()

	slog.Info("RBAC policy loaded", "roles", len(policy.Roles))
	return nil
}

func grantKey(resource, action string) string {
	return resource + ":" + action
}

// DefaultRole returns the fallback role for empty or unknown roles.
func (r *RBAC) DefaultRole() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.policy == nil {
		return ""
	}
	return r.policy.DefaultRole
}

// Can reports whether role may perform action on resource. With no
// policy loaded everything is denied.
func (r *RBAC) Can(role, resource, action string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.policy == nil {
		slog.Warn("RBAC policy not loaded")
		return false
	}

	for name := range r.effectiveRoles(role) {
		keys := r.grants[name]
		if keys[grantKey(resource, action)] ||
			keys[grantKey(resource, "*")] ||
			keys[grantKey("*", action)] ||
			keys[grantKey("*", "*")] {
			return true
		}
	}
	return false
}

// effectiveRoles expands role with the default-role fallback and the
// inheritance closure. Caller must hold the lock.
func (r *RBAC) effectiveRoles(role string) map[string]bool {
	if role == "" {
		role = r.policy.DefaultRole
	}

	roles := make(map[string]bool)
	if role != "" {
		roles[role] = true
		r.inherit(role, roles)
	}
	return roles
}

func (r *RBAC) inherit(role string, roles map[string]bool) {
	for _, parent := range r.policy.Inheritance[role] {
		if !roles[parent] {
			roles[parent] = true
			r.inherit(parent, roles)
		}
	}
}
