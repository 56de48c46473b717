package permission

import "errors"

// ErrForbidden signals that the caller failed a permission check. It is
// produced before any service operation runs so the presentation layer
// can render a permission-denied reply.
var ErrForbidden = errors.New("you do not have permission to use this command")

// Membership exposes the caller's role names as supplied by the host
// platform. A nil Membership means the command was invoked without group
// context and is always rejected.
type Membership interface {
	RoleNames() []string
}

// RoleSet is a plain-slice Membership for callers that already hold the
// role names.
type RoleSet []string

func (r RoleSet) RoleNames() []string { return r }

// Gate checks callers against the two configured permission tiers.
type Gate struct {
	HRRole    string
	StaffRole string
}

func NewGate(hrRole, staffRole string) Gate {
	return Gate{HRRole: hrRole, StaffRole: staffRole}
}

// IsHR reports whether the caller holds the HR role.
func (g Gate) IsHR(m Membership) bool {
	return hasRole(m, g.HRRole)
}

// IsStaff reports whether the caller holds the Staff role. HR passes
// staff-level checks.
func (g Gate) IsStaff(m Membership) bool {
	return g.IsHR(m) || hasRole(m, g.StaffRole)
}

// RequireHR returns ErrForbidden unless the caller is HR.
func (g Gate) RequireHR(m Membership) error {
	if !g.IsHR(m) {
		return ErrForbidden
	}
	return nil
}

// RequireStaff returns ErrForbidden unless the caller is staff or HR.
func (g Gate) RequireStaff(m Membership) error {
	if !g.IsStaff(m) {
		return ErrForbidden
	}
	return nil
}

func hasRole(m Membership, name string) bool {
	if m == nil {
		return false
	}
	for _, role := range m.RoleNames() {
		if role == name {
			return true
		}
	}
	return false
}
