package models

// RoleID identifies one of the three fixed account roles.
type RoleID int

const (
	RoleFemale RoleID = 1
	RoleMale   RoleID = 2

	// RoleAdmin is the privileged role. Admin accounts can read every
	// conversation between non-admin accounts via the audit endpoint.
	RoleAdmin RoleID = 3
)

// discoveryTargets is the single source of truth for discovery visibility:
// which roles an account of a given role is shown as candidates.
var discoveryTargets = map[RoleID][]RoleID{
	RoleFemale: {RoleMale, RoleAdmin},
	RoleMale:   {RoleFemale},
	RoleAdmin:  {RoleFemale},
}

var roleNames = map[RoleID]string{
	RoleFemale: "female",
	RoleMale:   "male",
	RoleAdmin:  "admin",
}

// Valid reports whether r is one of the three known roles.
func (r RoleID) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Name returns the display name of the role, or "unknown".
func (r RoleID) Name() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// DiscoveryTargets returns the roles whose accounts are eligible candidates
// for an account of role r.
func (r RoleID) DiscoveryTargets() []RoleID {
	return discoveryTargets[r]
}
