package models

import "fmt"

// Role is the closed set of user types the app recognizes. The role string is
// supplied by the client at login and trusted as-is; what it may do is still
// decided centrally through the capability table below rather than per view.
type Role string

const (
	RoleCitizen               Role = "citizen"
	RoleWorker                Role = "worker"
	RoleSanitationOfficer     Role = "sanitation-officer"
	RoleCityEngineer          Role = "city-engineer"
	RoleDeputyCommissioner    Role = "deputy-commissioner"
	RoleMunicipalCommissioner Role = "municipal-commissioner"
)

// Capability is an operation a role may perform.
type Capability string

const (
	CapSubmitIssue     Capability = "submit-issue"
	CapUpdateStatus    Capability = "update-status"
	CapAssignWorker    Capability = "assign-worker"
	CapViewEscalations Capability = "view-escalations"
	CapViewAnalytics   Capability = "view-analytics"
	CapViewAllIssues   Capability = "view-all-issues"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleCitizen: {
		CapSubmitIssue: true,
	},
	RoleWorker: {
		CapUpdateStatus: true,
	},
	RoleSanitationOfficer: {
		CapUpdateStatus:  true,
		CapAssignWorker:  true,
		CapViewAnalytics: true,
		CapViewAllIssues: true,
	},
	RoleCityEngineer: {
		CapUpdateStatus:  true,
		CapAssignWorker:  true,
		CapViewAnalytics: true,
		CapViewAllIssues: true,
	},
	RoleDeputyCommissioner: {
		CapUpdateStatus:    true,
		CapViewEscalations: true,
		CapViewAnalytics:   true,
		CapViewAllIssues:   true,
	},
	RoleMunicipalCommissioner: {
		CapUpdateStatus:    true,
		CapViewEscalations: true,
		CapViewAnalytics:   true,
		CapViewAllIssues:   true,
	},
}

// ParseRole validates a client-supplied role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleCapabilities[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Can reports whether the role is allowed the capability.
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}
