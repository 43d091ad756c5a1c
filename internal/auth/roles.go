package auth

// The four portal roles. Agents see every record kind; the other three are
// scoped to their own domain.
const (
	RoleAgent         = "agent"
	RoleCyberAnalyst  = "cyber_analyst"
	RoleDataScientist = "data_scientist"
	RoleITOverseer    = "it_overseer"
)

// Record kinds as they appear in API paths.
const (
	KindIncidents = "incidents"
	KindDatasets  = "datasets"
	KindTickets   = "tickets"
)

var roleKinds = map[string][]string{
	RoleAgent:         {KindIncidents, KindDatasets, KindTickets},
	RoleCyberAnalyst:  {KindIncidents},
	RoleDataScientist: {KindDatasets},
	RoleITOverseer:    {KindTickets},
}

// ValidRole reports whether role is one of the four portal roles.
func ValidRole(role string) bool {
	_, ok := roleKinds[role]
	return ok
}

// CanAccess reports whether a session with the given role may view or
// modify the given record kind.
func CanAccess(role, kind string) bool {
	for _, k := range roleKinds[role] {
		if k == kind {
			return true
		}
	}
	return false
}
