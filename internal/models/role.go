package models

// RoleType names a role a user account can hold.
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleManager RoleType = "MANAGER"
	RoleUser    RoleType = "USER"
)

// roleRank orders roles by privilege. A user's effective role is the
// highest-ranked role they hold, never "whichever came first" in the
// unordered role list.
var roleRank = map[RoleType]int{
	RoleAdmin:   3,
	RoleManager: 2,
	RoleUser:    1,
}

// HighestRole resolves the effective role for a set of assigned roles.
// Unknown role names rank below every known role. An empty list resolves
// to RoleUser.
func HighestRole(roles []RoleType) RoleType {
	best := RoleUser
	bestRank := 0
	for _, r := range roles {
		if rank := roleRank[r]; rank > bestRank {
			best = r
			bestRank = rank
		}
	}
	return best
}
