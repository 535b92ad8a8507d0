package auth

const (
	RoleAdmin = "ROLE_ADMIN"
	RoleUser  = "ROLE_USER"

	PermAdmin = "ADMIN"
	PermUser  = "USER"
)

var rolePermissions = map[string][]string{
	RoleAdmin: {PermAdmin, PermUser},
}

// PermissionsForRole maps a stored role label to permission labels.
// Unrecognized roles fall back to plain user access.
func PermissionsForRole(role string) []string {
	if perms, ok := rolePermissions[role]; ok {
		out := make([]string, len(perms))
		copy(out, perms)
		return out
	}
	return []string{PermUser}
}

func HasPermission(role, permission string) bool {
	for _, p := range PermissionsForRole(role) {
		if p == permission {
			return true
		}
	}
	return false
}
