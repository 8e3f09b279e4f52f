package constant

const (
	RoleAdmin       = "admin"
	RoleEditorHR    = "editor_hr"
	RoleEditorLegal = "editor_legal"
	RoleHR          = "hr"
	RoleLegal       = "legal"
)

// ChatRoles lists the roles allowed to use the chat endpoints. Editors and
// admins manage content and accounts but do not chat.
var ChatRoles = []string{RoleHR, RoleLegal}

// ValidRoles lists every assignable role.
var ValidRoles = []string{RoleAdmin, RoleEditorHR, RoleEditorLegal, RoleHR, RoleLegal}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func CanChat(role string) bool {
	for _, r := range ChatRoles {
		if r == role {
			return true
		}
	}
	return false
}
