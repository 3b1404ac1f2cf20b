package constants

import "strings"

// Role per-mess yang dikenali token.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess     = "❌ Hanya admin yang boleh mengakses fitur ini."
	ErrOnlyPrivilegedCanAccess = "❌ Hanya admin atau manager yang boleh mengakses fitur ini."
)

// PrivilegedRoles: role yang boleh mengelola ledger, generate akun, dan laporan lintas mess.
var PrivilegedRoles = []string{RoleAdmin, RoleManager}

func IsPrivilegedRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range PrivilegedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin, RoleManager, RoleMember:
		return true
	}
	return false
}
