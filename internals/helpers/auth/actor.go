// file: internals/helpers/auth/actor.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"messku_backend/internals/constants"
)

// Nama locals mengikuti yang di-set middleware AuthJWT.
const (
	LocMemberID = "member_id"
	LocMessID   = "mess_id"
	LocRole     = "role"
)

// Actor: identitas caller hasil resolve middleware (sudah terautentikasi upstream).
// Service layer menerima struct ini, tidak pernah menyentuh kredensial.
type Actor struct {
	MemberID uuid.UUID
	MessID   uuid.UUID
	Role     string
}

func (a Actor) IsPrivileged() bool {
	return constants.IsPrivilegedRole(a.Role)
}

func (a Actor) IsAdmin() bool {
	return strings.EqualFold(a.Role, constants.RoleAdmin)
}

// ActorFromCtx membaca identitas caller dari locals.
func ActorFromCtx(c *fiber.Ctx) (Actor, error) {
	var a Actor

	memberRaw, _ := c.Locals(LocMemberID).(string)
	memberID, err := uuid.Parse(strings.TrimSpace(memberRaw))
	if err != nil {
		return a, fiber.NewError(fiber.StatusUnauthorized, "member_id tidak ditemukan di token")
	}
	a.MemberID = memberID

	messRaw, _ := c.Locals(LocMessID).(string)
	messID, err := uuid.Parse(strings.TrimSpace(messRaw))
	if err != nil {
		return a, fiber.NewError(fiber.StatusUnauthorized, "mess_id tidak ditemukan di token")
	}
	a.MessID = messID

	role, _ := c.Locals(LocRole).(string)
	a.Role = strings.ToLower(strings.TrimSpace(role))
	if a.Role == "" {
		a.Role = constants.RoleMember
	}
	return a, nil
}

// EnsureAdmin: guard route khusus admin.
func EnsureAdmin(c *fiber.Ctx) (Actor, error) {
	a, err := ActorFromCtx(c)
	if err != nil {
		return a, err
	}
	if !a.IsAdmin() {
		return a, fiber.NewError(fiber.StatusForbidden, constants.ErrOnlyAdminsCanAccess)
	}
	return a, nil
}

// EnsurePrivileged: guard route admin/manager.
func EnsurePrivileged(c *fiber.Ctx) (Actor, error) {
	a, err := ActorFromCtx(c)
	if err != nil {
		return a, err
	}
	if !a.IsPrivileged() {
		return a, fiber.NewError(fiber.StatusForbidden, constants.ErrOnlyPrivilegedCanAccess)
	}
	return a, nil
}
