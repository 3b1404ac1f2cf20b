// file: internals/features/members/route/member_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberController "messku_backend/internals/features/members/controller"
)

func AdminMemberRoutes(r fiber.Router, db *gorm.DB) {
	ctl := memberController.NewMemberController(db)
	members := r.Group("/members")
	{
		members.Post("/", ctl.Create)
		members.Patch("/:id", ctl.Patch)
		members.Post("/:id/approve", ctl.Approve)
		members.Post("/:id/verify", ctl.Verify)
		members.Post("/:id/block", ctl.Block)
		members.Post("/:id/unblock", ctl.Unblock)
		members.Delete("/:id", ctl.Delete)
	}
}

func UserMemberRoutes(r fiber.Router, db *gorm.DB) {
	ctl := memberController.NewMemberController(db)
	members := r.Group("/members")
	{
		members.Get("/", ctl.ListByMess)
		members.Get("/:id", ctl.GetByID)
	}
}
