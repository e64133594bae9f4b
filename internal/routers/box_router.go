package routers

import (
	"MysteryBox/cmd"
	"MysteryBox/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func SetupBoxRouter(router fiber.Router, server *cmd.Server) {
	boxHandler := server.BoxHandler
	router.Post("/boxes", boxHandler.CreateBox)
	router.Get("/boxes/:id", boxHandler.GetBox)
	router.Get("/seller/boxes", boxHandler.ListOwnBoxes)
	router.Post("/boxes/:id/submit", boxHandler.SubmitForApproval)
	router.Post("/boxes/:id/reopen", boxHandler.ReopenDraft)
	router.Post("/boxes/:id/approve", middleware.RequireRole(middleware.RoleStaff), boxHandler.Approve)
	router.Post("/boxes/:id/reject", middleware.RequireRole(middleware.RoleStaff), boxHandler.Reject)
}
