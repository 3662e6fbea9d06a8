// handlers/admin_routes.go
package handlers

import (
	"fundraising-room-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App, adminService *services.AdminService, eventService *services.EventService) {
	// 🔐 All admin routes require a verified wallet identity; per-operation
	// authorization (config admin vs registry admin) happens in the service.
	admin := app.Group("/admin")

	admin.Post("/initialize", adminService.Initialize)
	admin.Post("/token-registry", adminService.InitializeTokenRegistry)
	admin.Post("/tokens", adminService.AddApprovedToken)
	admin.Delete("/tokens/:mint", adminService.RemoveApprovedToken)
	admin.Patch("/pause", adminService.SetEmergencyPause)
	admin.Post("/rooms/:address/recover", adminService.RecoverRoom)
	admin.Post("/rooms/:address/events/export", eventService.ExportRoomEvents)

	// Test-account faucet: admin-only in the service, used by integration
	// tooling to seed balances.
	app.Post("/accounts", adminService.CreateTokenAccount)
}
