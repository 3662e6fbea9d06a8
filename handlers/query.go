// handlers/query_routes.go
package handlers

import (
	"fundraising-room-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupQueryRoutes(app *fiber.App, roomService *services.RoomService, adminService *services.AdminService, eventService *services.EventService, feeService *services.FeeService, charityService *services.CharityService) {
	// 🔓 Public reads — no wallet identity, but still behind Gateway auth
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/rooms", roomService.ListRooms)
	app.Get("/rooms/:address", roomService.GetRoom)
	app.Get("/rooms/:address/entries", roomService.ListRoomEntries)
	app.Get("/rooms/:address/transfers", roomService.ListRoomTransfers)
	app.Get("/rooms/:address/events", eventService.ListRoomEvents)

	app.Get("/tokens/approved", adminService.GetApprovedTokens)
	app.Get("/accounts/:address/balance", adminService.GetAccountBalance)

	app.Post("/fees/calculate", feeService.CalculateFees)

	app.Get("/charities/search", charityService.SearchCharities)
	app.Get("/charities/:id/address/:token", charityService.GetCharityAddress)
}
