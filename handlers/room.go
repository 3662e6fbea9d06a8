// handlers/room_routes.go
package handlers

import (
	"fundraising-room-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRoomRoutes(app *fiber.App, roomService *services.RoomService, gameService *services.GameService) {
	// 🔐 Mutating room routes require a verified wallet identity (enforced by
	// WalletContextMiddleware on non-GET /rooms paths)
	app.Post("/rooms/pool", roomService.InitPoolRoom)
	app.Post("/rooms/asset", roomService.InitAssetRoom)
	app.Post("/rooms/:address/prizes/:index/deposit", roomService.DepositPrizeAsset)
	app.Post("/rooms/:address/join", gameService.JoinRoom)
	app.Post("/rooms/:address/winners", gameService.DeclareWinners)
	app.Post("/rooms/:address/end", gameService.EndRoom)
}
