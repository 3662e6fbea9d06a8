// internal/middleware/wallet_context.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// WalletContextMiddleware extracts the caller's wallet address set by the
// Gateway after signature verification. Admin routes and every mutating room
// route require an identity; public reads do not.
func WalletContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		wallet := c.Get("X-Wallet-Address")

		path := c.Path()
		needsIdentity := strings.HasPrefix(path, "/admin") ||
			(strings.HasPrefix(path, "/rooms") && c.Method() != fiber.MethodGet)
		if needsIdentity && wallet == "" {
			log.Printf("❌ [WALLET_CTX] X-Wallet-Address required but missing on: %s", path)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Wallet-Address — request must come through gateway with a verified signature",
			})
		}

		// Attach to ctx for handlers
		c.Locals("wallet_address", wallet)
		return c.Next()
	}
}
