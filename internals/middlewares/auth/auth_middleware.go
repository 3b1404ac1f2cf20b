// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"messku_backend/internals/configs"
	helperAuth "messku_backend/internals/helpers/auth"
)

// Public path yang di-skip auth (webhook pembayaran dsb.)
var skipPaths = map[string]struct{}{
	"/api/topups/midtrans/webhook": {},
}

// AuthMiddleware memverifikasi JWT dan menaruh identitas caller ke locals.
// Penerbitan token (login/OTP) terjadi di layanan lain — di sini hanya verifikasi.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// Simpan klaim inti ke locals: member_id, mess_id, role
		memberID, err := extractUUIDClaim(claims, "member_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing member ID")
		}
		messID, err := extractUUIDClaim(claims, "mess_id")
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing mess ID")
		}

		c.Locals(helperAuth.LocMemberID, memberID.String())
		c.Locals(helperAuth.LocMessID, messID.String())
		if role, ok := claims["role"].(string); ok {
			c.Locals(helperAuth.LocRole, role)
		}

		return c.Next()
	}
}
