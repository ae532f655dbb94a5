package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware validates the Bearer token and stores user_id, role and
// department claims in Locals for downstream handlers.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	ctx.Locals("role", claims["role"])
	ctx.Locals("department", claims["department"])
	return ctx.Next()
}

// OptionalJwtMiddleware populates Locals when a valid token is present but
// lets anonymous requests through untouched.
func OptionalJwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Next()
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Next()
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		ctx.Locals("user_id", claims["user_id"])
		ctx.Locals("role", claims["role"])
		ctx.Locals("department", claims["department"])
	}
	return ctx.Next()
}

// RequireRole gates a route group to one of the given roles. Must run after
// JwtMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		role, _ := ctx.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
	}
}
