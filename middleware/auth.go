package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("user_id", userID)
		return c.Next()
	}
}

// RoleMiddleware looks up the caller's role and rejects anyone outside the
// allowed set.
func RoleMiddleware(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		for _, role := range roles {
			if user.Role == role {
				c.Locals("user_id", userID)
				return c.Next()
			}
		}

		return utils.Forbidden(c, "Forbidden - insufficient role")
	}
}

func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return RoleMiddleware(db, cfg, models.RoleAdmin)
}

// StaffMiddleware allows admins and instructors.
func StaffMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return RoleMiddleware(db, cfg, models.RoleAdmin, models.RoleInstructor)
}
