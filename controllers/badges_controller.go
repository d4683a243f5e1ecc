package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/services"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

type BadgesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewBadgesController(db *gorm.DB, cfg *config.Config) *BadgesController {
	return &BadgesController{DB: db, Cfg: cfg}
}

// MyBadges returns the caller's persisted badge awards. Possession comes
// from the stored rows, so awards survive counter drops.
func (bc *BadgesController) MyBadges(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var badges []models.UserBadge
	if err := bc.DB.Where("user_id = ?", userID).Order("earned_at ASC").Find(&badges).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, badges)
}

// Catalog returns the fixed badge rule table.
func (bc *BadgesController) Catalog(c *fiber.Ctx) error {
	return utils.Success(c, fiber.StatusOK, services.BadgeRules)
}
