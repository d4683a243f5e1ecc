package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/models"
	"github.com/skillquest/backend/utils"
	"gorm.io/gorm"
)

type UsersController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUsersController(db *gorm.DB, cfg *config.Config) *UsersController {
	return &UsersController{DB: db, Cfg: cfg}
}

// ListUsers is the admin back-office user listing.
func (uc *UsersController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("created_at ASC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, users)
}

// Leaderboard returns the top users by XP.
func (uc *UsersController) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var users []models.User
	if err := uc.DB.Order("xp DESC").Limit(limit).Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for i, user := range users {
		result = append(result, fiber.Map{
			"rank":  i + 1,
			"name":  user.Name,
			"xp":    user.XP,
			"level": user.Level,
		})
	}

	return utils.Success(c, fiber.StatusOK, result)
}
