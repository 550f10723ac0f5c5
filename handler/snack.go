package handler

import (
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func GetSnacks(c *fiber.Ctx) error {
	var snacks model.Snacks
	if err := database.DB.Where("active = ?", true).Order("price asc").Find(&snacks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách bắp nước", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, snacks)
}
