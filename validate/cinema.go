package validate

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func CreateCinema() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, err)
		}

		var input model.CreateCinemaInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Không thể phân tích yêu cầu: %s", err.Error()),
			})
		}

		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var existing int64
		database.DB.Model(&model.Cinema{}).
			Where("name = ? AND province = ?", input.Name, input.Province).
			Count(&existing)
		if existing > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Rạp đã tồn tại trong tỉnh này", nil, "name")
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EditCinema(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, err)
		}

		var input model.EditCinemaInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("input", input)
		return GetById(key)(c)
	}
}
