package validate

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func EditRank(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, err)
		}

		var input model.EditRankInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if input.MinPoints != nil && input.MaxPoints != nil && *input.MaxPoints < *input.MinPoints {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Điểm tối đa phải lớn hơn điểm tối thiểu", nil, "maxPoints")
		}

		c.Locals("input", input)
		return GetById(key)(c)
	}
}
