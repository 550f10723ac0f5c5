package validate

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateShowtime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, err)
		}

		var input model.CreateShowtimeInput
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

		// Phòng phải tồn tại và đang hoạt động
		var room model.Room
		if err := database.DB.First(&room, input.RoomId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Phòng chiếu không tồn tại", nil, "roomId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if room.Status != "available" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Phòng chiếu đang bảo trì hoặc đã đóng", nil, "roomId")
		}

		// Không cho hai suất chiếu chồng giờ trong cùng phòng
		var overlap int64
		if err := database.DB.Model(&model.Showtime{}).
			Where("room_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				input.RoomId, "available", input.EndTime, input.StartTime).
			Count(&overlap).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if overlap > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Phòng đã có suất chiếu trong khung giờ này", nil, "startTime")
		}

		c.Locals("input", input)
		c.Locals("room", &room)
		return c.Next()
	}
}
