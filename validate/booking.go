package validate

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// showtimeFromParam đọc và kiểm tra suất chiếu từ path param
func showtimeFromParam(c *fiber.Ctx, key string) (*model.Showtime, error) {
	params := c.Params(key)
	valueKey, err := strconv.Atoi(params)
	if err != nil {
		return nil, errors.New(constants.DATA_INPUT_IS_NOT_NUMBER)
	}

	var showtime model.Showtime
	if err := database.DB.First(&showtime, valueKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("suất chiếu không tồn tại")
		}
		return nil, err
	}
	return &showtime, nil
}

// CreateBooking kiểm tra đầu vào của một lượt đặt vé trước khi vào coordinator
func CreateBooking(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		showtime, err := showtimeFromParam(c, key)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		if showtime.Status != "available" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Suất chiếu đã đóng bán", nil)
		}
		if time.Now().After(showtime.StartTime) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Suất chiếu đã bắt đầu", nil)
		}

		var input model.CreateBookingInput
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

		// Khách vãng lai bắt buộc để lại email nhận vé
		customerId, _ := c.Locals("customerId").(uint)
		if customerId == 0 && input.Email == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Khách vãng lai cần cung cấp email nhận vé", nil)
		}

		c.Locals("input", input)
		c.Locals("showtime", showtime)
		return c.Next()
	}
}

// HoldSeats kiểm tra đầu vào giữ/trả ghế
func HoldSeats(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		showtime, err := showtimeFromParam(c, key)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}

		var input model.HoldSeatsInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.Locals("input", input)
		c.Locals("showtime", showtime)
		return c.Next()
	}
}
