package validate

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateRoom() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := requireAdmin(c); err != nil {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, err)
		}

		var input model.CreateScreeningRoomInput
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

		// Kiểm tra Cinema tồn tại
		var cinema model.Cinema
		if err := database.DB.First(&cinema, input.CinemaId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Rạp chiếu phim không tồn tại", fmt.Errorf("cinemaId not found"), "cinemaId")
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		// Hàng ghế phải là chuỗi chữ cái liên tiếp bắt đầu từ A, không lặp
		validate.RegisterValidation("rowsRegex", func(fl validator.FieldLevel) bool {
			rows := fl.Field().String()
			if len(rows) == 0 {
				return false
			}
			for i, r := range rows {
				if r != rune('A'+i) {
					return false
				}
			}
			return true
		})
		if err := validate.Var(input.Row, "rowsRegex"); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Hàng ghế phải là các chữ cái liên tiếp bắt đầu từ A", nil, "row")
		}

		if input.Columns < 4 || input.Columns > 24 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Số cột phải từ 4 đến 24", nil, "columns")
		}

		// Cột VIP (nếu có) phải nằm trong dải cột của phòng
		if input.VipColMin > 0 || input.VipColMax > 0 {
			if input.VipColMin < 1 || input.VipColMax > input.Columns || input.VipColMin > input.VipColMax {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Cột VIP không hợp lệ", nil, "vipColMin")
			}
		}

		if input.RoomNumber == 0 {
			var maxRoomNumber uint
			err := database.DB.Model(&model.Room{}).
				Where("cinema_id = ?", input.CinemaId).
				Select("COALESCE(MAX(room_number), 0) + 1").
				Scan(&maxRoomNumber).Error
			if err != nil {
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tính số phòng tự động", err)
			}
			input.RoomNumber = maxRoomNumber
		} else {
			// Kiểm tra RoomNumber không trùng trong cùng Cinema nếu cung cấp thủ công
			var existingRoom model.Room
			if err := database.DB.Where("cinema_id = ? AND room_number = ?", input.CinemaId, input.RoomNumber).First(&existingRoom).Error; err == nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Số phòng đã tồn tại trong rạp này", fmt.Errorf("roomNumber already exists"), "roomNumber")
			}
		}

		// Tạo tên phòng: Room <RoomNumber> - <Cinema.Name>
		roomName := fmt.Sprintf("Room %d - %s", input.RoomNumber, strings.TrimSpace(cinema.Name))

		c.Locals("inputCreateScreeningRoom", input)
		c.Locals("roomName", roomName)
		return c.Next()
	}
}
