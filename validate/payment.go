package validate

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment kiểm tra đơn trước khi tạo URL thanh toán: đơn phải tồn tại,
// còn PENDING và hold ghế chưa hết hạn
func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreatePaymentInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var order model.Order
		if err := database.DB.First(&order, input.OrderId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		if order.Status != constants.ORDER_PENDING {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng không ở trạng thái chờ thanh toán", nil)
		}
		if order.ExpiresAt != nil && time.Now().After(*order.ExpiresAt) {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Hết thời gian giữ ghế, vui lòng đặt lại", nil, constants.KEY_HOLD_EXPIRED)
		}

		c.Locals("input", input)
		c.Locals("order", &order)
		return c.Next()
	}
}
