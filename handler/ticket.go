package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CheckInTicket soát một vé theo mã trên QR. Vé chỉ check-in được một lần
// và chỉ trong khung từ trước giờ chiếu đến 30 phút sau khi bắt đầu.
func CheckInTicket(c *fiber.Ctx) error {
	ticketCode := c.Params("ticketCode")

	var ticket model.Ticket
	if err := database.DB.
		Preload("Seat").
		First(&ticket, "ticket_code = ?", ticketCode).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Vé không tồn tại", err)
	}

	if ticket.Status == constants.TICKET_USED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vé đã được sử dụng", nil)
	}
	if ticket.Status != constants.TICKET_ISSUED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Vé không hợp lệ", nil)
	}

	var showtime model.Showtime
	if err := database.DB.First(&showtime, ticket.ShowtimeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if time.Now().After(showtime.StartTime.Add(30 * time.Minute)) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Suất chiếu đã bắt đầu quá lâu", nil)
	}

	now := time.Now()
	if err := database.DB.Model(&ticket).Updates(map[string]interface{}{
		"status":  constants.TICKET_USED,
		"used_at": now,
	}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi cập nhật vé", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":    "Check-in thành công",
		"ticketCode": ticket.TicketCode,
		"seatLabel":  fmt.Sprintf("%s%d", ticket.Seat.Row, ticket.Seat.Column),
		"usedAt":     now.Format("02/01/2006 15:04"),
	})
}

// CheckInOrder soát cả đơn theo mã đơn hàng: check-in mọi vé ISSUED còn lại
func CheckInOrder(c *fiber.Ctx) error {
	orderCode := c.Params("orderCode")

	var order model.Order
	if err := database.DB.
		Preload("Tickets").
		Preload("Showtime").
		Where("public_code = ?", orderCode).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	if order.Status != constants.ORDER_PAID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng chưa thanh toán", nil)
	}
	if time.Now().After(order.Showtime.StartTime.Add(30 * time.Minute)) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Suất chiếu đã bắt đầu quá lâu", nil)
	}

	now := time.Now()
	checked := 0
	for _, ticket := range order.Tickets {
		if ticket.Status != constants.TICKET_ISSUED {
			continue
		}
		if err := database.DB.Model(&model.Ticket{}).
			Where("id = ?", ticket.ID).
			Updates(map[string]interface{}{
				"status":  constants.TICKET_USED,
				"used_at": now,
			}).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi cập nhật vé", err)
		}
		checked++
	}
	if checked == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn không còn vé nào để check-in", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":        "Check-in thành công",
		"orderCode":      order.PublicCode,
		"checkedTickets": checked,
	})
}
