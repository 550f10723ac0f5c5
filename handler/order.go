package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func orderBreakdown(order *model.Order) helper.PriceBreakdown {
	var txns []model.Payment
	database.DB.Where("order_id = ?", order.ID).Find(&txns)

	var promo *model.Promotion
	if order.PromotionId != nil {
		var p model.Promotion
		if err := database.DB.First(&p, *order.PromotionId).Error; err == nil {
			promo = &p
		}
	}
	return helper.InvoiceBreakdown(order, txns, promo, helper.VenueNow())
}

func seatLabelsOf(order *model.Order) []string {
	labels := make([]string, 0, len(order.Tickets))
	for _, ticket := range order.Tickets {
		seat := ticket.Seat
		if seat.ID != 0 {
			labels = append(labels, fmt.Sprintf("%s%d", seat.Row, seat.Column))
		}
	}
	return labels
}

func GetMyOrders(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var orders []model.Order
	if err := database.DB.
		Preload("Tickets").
		Preload("Tickets.Seat").
		Preload("Snacks").
		Preload("Snacks.Snack").
		Preload("Showtime").
		Preload("Showtime.Room").
		Preload("Showtime.Room.Cinema").
		Where("customer_id = ? AND status IN ?", customer.ID, []string{constants.ORDER_PAID, constants.ORDER_PENDING}).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải đơn hàng", err)
	}

	response := []fiber.Map{}
	for i := range orders {
		order := &orders[i]
		breakdown := orderBreakdown(order)

		item := fiber.Map{
			"orderCode":   order.PublicCode,
			"theater":     helper.TheaterName(order),
			"showtime":    order.Showtime.StartTime.Format("02/01/2006 15:04"),
			"seats":       seatLabelsOf(order),
			"status":      order.Status,
			"ticketCount": len(order.Tickets),
			"breakdown":   breakdown,
		}
		if order.PaidAt != nil {
			item["paidAt"] = order.PaidAt.Format("02/01/2006 15:04")
		}
		if order.Status == constants.ORDER_PENDING && order.ExpiresAt != nil {
			item["expiresAt"] = order.ExpiresAt
		}
		response = append(response, item)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func loadOrderByCode(code string) (*model.Order, error) {
	var order model.Order
	err := database.DB.
		Preload("Tickets").
		Preload("Tickets.Seat").
		Preload("Snacks").
		Preload("Snacks.Snack").
		Preload("Showtime").
		Preload("Showtime.Room").
		Preload("Showtime.Room.Cinema").
		Where("public_code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderDetail trả chi tiết đơn kèm bảng giá gốc/giảm/đã trả và một QR duy
// nhất cho cả đơn (soát vé quét mã đơn, không quét từng vé)
func GetOrderDetail(c *fiber.Ctx) error {
	order, err := loadOrderByCode(c.Params("orderCode"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	if customer, ok := c.Locals("customer").(*model.Customer); ok && customer != nil {
		owned := order.CustomerID != nil && *order.CustomerID == customer.ID
		if !owned && customer.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Đơn hàng không thuộc về bạn", nil)
		}
	}

	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(order.PublicCode, 400); err != nil {
		log.Printf("Lỗi tạo QR cho đơn hàng %s: %v", order.PublicCode, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	tickets := []fiber.Map{}
	for _, ticket := range order.Tickets {
		label := ""
		if ticket.Seat.ID != 0 {
			label = fmt.Sprintf("%s%d", ticket.Seat.Row, ticket.Seat.Column)
		}
		tickets = append(tickets, fiber.Map{
			"ticketCode": ticket.TicketCode,
			"seatLabel":  label,
			"price":      ticket.Price,
			"status":     ticket.Status,
		})
	}

	snacks := []fiber.Map{}
	for _, line := range order.Snacks {
		snacks = append(snacks, fiber.Map{
			"name":     line.Snack.Name,
			"quantity": line.Quantity,
			"price":    line.Price,
		})
	}

	response := fiber.Map{
		"orderCode":      order.PublicCode,
		"theater":        helper.TheaterName(order),
		"showtime":       order.Showtime.StartTime.Format("15:04 - 02/01/2006"),
		"format":         order.Showtime.Format,
		"seats":          seatLabelsOf(order),
		"tickets":        tickets,
		"snacks":         snacks,
		"breakdown":      orderBreakdown(order),
		"paymentMethod":  order.PaymentMethod,
		"paymentFlagged": order.PaymentFlagged,
		"customerName":   order.CustomerName,
		"phone":          order.Phone,
		"email":          order.Email,
		"qrCode":         qrBase64,
		"status":         order.Status,
	}
	if order.PaidAt != nil {
		response["paidAt"] = order.PaidAt.Format("15:04 - 02/01/2006")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// refundPercentFor chính sách hoàn tiền theo thời gian còn lại đến suất chiếu:
// >=2h hoàn 100%, >=1h hoàn 50%, muộn hơn thì không hủy được
func refundPercentFor(startTime time.Time) (float64, bool) {
	hoursBefore := time.Until(startTime).Hours()
	switch {
	case hoursBefore >= 2:
		return 1.0, true
	case hoursBefore >= 1:
		return 0.5, true
	default:
		return 0, false
	}
}

// CancelPaidOrder hủy đơn đã thanh toán theo chính sách hoàn tiền, trả ghế
// về AVAILABLE và broadcast cho các client đang xem sơ đồ ghế
func CancelPaidOrder(c *fiber.Ctx) error {
	order, err := loadOrderByCode(c.Params("orderCode"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy đơn hàng", err)
	}

	customer, _ := c.Locals("customer").(*model.Customer)
	if customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}
	owned := order.CustomerID != nil && *order.CustomerID == customer.ID
	if !owned && customer.Role != constants.ROLE_ADMIN {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Đơn hàng không thuộc về bạn", nil)
	}

	if order.Status != constants.ORDER_PAID {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Chỉ hủy được đơn đã thanh toán", nil)
	}

	refundPercent, ok := refundPercentFor(order.Showtime.StartTime)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Quá muộn để hủy vé. Không thể hoàn tiền.", nil)
	}
	refundAmount := order.TotalAmount * refundPercent

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":       constants.ORDER_CANCELLED,
			"cancelled_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Ticket{}).
			Where("order_id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":       constants.TICKET_CANCELLED,
				"cancelled_at": now,
			}).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Hủy vé thất bại", err)
	}

	freed, err := SeatStore.CancelBooking(order.ShowtimeID, order.ID)
	if err != nil {
		log.Printf("Lỗi trả ghế khi hủy đơn %s: %v", order.PublicCode, err)
	} else {
		syncAndBroadcast(order.ShowtimeID, freed)
	}

	if order.Email != "" {
		utils.SendCancellationEmail(order.Email, utils.CancellationData{
			OrderCode:    order.PublicCode,
			TheaterName:  helper.TheaterName(order),
			Showtime:     order.Showtime.StartTime.Format("15:04 - 02/01/2006"),
			Seats:        strings.Join(seatLabelsOf(order), ", "),
			RefundAmount: refundAmount,
			CancelledAt:  now.Format("15:04 - 02/01/2006"),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":        "Hủy vé thành công",
		"refund_amount":  refundAmount,
		"refund_percent": refundPercent * 100,
	})
}
