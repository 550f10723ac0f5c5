package handler

import (
	"cinema_booking/booking"
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Coord điều phối đặt vé, được dựng một lần trong InitBooking sau khi DB sẵn sàng
var Coord *booking.Coordinator

func InitBooking() {
	db := database.DB
	Coord = booking.New(
		SeatStore,
		&booking.GormCatalog{DB: db},
		&booking.GormInvoiceRepo{DB: db},
		booking.WithNotifier(notifyBookingPaid),
		booking.WithRankRecalc(func(customerId uint) {
			if err := helper.RecalculateCustomerRank(database.DB, customerId); err != nil {
				log.Printf("Lỗi tính lại hạng khách %d: %v", customerId, err)
			}
		}),
	)
}

// notifyBookingPaid gửi email xác nhận kèm QR vé, fire-and-forget
func notifyBookingPaid(order *model.Order) {
	email := order.Email
	if email == "" && order.CustomerID != nil {
		var customer model.Customer
		if err := database.DB.First(&customer, *order.CustomerID).Error; err == nil {
			email = customer.Email
		}
	}
	if email == "" {
		return
	}

	var showtime model.Showtime
	database.DB.Preload("Room").Preload("Room.Cinema").First(&showtime, order.ShowtimeID)
	withShowtime := *order
	withShowtime.Showtime = showtime

	seatLabels := make([]string, 0, len(order.Tickets))
	ticketCodes := make([]string, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		var seat model.Seat
		if err := database.DB.First(&seat, t.SeatId).Error; err == nil {
			seatLabels = append(seatLabels, fmt.Sprintf("%s%d", seat.Row, seat.Column))
		}
		ticketCodes = append(ticketCodes, t.TicketCode)
	}

	snackLines := make([]string, 0, len(order.Snacks))
	for _, line := range order.Snacks {
		var snack model.Snack
		if err := database.DB.First(&snack, line.SnackId).Error; err == nil {
			snackLines = append(snackLines, fmt.Sprintf("%s x%d", snack.Name, line.Quantity))
		}
	}

	utils.SendBookingConfirmationEmail(email, utils.BookingConfirmationData{
		OrderCode:   order.PublicCode,
		TheaterName: helper.TheaterName(&withShowtime),
		Showtime:    showtime.StartTime.Format("02/01/2006 15:04"),
		Seats:       strings.Join(seatLabels, ", "),
		Snacks:      strings.Join(snackLines, ", "),
		TotalAmount: order.TotalAmount,
		DetailLink:  fmt.Sprintf("%s/don-hang/%s", frontendBase(), order.PublicCode),
	}, ticketCodes)
}

func frontendBase() string {
	return "http://localhost:5173"
}

// CreateBooking nhận một lượt đặt vé: giữ ghế nguyên tử, tính tiền và trả
// hóa đơn PENDING kèm hạn thanh toán
func CreateBooking(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	showtime, _ := c.Locals("showtime").(*model.Showtime)

	var customerId *uint
	if customer, ok := c.Locals("customer").(*model.Customer); ok && customer != nil {
		customerId = &customer.ID
	}

	order, err := Coord.RequestBooking(showtime.ID, input, customerId)
	if err != nil {
		return seatStateError(c, err)
	}

	seatIds := make([]uint, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		seatIds = append(seatIds, t.SeatId)
	}
	syncAndBroadcast(showtime.ID, seatIds)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"order":     order,
		"expiresAt": order.ExpiresAt,
		"heldBy":    order.HeldBy,
	})
}

// CancelBooking cho phép chủ đơn hủy hóa đơn PENDING và trả ghế ngay
func CancelBooking(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	order, err := (&booking.GormInvoiceRepo{DB: database.DB}).GetInvoice(uint(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
	}

	// Chủ đơn (khách đăng nhập) hoặc admin mới hủy được
	customer, _ := c.Locals("customer").(*model.Customer)
	isOwner := customer != nil && order.CustomerID != nil && *order.CustomerID == customer.ID
	isAdmin := customer != nil && customer.Role == constants.ROLE_ADMIN
	if !isOwner && !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, nil)
	}

	if err := Coord.ReleaseBooking(order.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Không thể hủy đơn này", err)
	}

	seatIds := make([]uint, 0, len(order.Tickets))
	for _, t := range order.Tickets {
		seatIds = append(seatIds, t.SeatId)
	}
	syncAndBroadcast(order.ShowtimeID, seatIds)

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã hủy đơn và trả ghế")
}
