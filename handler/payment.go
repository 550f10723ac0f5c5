package handler

import (
	"cinema_booking/booking"
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/inventory"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreatePayment tạo URL thanh toán VNPay cho một hóa đơn PENDING
func CreatePayment(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreatePaymentInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	order, _ := c.Locals("order").(*model.Order)

	paymentCode := fmt.Sprintf("PAY_%s_%d", time.Now().Format("20060102"), rand.Intn(1000))

	// VNPAY URL
	vnpay := NewVNPay()
	req := model.PaymentRequest{
		Amount:    int64(order.TotalAmount),
		OrderInfo: fmt.Sprintf("Thanh toán đơn hàng %d - Vé xem phim", order.ID),
		TxnRef:    paymentCode,
		IPAddr:    c.IP(),
	}

	paymentUrl, err := vnpay.BuildPaymentUrl(req)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tạo payment URL", err)
	}

	// Ghi giao dịch PENDING để callback tra ngược về đơn
	payment := model.Payment{
		OrderId:     input.OrderId,
		Amount:      order.TotalAmount,
		PaymentCode: paymentCode,
		Status:      constants.PAYMENT_PENDING,
		Method:      input.Method,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Tạo thanh toán thành công",
		"paymentUrl":  paymentUrl,
		"paymentCode": paymentCode,
		"nextStep":    "Hoàn tất thanh toán",
	})
}

// settleFromGateway đối chiếu kết quả gateway qua coordinator: số tiền phải
// khớp và hold còn hạn thì ghế mới sang BOOKED, hóa đơn mới sang PAID
func settleFromGateway(result model.PaymentResponse, method string) (*model.Order, error) {
	var payment model.Payment
	if err := database.DB.Where("payment_code = ?", result.TxnRef).First(&payment).Error; err != nil {
		return nil, errors.New("không tìm thấy giao dịch " + result.TxnRef)
	}

	order, err := Coord.ConfirmPayment(booking.PaymentNotice{
		InvoiceId:   payment.OrderId,
		Amount:      float64(result.Amount),
		Success:     result.IsSuccess,
		ProviderTxn: result.TxnRef,
		Method:      method,
		PaidAt:      time.Now(),
	})
	if order != nil {
		seatIds := make([]uint, 0, len(order.Tickets))
		for _, t := range order.Tickets {
			seatIds = append(seatIds, t.SeatId)
		}
		syncAndBroadcast(order.ShowtimeID, seatIds)
	}
	return order, err
}

func VNPayCallback(c *fiber.Ctx) error {
	vnpay := NewVNPay()
	queryString := c.OriginalURL()
	query, _ := url.ParseQuery(queryString)

	result := vnpay.VerifyReturnUrl(query)
	order, err := settleFromGateway(result, "VNPAY")

	appUrl := os.Getenv("APP_URL")
	switch {
	case err == nil && order != nil && order.Status == constants.ORDER_PAID:
		return c.Redirect(fmt.Sprintf("%s/success?orderId=%d", appUrl, order.ID))
	case errors.Is(err, booking.ErrPaymentMismatch) && order != nil:
		return c.Redirect(fmt.Sprintf("%s/payment-review?orderId=%d", appUrl, order.ID))
	case errors.Is(err, inventory.ErrHoldExpired):
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=hold_expired", appUrl))
	default:
		return c.Redirect(fmt.Sprintf("%s/payment-failed?reason=%s", appUrl, result.Message))
	}
}

func VNPayIPN(c *fiber.Ctx) error {
	vnpay := NewVNPay()

	// Parse POST body as query
	body := c.Body()
	query, _ := url.ParseQuery(string(body))
	result := vnpay.VerifyIPN(query)

	_, err := settleFromGateway(result, "VNPAY")
	if err != nil && !errors.Is(err, booking.ErrInvoiceNotPending) {
		// ErrInvoiceNotPending = IPN lặp lại sau khi đã chốt, vẫn trả 00
		return c.JSON(fiber.Map{
			"RspCode": "01",
			"Message": "Failed",
		})
	}

	return c.JSON(fiber.Map{
		"RspCode": "00",
		"Message": "Success",
	})
}
