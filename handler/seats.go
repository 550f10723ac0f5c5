package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/inventory"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SeatStore là nguồn chân lý trạng thái ghế theo suất, sống trong bộ nhớ.
// Bảng showtime_seats chỉ là bản chiếu phục vụ truy vấn danh sách.
var SeatStore = inventory.NewStore()

type SeatUI struct {
	Id        uint       `json:"id"`
	Label     string     `json:"label"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	HeldBy    string     `json:"heldBy,omitempty"`
	ExpiredAt *time.Time `json:"expiredAt,omitempty"`
	CoupleId  *uint      `json:"coupleId,omitempty"`
	Price     float64    `json:"price"`
}

// BuildSeatMap ghép sơ đồ ghế từ DB với trạng thái sống trong SeatStore,
// nhóm theo hàng để client vẽ phòng
func BuildSeatMap(showtimeId uint) (map[string][]SeatUI, error) {
	db := database.DB

	var showtime model.Showtime
	if err := db.First(&showtime, showtimeId).Error; err != nil {
		return nil, err
	}

	var seats []model.ShowtimeSeat
	if err := db.
		Preload("Seat").
		Preload("Seat.SeatType").
		Where("showtime_id = ?", showtimeId).
		Find(&seats).Error; err != nil {
		return nil, err
	}

	live := make(map[uint]inventory.SeatView)
	if views, err := SeatStore.Snapshot(showtimeId); err == nil {
		for _, v := range views {
			live[v.SeatId] = v
		}
	}

	result := make(map[string][]SeatUI)
	for _, s := range seats {
		ui := SeatUI{
			Id:        s.SeatId,
			Label:     fmt.Sprintf("%s%d", s.Seat.Row, s.Seat.Column),
			Type:      s.Seat.SeatType.Type,
			Status:    s.Status,
			HeldBy:    s.HeldBy,
			ExpiredAt: s.ExpiredAt,
			CoupleId:  s.Seat.CoupleId,
			Price:     showtime.Price * s.Seat.SeatType.PriceModifier,
		}
		// Trạng thái sống thắng bản chiếu DB
		if v, ok := live[s.SeatId]; ok {
			ui.Status = v.Status
			ui.HeldBy = v.HeldBy
			ui.ExpiredAt = v.ExpiredAt
		}
		result[s.Seat.Row] = append(result[s.Seat.Row], ui)
	}
	return result, nil
}

func GetSeatsByShowtime(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	seatMap, err := BuildSeatMap(uint(id))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seatMap)
}

// seatStateError dịch lỗi của kho ghế sang HTTP response kèm mã máy đọc được
func seatStateError(c *fiber.Ctx, err error) error {
	var unavail *inventory.SeatUnavailableError
	if errors.As(err, &unavail) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict,
			fmt.Sprintf("Ghế %v đã có người giữ hoặc đã bán", unavail.SeatIds), err, constants.KEY_SEAT_UNAVAILABLE)
	}
	var invalid *inventory.InvalidSeatError
	if errors.As(err, &invalid) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			fmt.Sprintf("Ghế %v không hợp lệ: %s", invalid.SeatIds, invalid.Reason), err, constants.KEY_INVALID_SEAT)
	}
	if errors.Is(err, inventory.ErrHoldExpired) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			"Hết thời gian giữ ghế, vui lòng đặt lại", err, constants.KEY_HOLD_EXPIRED)
	}
	if errors.Is(err, inventory.ErrShowtimeUnknown) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
}

func holderFromContext(c *fiber.Ctx, sessionId string) string {
	customer, _ := c.Locals("customer").(*model.Customer)
	if customer != nil {
		return fmt.Sprintf("USER_%d", customer.ID)
	}
	if sessionId != "" {
		return sessionId
	}
	return "GUEST_" + uuid.New().String()
}

func HoldSeat(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.HoldSeatsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	showtime, _ := c.Locals("showtime").(*model.Showtime)

	heldBy := holderFromContext(c, input.SessionId)

	// Ghế đôi được bổ sung nửa còn lại trước khi giữ
	seatIds, err := SeatStore.ExpandPairs(showtime.ID, input.SeatIds)
	if err != nil {
		return seatStateError(c, err)
	}

	expiresAt, err := SeatStore.Hold(showtime.ID, seatIds, heldBy)
	if err != nil {
		return seatStateError(c, err)
	}

	syncAndBroadcast(showtime.ID, seatIds)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"heldSeatIds": seatIds,
		"expiresAt":   expiresAt,
		"heldBy":      heldBy, // Trả về cho guest
	})
}

func ReleaseSeat(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.HoldSeatsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	showtime, _ := c.Locals("showtime").(*model.Showtime)

	heldBy := holderFromContext(c, input.SessionId)

	seatIds, err := SeatStore.ExpandPairs(showtime.ID, input.SeatIds)
	if err != nil {
		return seatStateError(c, err)
	}

	if err := SeatStore.Release(showtime.ID, seatIds, heldBy); err != nil {
		if errors.Is(err, inventory.ErrNotHolder) {
			return utils.ErrorResponse(c, fiber.StatusForbidden,
				fmt.Sprintf("Ghế không được giữ bởi bạn (heldBy: %s)", heldBy), err)
		}
		return seatStateError(c, err)
	}

	syncAndBroadcast(showtime.ID, seatIds)

	return utils.SuccessResponse(c, fiber.StatusOK, "Released")
}

func GetHeldSeatsBySession(c *fiber.Ctx) error {
	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	sessionId := c.Query("sessionId")
	if sessionId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Session ID required", nil)
	}

	views, err := SeatStore.Snapshot(uint(id))
	if err != nil {
		return seatStateError(c, err)
	}

	held := make([]inventory.SeatView, 0)
	for _, v := range views {
		if v.Status == inventory.SeatHeld && v.HeldBy == sessionId {
			held = append(held, v)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, held)
}

// syncAndBroadcast ghi bản chiếu DB rồi đẩy delta realtime. Mirror lỗi chỉ
// ghi log – trạng thái sống trong SeatStore vẫn đúng.
func syncAndBroadcast(showtimeId uint, seatIds []uint) {
	db := database.DB
	for _, seatId := range seatIds {
		view, err := SeatStore.View(showtimeId, seatId)
		if err != nil {
			continue
		}
		if err := helper.SyncSeatMirror(db, showtimeId, []uint{seatId}, view); err != nil {
			log.Printf("Lỗi sync bản chiếu ghế %d suất %d: %v", seatId, showtimeId, err)
		}
	}
	PublishSeatDelta(showtimeId, seatIds)
}

// ExpireSeats quét hold quá hạn trả ghế về AVAILABLE. Trạng thái trong
// SeatStore đã tự hết hạn "lười", job này chỉ dọn bản chiếu DB, đẩy realtime
// và đánh FAILED các hóa đơn chờ quá hạn.
func ExpireSeats() {
	reaped := SeatStore.ReapExpired()
	for showtimeId, seatIds := range reaped {
		syncAndBroadcast(showtimeId, seatIds)
	}

	// Hóa đơn PENDING quá hạn giữ ghế thì đóng luôn
	db := database.DB
	var expired []model.Order
	if err := db.Where("status = ? AND expires_at < ?", constants.ORDER_PENDING, time.Now()).
		Find(&expired).Error; err != nil {
		return
	}
	for _, order := range expired {
		if err := db.Model(&model.Order{}).Where("id = ?", order.ID).
			Update("status", constants.ORDER_FAILED).Error; err != nil {
			log.Printf("Lỗi đóng hóa đơn quá hạn %d: %v", order.ID, err)
		}
	}
}

func StartExpireSeatWorker() {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			ExpireSeats()
		}
	}()
}
