package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/inventory"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateShowtime tạo suất chiếu, sinh bản chiếu ghế trong DB và nạp sơ đồ
// ghế vào kho giữ chỗ để bắt đầu nhận hold
func CreateShowtime(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateShowtimeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	room, ok := c.Locals("room").(*model.Room)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	price := input.Price
	if price <= 0 {
		// 0 = giá động theo định dạng + khung giờ vàng + cuối tuần
		price = helper.CalculatePrice(input.StartTime, input.Format, input.StartTime)
	}

	showtime := model.Showtime{
		PublicCode: "ST-" + uuid.New().String()[:6],
		RoomId:     room.ID,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Format:     input.Format,
		Price:      price,
		Status:     "available",
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&showtime).Error; err != nil {
			return err
		}
		return helper.CreateShowtimeSeats(tx, showtime.ID, room.ID)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tạo suất chiếu", err)
	}

	if err := helper.RegisterShowtimeInventory(database.DB, SeatStore, showtime.ID, room.ID); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không nạp được sơ đồ ghế", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, showtime)
}

func GetShowtime(c *fiber.Ctx) error {
	filterInput := new(model.FilterShowtimeInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Showtime{}).
		Joins("JOIN rooms ON rooms.id = showtimes.room_id").
		Joins("JOIN cinemas ON cinemas.id = rooms.cinema_id")

	if filterInput.RoomId > 0 {
		condition = condition.Where("showtimes.room_id = ?", filterInput.RoomId)
	}
	if filterInput.CinemaId > 0 {
		condition = condition.Where("cinemas.id = ?", filterInput.CinemaId)
	}
	if filterInput.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", filterInput.StartDate)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "startDate không hợp lệ (YYYY-MM-DD)", err)
		}
		startOfDay := startDate.Truncate(24 * time.Hour)
		condition = condition.Where("showtimes.start_time >= ?", startOfDay)
	}
	if filterInput.EndDate != "" {
		endDate, err := time.Parse("2006-01-02", filterInput.EndDate)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "endDate không hợp lệ (YYYY-MM-DD)", err)
		}
		endOfDay := endDate.Truncate(24 * time.Hour).Add(24*time.Hour - time.Second)
		condition = condition.Where("showtimes.start_time <= ?", endOfDay)
	}

	var total int64
	if err := condition.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đếm dữ liệu", err)
	}

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var showtimes []model.Showtime
	if err := condition.
		Preload("Room").
		Preload("Room.Cinema").
		Order("showtimes.start_time ASC").
		Find(&showtimes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy dữ liệu", err)
	}

	responses := []fiber.Map{}
	for _, s := range showtimes {
		var totalSeats int64
		db.Model(&model.ShowtimeSeat{}).
			Where("showtime_id = ?", s.ID).
			Count(&totalSeats)

		var bookedSeats int64
		db.Model(&model.ShowtimeSeat{}).
			Where("showtime_id = ? AND status = ?", s.ID, inventory.SeatBooked).
			Count(&bookedSeats)

		fillRate := 0.0
		if totalSeats > 0 {
			fillRate = float64(bookedSeats) / float64(totalSeats) * 100
		}

		responses = append(responses, fiber.Map{
			"id":          s.ID,
			"publicCode":  s.PublicCode,
			"room":        s.Room,
			"startTime":   s.StartTime,
			"endTime":     s.EndTime,
			"format":      s.Format,
			"price":       s.Price,
			"status":      showingStatus(&s),
			"totalSeats":  totalSeats,
			"bookedSeats": bookedSeats,
			"fillRate":    fillRate,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       responses,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: total,
	})
}

// showingStatus trạng thái thời gian thực theo múi giờ rạp (+07:00)
func showingStatus(s *model.Showtime) string {
	currentTime := time.Now().In(time.FixedZone("ICT", 7*3600))
	switch {
	case s.StartTime.After(currentTime):
		return "UPCOMING"
	case s.EndTime.Before(currentTime):
		return "ENDED"
	default:
		return "ONGOING"
	}
}

func GetShowtimeById(c *fiber.Ctx) error {
	showtimeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var showtime model.Showtime
	if err := database.DB.
		Preload("Room").
		Preload("Room.Cinema").
		First(&showtime, showtimeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Suất chiếu không tồn tại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":         showtime.ID,
		"publicCode": showtime.PublicCode,
		"roomId":     showtime.RoomId,
		"room":       showtime.Room,
		"startTime":  showtime.StartTime,
		"endTime":    showtime.EndTime,
		"format":     showtime.Format,
		"price":      showtime.Price,
		"status":     showingStatus(&showtime),
	})
}

func GetShowtimeByPublicCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var showtime model.Showtime
	if err := database.DB.
		Preload("Room").
		Preload("Room.Cinema").
		Where("public_code = ?", code).
		First(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy suất chiếu", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, showtime)
}

// DeleteShowtime xóa suất chưa bán vé và gỡ sơ đồ ghế khỏi kho giữ chỗ
func DeleteShowtime(c *fiber.Ctx) error {
	showtimeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var soldTickets int64
	if err := database.DB.Model(&model.Ticket{}).
		Where("showtime_id = ? AND status = ?", showtimeId, constants.TICKET_ISSUED).
		Count(&soldTickets).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if soldTickets > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Suất chiếu đã bán vé, không thể xóa", nil)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("showtime_id = ?", showtimeId).Delete(&model.ShowtimeSeat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Showtime{}, showtimeId).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể xóa suất chiếu", err)
	}

	SeatStore.DropShowtime(uint(showtimeId))

	return utils.SuccessResponse(c, fiber.StatusOK, showtimeId)
}
