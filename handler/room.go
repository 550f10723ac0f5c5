package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetRoomsByCinemaId(c *fiber.Ctx) error {
	cinemaId, err := strconv.ParseUint(c.Params("cinemaId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "ID rạp chiếu phim không hợp lệ", err)
	}

	var rooms []model.Room
	if err := database.DB.
		Preload("Cinema").
		Preload("Seats").
		Preload("Seats.SeatType").
		Where("cinema_id = ?", cinemaId).
		Order("room_number ASC").
		Find(&rooms).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách phòng chiếu", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, rooms)
}

func GetRoomById(c *fiber.Ctx) error {
	roomId, err := strconv.ParseUint(c.Params("roomId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "ID phòng chiếu không hợp lệ", err)
	}

	var room model.Room
	if err := database.DB.
		Preload("Cinema").
		Preload("Seats").
		Preload("Seats.SeatType").
		First(&room, roomId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy phòng chiếu", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, room)
}

// buildRoomSeats sinh sơ đồ ghế cho phòng: VIP nằm trong dải cột cấu hình
// (từ hàng D trở đi), hàng cuối là ghế đôi nếu bật cờ. Hai ghế đôi liền kề
// dùng chung một CoupleId.
func buildRoomSeats(roomId uint, input model.CreateScreeningRoomInput, normalTypeId, vipTypeId, coupleTypeId uint) []model.Seat {
	rows := input.Row
	lastRow := string(rows[len(rows)-1])

	vipMin, vipMax := input.VipColMin, input.VipColMax
	if vipMin == 0 && vipMax == 0 {
		vipMin, vipMax = 3, input.Columns-2
	}

	// Hàng couple bỏ cột lẻ cuối để ghế luôn đủ cặp
	coupleCols := input.Columns
	if coupleCols%2 != 0 {
		coupleCols--
	}

	seats := []model.Seat{}
	for _, r := range rows {
		rowLabel := string(r)

		if rowLabel == lastRow && input.HasCoupleSeat {
			for col := 1; col <= coupleCols; col += 2 {
				coupleId := utils.Ptr(uint(uuid.New().ID()))
				seats = append(seats,
					model.Seat{
						RoomId:      roomId,
						Row:         rowLabel,
						Column:      col,
						SeatTypeId:  coupleTypeId,
						CoupleId:    coupleId,
						IsAvailable: true,
					},
					model.Seat{
						RoomId:      roomId,
						Row:         rowLabel,
						Column:      col + 1,
						SeatTypeId:  coupleTypeId,
						CoupleId:    coupleId,
						IsAvailable: true,
					},
				)
			}
			continue
		}

		for col := 1; col <= input.Columns; col++ {
			seatTypeId := normalTypeId
			if rowLabel >= "D" && col >= vipMin && col <= vipMax {
				seatTypeId = vipTypeId
			}
			seats = append(seats, model.Seat{
				RoomId:      roomId,
				Row:         rowLabel,
				Column:      col,
				SeatTypeId:  seatTypeId,
				IsAvailable: true,
			})
		}
	}
	return seats
}

func CreateRoom(c *fiber.Ctx) error {
	roomInput, ok := c.Locals("inputCreateScreeningRoom").(model.CreateScreeningRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	roomName, ok := c.Locals("roomName").(string)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	db := database.DB
	tx := db.Begin()

	newRoom := &model.Room{
		Name:          roomName,
		RoomNumber:    roomInput.RoomNumber,
		CinemaId:      roomInput.CinemaId,
		Status:        "available",
		Row:           roomInput.Row,
		HasCoupleSeat: roomInput.HasCoupleSeat,
	}
	if err := tx.Create(newRoom).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo phòng thất bại", err)
	}

	var normalType, vipType, coupleType model.SeatType
	for _, pair := range []struct {
		name string
		dst  *model.SeatType
	}{
		{constants.SEAT_TYPE_NORMAL, &normalType},
		{constants.SEAT_TYPE_VIP, &vipType},
		{constants.SEAT_TYPE_COUPLE, &coupleType},
	} {
		if err := tx.Where("type = ?", pair.name).First(pair.dst).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không tìm thấy loại ghế "+pair.name, err)
		}
	}

	seats := buildRoomSeats(newRoom.ID, roomInput, normalType.ID, vipType.ID, coupleType.ID)
	if len(seats) > 0 {
		if err := tx.Create(&seats).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo ghế thất bại", err)
		}
	}

	newRoom.Capacity = utils.Ptr(len(seats))
	if err := tx.Save(newRoom).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật sức chứa thất bại", err)
	}

	var createdRoom model.Room
	if err := tx.
		Preload("Cinema").
		Preload("Seats").
		Preload("Seats.SeatType").
		First(&createdRoom, newRoom.ID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tải thông tin phòng thất bại", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Commit thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, createdRoom)
}

func DeleteRoom(c *fiber.Ctx) error {
	arrayId, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	ids := arrayId.IDs

	tx := database.DB.Begin()

	// Phòng còn suất chiếu chưa kết thúc thì không xóa
	var activeShowtimes int64
	if err := tx.Model(&model.Showtime{}).
		Where("room_id IN ? AND end_time >= ?", ids, time.Now()).
		Count(&activeShowtimes).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi kiểm tra lịch chiếu", err)
	}
	if activeShowtimes > 0 {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
			"Không thể xóa phòng vì đang có suất chiếu sắp diễn ra",
			errors.New("active showtimes exist"), "showtimes")
	}

	if err := tx.Where("room_id IN ?", ids).Delete(&model.Seat{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi xóa dữ liệu ghế", err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&model.Room{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể xóa phòng chiếu", err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi commit giao dịch", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Xóa phòng chiếu thành công",
		"roomId":  ids,
	})
}
