package helper

import (
	"cinema_booking/inventory"
	"cinema_booking/model"
	"errors"

	"gorm.io/gorm"
)

func CreateShowtimeSeats(tx *gorm.DB, showtimeId uint, roomId uint) error {
	var seats []model.Seat

	// Lấy danh sách ghế trong phòng
	if err := tx.Where("room_id = ?", roomId).Find(&seats).Error; err != nil {
		return err
	}

	if len(seats) == 0 {
		return errors.New("phòng chưa có ghế")
	}

	// Tạo danh sách showtime_seat
	var showtimeSeats []model.ShowtimeSeat

	for _, seat := range seats {
		showtimeSeats = append(showtimeSeats, model.ShowtimeSeat{
			ShowtimeId: showtimeId,
			SeatId:     seat.ID,
			SeatRow:    seat.Row,
			SeatNumber: seat.Column,
			SeatTypeId: seat.SeatTypeId,
			Status:     inventory.SeatAvailable,
			HeldBy:     "",
			ExpiredAt:  nil,
		})
	}

	// Insert hàng loạt → nhanh hơn 100x
	return tx.Create(&showtimeSeats).Error
}

// RegisterShowtimeInventory nạp sơ đồ ghế của một suất vào kho giữ chỗ
// trong bộ nhớ. Gọi khi tạo suất mới và khi server khởi động lại.
func RegisterShowtimeInventory(db *gorm.DB, store *inventory.Store, showtimeId uint, roomId uint) error {
	var seats []model.Seat
	if err := db.Where("room_id = ?", roomId).Find(&seats).Error; err != nil {
		return err
	}

	invSeats := make([]inventory.Seat, 0, len(seats))
	for _, seat := range seats {
		invSeats = append(invSeats, inventory.Seat{
			SeatId:   seat.ID,
			CoupleId: seat.CoupleId,
			Active:   seat.IsAvailable,
		})
	}
	store.RegisterShowtime(showtimeId, invSeats)

	// Suất đã có vé bán (server restart) thì dựng lại trạng thái BOOKED
	var bookedSeats []struct {
		SeatId  uint
		OrderId uint
	}
	if err := db.Model(&model.Ticket{}).
		Select("tickets.seat_id, tickets.order_id").
		Joins("JOIN orders ON orders.id = tickets.order_id").
		Where("tickets.showtime_id = ? AND orders.status = ?", showtimeId, "PAID").
		Scan(&bookedSeats).Error; err != nil {
		return err
	}
	for _, b := range bookedSeats {
		store.RestoreBooked(showtimeId, b.SeatId, b.OrderId)
	}
	return nil
}

// SyncSeatMirror ghi trạng thái ghế từ kho bộ nhớ xuống bảng showtime_seats.
// Chỉ là bản chiếu phục vụ truy vấn danh sách, không phải nguồn chân lý.
func SyncSeatMirror(db *gorm.DB, showtimeId uint, seatIds []uint, view inventory.SeatView) error {
	if len(seatIds) == 0 {
		return nil
	}
	return db.Model(&model.ShowtimeSeat{}).
		Where("showtime_id = ? AND seat_id IN ?", showtimeId, seatIds).
		Updates(map[string]interface{}{
			"status":     view.Status,
			"held_by":    view.HeldBy,
			"expired_at": view.ExpiredAt,
		}).Error
}
