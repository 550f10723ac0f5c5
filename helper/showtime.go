package helper

import (
	"cinema_booking/database"
	"cinema_booking/model"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron

func StartShowtimeScheduler() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 5 phút (không cần mỗi phút)
	_, err := scheduler.AddFunc("*/5 * * * *", updateExpiredShowtimes)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	scheduler.Start()
	log.Println("Scheduler suất chiếu đã khởi động (mỗi 5 phút)")
}

func updateExpiredShowtimes() {
	now := time.Now()
	result := database.DB.Model(&model.Showtime{}).
		Where("status = ? AND end_time < ?", "available", now).
		Update("status", "expired")

	if result.Error != nil {
		log.Printf("Lỗi cập nhật suất chiếu: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã cập nhật %d suất chiếu thành 'expired'", result.RowsAffected)
	}
}

// Dừng scheduler khi tắt server
func StopShowtimeScheduler() {
	if scheduler != nil {
		scheduler.Stop()
		log.Println("Scheduler suất chiếu đã dừng")
	}
}
