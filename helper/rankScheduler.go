package helper

import (
	"cinema_booking/database"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var rankScheduler gocron.Scheduler

// StartRankScheduler chạy job tính lại hạng thành viên mỗi ngày lúc 00:05.
// Điểm cộng theo từng đơn đã cập nhật ngay khi thanh toán, job này chỉ
// vá các trường hợp chỉnh mốc hạng hoặc chỉnh điểm thủ công.
func StartRankScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler hạng thành viên: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() {
			RecalculateAllRanks(database.DB)
		}),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job hạng thành viên: %v", err)
		return
	}

	rankScheduler = s
	s.Start()
	log.Println("Scheduler hạng thành viên đã khởi động (hằng ngày 00:05)")
}

func StopRankScheduler() {
	if rankScheduler != nil {
		if err := rankScheduler.Shutdown(); err != nil {
			log.Printf("Lỗi dừng scheduler hạng thành viên: %v", err)
		}
	}
}
