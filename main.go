package main

import (
	"cinema_booking/database"
	"cinema_booking/handler"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/router"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// rebuildSeatInventory dựng lại kho ghế trong bộ nhớ từ DB khi server
// khởi động: nạp sơ đồ ghế các suất chưa kết thúc và khôi phục ghế đã bán.
func rebuildSeatInventory() {
	var showtimes []model.Showtime
	if err := database.DB.
		Where("end_time > ?", time.Now()).
		Find(&showtimes).Error; err != nil {
		log.Printf("Lỗi nạp danh sách suất chiếu: %v", err)
		return
	}

	for _, s := range showtimes {
		if err := helper.RegisterShowtimeInventory(database.DB, handler.SeatStore, s.ID, s.RoomId); err != nil {
			log.Printf("Lỗi nạp kho ghế suất %d: %v", s.ID, err)
		}
	}
	log.Printf("Đã nạp kho ghế cho %d suất chiếu", len(showtimes))
}

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	rebuildSeatInventory()
	handler.InitBooking()
	handler.StartExpireSeatWorker()
	helper.StartShowtimeScheduler()
	defer helper.StopShowtimeScheduler()
	helper.StartRankScheduler()
	defer helper.StopRankScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":8002"))
}
