package router

import (
	"cinema_booking/handler"
	"cinema_booking/middleware"
	"cinema_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterCustomer(), handler.Register)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)

	khachhang := v1.Group("/khach-hang")
	khachhang.Get("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetProfile)
	khachhang.Put("/me", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.EditProfile)
	khachhang.Post("/change-password", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.ChangePassword)

	rap := v1.Group("/rap")
	rap.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCinemas)
	rap.Get("/:slug", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetCinemaBySlug)
	rap.Get("/:cinemaId/phong", handler.GetRoomsByCinemaId)
	// Admin
	rap.Post("/", middleware.Protected(), validate.CreateCinema(), handler.CreateCinema)
	rap.Put("/:cinemaId", middleware.Protected(), validate.EditCinema("cinemaId"), handler.EditCinema)
	rap.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteCinema)

	phong := v1.Group("/phong-chieu")
	phong.Get("/:roomId", handler.GetRoomById)
	phong.Post("/", middleware.Protected(), validate.CreateRoom(), handler.CreateRoom)
	phong.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteRoom)

	lichchieu := v1.Group("/lich-chieu")
	lichchieu.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetShowtime)
	lichchieu.Get("/dat-ve/:code", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetShowtimeByPublicCode)
	lichchieu.Post("/", middleware.Protected(), validate.CreateShowtime(), handler.CreateShowtime)
	lichchieu.Delete("/:showtimeId", middleware.Protected(), validate.Admin(), validate.GetById("showtimeId"), handler.DeleteShowtime)
	lichchieu.Get("/:showtimeId", validate.GetById("showtimeId"), handler.GetShowtimeById)

	// Trạng thái ghế theo suất chiếu
	lichchieu.Get("/:showtimeId/ghe", validate.GetById("showtimeId"), handler.GetSeatsByShowtime)
	lichchieu.Get("/:showtimeId/ghe-giu", validate.GetById("showtimeId"), handler.GetHeldSeatsBySession)
	lichchieu.Post("/:showtimeId/giu-ghe", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.HoldSeats("showtimeId"), handler.HoldSeat)
	lichchieu.Post("/:showtimeId/tra-ghe", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.HoldSeats("showtimeId"), handler.ReleaseSeat)
	lichchieu.Post("/:showtimeId/dat-ve", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreateBooking("showtimeId"), handler.CreateBooking)

	// WS realtime sơ đồ ghế
	lichchieu.Get("/ghe/:id", websocket.New(handler.SeatWebsocket))

	donhang := v1.Group("/don-hang")
	donhang.Get("/", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetMyOrders)
	donhang.Get("/:orderCode", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.GetOrderDetail)
	donhang.Post("/:orderCode/huy", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.CancelPaidOrder)
	donhang.Delete("/:orderId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.GetById("orderId"), handler.CancelBooking)

	khuyenmai := v1.Group("/khuyen-mai")
	khuyenmai.Get("/", handler.GetPromotions)
	khuyenmai.Get("/check/:code", handler.CheckPromotionCode)
	khuyenmai.Post("/", middleware.Protected(), validate.CreatePromotion(), handler.CreatePromotion)
	khuyenmai.Put("/:promotionId", middleware.Protected(), validate.EditPromotion("promotionId"), handler.EditPromotion)
	khuyenmai.Delete("/", middleware.Protected(), validate.Delete(), handler.DeletePromotion)

	hang := v1.Group("/hang-thanh-vien")
	hang.Get("/", handler.GetRanks)
	hang.Put("/:rankId", middleware.Protected(), validate.EditRank("rankId"), handler.EditRank)

	bapnuoc := v1.Group("/bap-nuoc")
	bapnuoc.Get("/", handler.GetSnacks)

	soatve := v1.Group("/soat-ve", middleware.Protected(), middleware.OptionalAuth(), validate.Admin())
	soatve.Post("/ve/:ticketCode", handler.CheckInTicket)
	soatve.Post("/don-hang/:orderCode", handler.CheckInOrder)

	// Server-to-Server
	app.Post("/payments", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreatePayment(), handler.CreatePayment)
	app.Get("/vnpay/return", handler.VNPayCallback) // Callback từ VNPay
	app.Post("/vnpay/ipn", handler.VNPayIPN)
}
