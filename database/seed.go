package database

import (
	"cinema_booking/constants"
	"cinema_booking/model"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func SeedData(db *gorm.DB) {
	seatTypes := []model.SeatType{
		{Type: constants.SEAT_TYPE_NORMAL, PriceModifier: 1},
		{Type: constants.SEAT_TYPE_VIP, PriceModifier: 1.2},
		{Type: constants.SEAT_TYPE_COUPLE, PriceModifier: 2},
	}
	for i := range seatTypes {
		if err := db.Where("type = ?", seatTypes[i].Type).FirstOrCreate(&seatTypes[i]).Error; err != nil {
			log.Println("failed to seed data for seat type:", seatTypes[i].Type, "error:", err)
		}
	}

	// Hạng thành viên: MEMBER là hạng sàn, luôn khớp với khách 0 điểm
	ranks := []model.MembershipRank{
		{Name: "MEMBER", MinPoints: 0, MaxPoints: intPtr(499), TicketDiscountPercent: 0, SnackDiscountPercent: 0, PointMultiplier: 1},
		{Name: "SILVER", MinPoints: 500, MaxPoints: intPtr(1999), TicketDiscountPercent: 5, SnackDiscountPercent: 0, PointMultiplier: 1.2, OnlyNormalSeat: true},
		{Name: "GOLD", MinPoints: 2000, MaxPoints: intPtr(4999), TicketDiscountPercent: 10, SnackDiscountPercent: 5, PointMultiplier: 1.5},
		{Name: "DIAMOND", MinPoints: 5000, TicketDiscountPercent: 15, SnackDiscountPercent: 10, PointMultiplier: 2},
	}
	for i := range ranks {
		if err := db.Where("name = ?", ranks[i].Name).FirstOrCreate(&ranks[i]).Error; err != nil {
			log.Println("failed to seed data for rank:", ranks[i].Name, "error:", err)
		}
	}

	snacks := []model.Snack{
		{Name: "Bắp rang bơ lớn", Price: 65000, Active: true},
		{Name: "Bắp rang bơ vừa", Price: 45000, Active: true},
		{Name: "Nước ngọt lớn", Price: 35000, Active: true},
		{Name: "Combo bắp nước", Price: 85000, Active: true},
	}
	for i := range snacks {
		db.Where("name = ?", snacks[i].Name).FirstOrCreate(&snacks[i])
	}

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.FixedZone("ICT", 7*3600))
	end := start.AddDate(0, 3, 0)
	promotions := []model.Promotion{
		{Code: "HELLO10", Name: "Chào bạn mới giảm 10%", DiscountValue: 0.1, StartDate: &start, EndDate: &end, Status: constants.PROMOTION_ACTIVE},
		{Code: "GIAM50K", Name: "Giảm thẳng 50.000đ", DiscountValue: 50000, StartDate: &start, EndDate: &end, Status: constants.PROMOTION_ACTIVE},
	}
	for i := range promotions {
		db.Where("code = ?", promotions[i].Code).FirstOrCreate(&promotions[i])
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	hashPassword := string(bytes)

	customers := []model.Customer{
		{Email: "demo@cinema.vn", Phone: "0369757203", Password: hashPassword, UserName: "demo", Points: 0},
	}
	for _, customer := range customers {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Customer{Email: customer.Email}).FirstOrCreate(&customer).Error; err != nil {
			log.Println("failed to seed data for customer:", customer.Email, "error:", err)
		}
	}
}
