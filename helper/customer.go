package helper

import (
	"cinema_booking/database"
	"cinema_booking/model"
	"errors"
	"log"

	"gorm.io/gorm"
)

func CheckByPhoneNumberCustomer(phoneNumber string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	if id == nil {
		if err := db.Model(&model.Customer{}).Where(model.Customer{Phone: phoneNumber}).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	if id != nil {
		if err := db.Model(&model.Customer{}).Where("phone = ? and id != ?", phoneNumber, *id).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	return count > 0, nil
}
func CheckByEmailCustomer(email string, id *uint) (bool, error) {
	db := database.DB
	var count int64
	if id == nil {
		if err := db.Model(&model.Customer{}).Where(model.Customer{Email: email}).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	if id != nil {
		if err := db.Model(&model.Customer{}).Where("email = ? and id != ?", email, *id).Count(&count).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
	}
	return count > 0, nil
}

// RecalculateCustomerRank tính lại hạng cho một khách theo điểm hiện có.
// Hàm chạy lại bao nhiêu lần cũng cho cùng kết quả nên gọi từ job nền
// lẫn ngay sau khi cộng điểm đều an toàn.
func RecalculateCustomerRank(db *gorm.DB, customerId uint) error {
	var customer model.Customer
	if err := db.First(&customer, customerId).Error; err != nil {
		return err
	}
	var ranks model.MembershipRanks
	if err := db.Order("min_points asc").Find(&ranks).Error; err != nil {
		return err
	}
	rank := CurrentRank(ranks, customer.Points)
	if rank == nil {
		return nil
	}
	if customer.RankId != nil && *customer.RankId == rank.ID {
		return nil
	}
	return db.Model(&customer).Update("rank_id", rank.ID).Error
}

// RecalculateAllRanks quét toàn bộ khách – chạy định kỳ hằng ngày để
// vá những lần trigger sau thanh toán bị lỡ
func RecalculateAllRanks(db *gorm.DB) {
	var ids []uint
	if err := db.Model(&model.Customer{}).Pluck("id", &ids).Error; err != nil {
		log.Println("Lỗi quét danh sách khách để tính hạng:", err)
		return
	}
	for _, id := range ids {
		if err := RecalculateCustomerRank(db, id); err != nil {
			log.Printf("Lỗi tính hạng cho khách %d: %v", id, err)
		}
	}
}
