package booking

import (
	"fmt"
	"time"

	"cinema_booking/constants"
	"cinema_booking/model"

	"gorm.io/gorm"
)

// GormCatalog đọc dữ liệu danh mục từ Postgres cho luồng đặt vé
type GormCatalog struct {
	DB *gorm.DB
}

func (g *GormCatalog) ShowtimeSeats(showtimeId uint) ([]SeatInfo, error) {
	var showtime model.Showtime
	if err := g.DB.First(&showtime, showtimeId).Error; err != nil {
		return nil, err
	}

	var rows []model.ShowtimeSeat
	if err := g.DB.
		Preload("Seat").
		Preload("Seat.SeatType").
		Where("showtime_id = ?", showtimeId).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	seats := make([]SeatInfo, 0, len(rows))
	for _, r := range rows {
		seats = append(seats, SeatInfo{
			SeatId:   r.SeatId,
			Label:    fmt.Sprintf("%s%d", r.SeatRow, r.SeatNumber),
			Type:     r.Seat.SeatType.Type,
			CoupleId: r.Seat.CoupleId,
			Active:   r.Seat.IsAvailable,
			// Ghế đôi mang giá cả cặp (modifier 2), tính một lần
			Price: showtime.Price * r.Seat.SeatType.PriceModifier,
		})
	}
	return seats, nil
}

func (g *GormCatalog) Promotion(id uint) (*model.Promotion, error) {
	var promo model.Promotion
	if err := g.DB.First(&promo, id).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (g *GormCatalog) Ranks() ([]model.MembershipRank, error) {
	var ranks []model.MembershipRank
	if err := g.DB.Order("min_points asc").Find(&ranks).Error; err != nil {
		return nil, err
	}
	return ranks, nil
}

func (g *GormCatalog) CustomerPoints(customerId uint) (int, error) {
	var customer model.Customer
	if err := g.DB.Select("points").First(&customer, customerId).Error; err != nil {
		return 0, err
	}
	return customer.Points, nil
}

func (g *GormCatalog) Snacks(ids []uint) (map[uint]model.Snack, error) {
	var rows []model.Snack
	if err := g.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]model.Snack, len(rows))
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

// GormInvoiceRepo ghi hóa đơn/giao dịch/điểm xuống Postgres
type GormInvoiceRepo struct {
	DB *gorm.DB
}

func (g *GormInvoiceRepo) CreateInvoice(order *model.Order) error {
	return g.DB.Create(order).Error
}

func (g *GormInvoiceRepo) GetInvoice(invoiceId uint) (*model.Order, error) {
	var order model.Order
	if err := g.DB.Preload("Tickets").Preload("Snacks").First(&order, invoiceId).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (g *GormInvoiceRepo) MarkPaid(invoiceId uint, paidAt time.Time) error {
	return g.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).Where("id = ?", invoiceId).
			Updates(map[string]interface{}{
				"status":  constants.ORDER_PAID,
				"paid_at": paidAt,
			}).Error; err != nil {
			return err
		}
		// Vé chuyển sang ISSUED cùng lúc với hóa đơn
		return tx.Model(&model.Ticket{}).Where("order_id = ?", invoiceId).
			Updates(map[string]interface{}{
				"status":    constants.TICKET_ISSUED,
				"issued_at": paidAt,
			}).Error
	})
}

func (g *GormInvoiceRepo) MarkFailed(invoiceId uint) error {
	return g.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).Where("id = ?", invoiceId).
			Update("status", constants.ORDER_FAILED).Error; err != nil {
			return err
		}
		return tx.Model(&model.Ticket{}).Where("order_id = ?", invoiceId).
			Update("status", constants.TICKET_CANCELLED).Error
	})
}

func (g *GormInvoiceRepo) FlagMismatch(invoiceId uint) error {
	return g.DB.Model(&model.Order{}).Where("id = ?", invoiceId).
		Update("payment_flagged", true).Error
}

func (g *GormInvoiceRepo) RecordTransaction(txn *model.Payment) error {
	return g.DB.Create(txn).Error
}

func (g *GormInvoiceRepo) AddPoints(customerId uint, points int) error {
	return g.DB.Model(&model.Customer{}).Where("id = ?", customerId).
		Update("points", gorm.Expr("points + ?", points)).Error
}
