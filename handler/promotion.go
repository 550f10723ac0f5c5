package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetPromotions(c *fiber.Ctx) error {
	var promotions model.Promotions
	if err := database.DB.Order("created_at desc").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách khuyến mãi", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, promotions)
}

// CheckPromotionCode tra mã khách nhập trước khi chốt đơn: trả về giá trị
// giảm nếu mã còn hiệu lực tại thời điểm gọi
func CheckPromotionCode(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Params("code"))

	var promotion model.Promotion
	if err := database.DB.Where("code = ?", code).First(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Mã khuyến mãi không tồn tại", err)
	}

	if err := helper.ValidatePromotion(&promotion, helper.VenueNow()); err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Mã khuyến mãi đã hết hạn hoặc bị tắt", err, "code")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"id":            promotion.ID,
		"code":          promotion.Code,
		"name":          promotion.Name,
		"discountValue": promotion.DiscountValue,
	})
}

func CreatePromotion(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreatePromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	promotion := model.Promotion{
		Code:          strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:          input.Name,
		Description:   input.Description,
		DiscountValue: input.DiscountValue,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        constants.PROMOTION_ACTIVE,
	}
	if err := database.DB.Create(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo khuyến mãi thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, promotion)
}

func EditPromotion(c *fiber.Ctx) error {
	promotionId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("input").(model.EditPromotionInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var promotion model.Promotion
	if err := database.DB.First(&promotion, promotionId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy khuyến mãi", err)
	}

	if err := copier.CopyWithOption(&promotion, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if promotion.StartDate != nil && promotion.EndDate != nil && promotion.EndDate.Before(*promotion.StartDate) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Ngày kết thúc phải sau ngày bắt đầu", nil, "endDate")
	}

	if err := database.DB.Save(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật khuyến mãi thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

// DeletePromotion tắt khuyến mãi thay vì xóa: hóa đơn cũ vẫn tham chiếu
// được mã đã dùng khi dựng lại bảng giá
func DeletePromotion(c *fiber.Ctx) error {
	arrayId, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := database.DB.Model(&model.Promotion{}).
		Where("id IN ?", arrayId.IDs).
		Update("status", constants.PROMOTION_INACTIVE).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể tắt khuyến mãi", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, arrayId.IDs)
}
