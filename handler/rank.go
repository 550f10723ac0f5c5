package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func GetRanks(c *fiber.Ctx) error {
	var ranks model.MembershipRanks
	if err := database.DB.Order("min_points asc").Find(&ranks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách hạng", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, ranks)
}

// EditRank đổi cấu hình hạng rồi tính lại hạng của toàn bộ khách để mốc
// điểm mới có hiệu lực ngay
func EditRank(c *fiber.Ctx) error {
	rankId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("input").(model.EditRankInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var rank model.MembershipRank
	if err := database.DB.First(&rank, rankId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy hạng thành viên", err)
	}

	if err := copier.CopyWithOption(&rank, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := database.DB.Save(&rank).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật hạng thất bại", err)
	}

	go helper.RecalculateAllRanks(database.DB)

	return utils.SuccessResponse(c, fiber.StatusOK, rank)
}
