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
	"gorm.io/gorm"
)

func GetCinemas(c *fiber.Ctx) error {
	filterInput := new(model.FilterCinemaInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Cinema{}).Where("active = ?", true)

	if filterInput.SearchKey != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(filterInput.SearchKey)) + "%"
		condition = condition.Where(
			db.Where("LOWER(name) LIKE ?", search).
				Or("LOWER(address) LIKE ?", search).
				Or("LOWER(province) LIKE ?", search),
		)
	}
	if filterInput.Province != "" {
		condition = condition.Where("LOWER(province) LIKE ?", "%"+strings.ToLower(filterInput.Province)+"%")
	}

	var total int64
	if err := condition.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể đếm dữ liệu", err)
	}

	var cinemas []model.Cinema
	if err := utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page).
		Order("id DESC").
		Find(&cinemas).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể lấy danh sách rạp", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, &model.ResponseCustom{
		Rows:       cinemas,
		Limit:      filterInput.Limit,
		Page:       filterInput.Page,
		TotalCount: total,
	})
}

func GetCinemaBySlug(c *fiber.Ctx) error {
	var cinema model.Cinema
	if err := database.DB.
		Preload("Rooms").
		Where("slug = ?", c.Params("slug")).
		First(&cinema).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy rạp", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, cinema)
}

func CreateCinema(c *fiber.Ctx) error {
	input, ok := c.Locals("input").(model.CreateCinemaInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	cinema := model.Cinema{
		Name:     input.Name,
		Province: input.Province,
		Address:  input.Address,
		Active:   utils.Ptr(true),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		cinema.Slug = helper.GenerateUniqueCinemaSlug(tx, input.Name)
		return tx.Create(&cinema).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo rạp thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, cinema)
}

func EditCinema(c *fiber.Ctx) error {
	cinemaId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}
	input, ok := c.Locals("input").(model.EditCinemaInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	var cinema model.Cinema
	if err := database.DB.First(&cinema, cinemaId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy rạp", err)
	}

	renamed := input.Name != nil && *input.Name != cinema.Name
	if err := copier.CopyWithOption(&cinema, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if renamed {
			cinema.Slug = helper.GenerateUniqueCinemaSlug(tx, cinema.Name)
		}
		return tx.Save(&cinema).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật rạp thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, cinema)
}

// DeleteCinema ẩn rạp khỏi danh sách bán vé, không xóa dữ liệu lịch sử
func DeleteCinema(c *fiber.Ctx) error {
	arrayId, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, nil)
	}

	if err := database.DB.Model(&model.Cinema{}).
		Where("id IN ?", arrayId.IDs).
		Update("active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Không thể ẩn rạp", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, arrayId.IDs)
}
