package handler

import (
	"cinema_booking/constants"
	"cinema_booking/database"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

// GetProfile trả hồ sơ khách kèm tiến độ lên hạng kế tiếp
func GetProfile(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var ranks []model.MembershipRank
	if err := database.DB.Order("min_points asc").Find(&ranks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	current := helper.CurrentRank(ranks, customer.Points)
	next, missing := helper.NextRank(ranks, customer.Points)

	response := fiber.Map{
		"id":        customer.ID,
		"email":     customer.Email,
		"phone":     customer.Phone,
		"username":  customer.UserName,
		"firstname": customer.FirstName,
		"lastname":  customer.LastName,
		"points":    customer.Points,
		"rank":      current,
	}
	if next != nil {
		response["nextRank"] = fiber.Map{
			"name":          next.Name,
			"minPoints":     next.MinPoints,
			"missingPoints": missing,
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

func EditProfile(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var input struct {
		UserName  *string `json:"username"`
		FirstName *string `json:"firstname"`
		LastName  *string `json:"lastname"`
		Phone     *string `json:"phone"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	if input.Phone != nil && *input.Phone != customer.Phone {
		exists, err := helper.CheckByPhoneNumberCustomer(*input.Phone, &customer.ID)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if exists {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Số điện thoại đã được đăng ký", nil, "phone")
		}
		customer.Phone = *input.Phone
	}
	if input.UserName != nil {
		customer.UserName = *input.UserName
	}
	if input.FirstName != nil {
		customer.FirstName = input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = input.LastName
	}

	if err := database.DB.Save(customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật hồ sơ thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func ChangePassword(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Vui lòng đăng nhập", nil)
	}

	var input struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if len(input.NewPassword) < 6 {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Mật khẩu mới phải từ 6 ký tự", nil, "newPassword")
	}
	if !helper.CheckPasswordHash(input.OldPassword, customer.Password) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Mật khẩu cũ không đúng", nil, "oldPassword")
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := database.DB.Model(customer).Update("password", hashed).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Đổi mật khẩu thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Đổi mật khẩu thành công"})
}
