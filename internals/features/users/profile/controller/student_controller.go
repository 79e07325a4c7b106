package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "opencourse_backend/internals/features/users/profile/dto"
	model "opencourse_backend/internals/features/users/profile/model"
	helper "opencourse_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB, v *validator.Validate) *StudentController {
	return &StudentController{DB: db, Validate: v}
}

// GET /profiles/student
func (h *StudentController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var m model.StudentModel
	if err := h.DB.First(&m, "student_user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "student profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromStudentModel(&m))
}

// PUT /profiles/student
func (h *StudentController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var m model.StudentModel
	if err := h.DB.First(&m, "student_user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "student profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.Apply(&m); err != nil {
		return helper.JsonFormError(c, map[string]string{"dob": err.Error()})
	}

	if fh, err := c.FormFile("picture"); err == nil && fh != nil {
		path, err := helper.SavePicture("profile_pics", fh)
		if err != nil {
			return helper.JsonFormError(c, map[string]string{"picture": err.Error()})
		}
		m.StudentPicture = &path
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "profile updated", dto.FromStudentModel(&m))
}
