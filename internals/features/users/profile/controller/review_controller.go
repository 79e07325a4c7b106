package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "opencourse_backend/internals/features/users/profile/dto"
	model "opencourse_backend/internals/features/users/profile/model"
	helper "opencourse_backend/internals/helpers"
)

type ReviewController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewReviewController(db *gorm.DB, v *validator.Validate) *ReviewController {
	return &ReviewController{DB: db, Validate: v}
}

// POST /profiles/professor/:id/add-review
// Student-only. The author is the caller's student profile.
func (h *ReviewController) Create(c *fiber.Ctx) error {
	professorID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var student model.StudentModel
	if err := h.DB.First(&student, "student_user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "only students may leave reviews")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var professor model.ProfessorModel
	if err := h.DB.First(&professor, "professor_id = ?", professorID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "professor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.ReviewCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := model.ReviewModel{
		ReviewProfessorID: professor.ProfessorID,
		ReviewStudentID:   student.StudentID,
		ReviewScore:       req.Score,
		ReviewText:        req.Text,
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "review created", dto.FromReviewModel(&m))
}
