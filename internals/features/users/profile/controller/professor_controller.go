package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "opencourse_backend/internals/features/users/profile/dto"
	model "opencourse_backend/internals/features/users/profile/model"
	service "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type ProfessorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProfessorController(db *gorm.DB, v *validator.Validate) *ProfessorController {
	return &ProfessorController{DB: db, Validate: v}
}

// GET /profiles/professor
func (h *ProfessorController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var m model.ProfessorModel
	if err := h.DB.First(&m, "professor_user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "professor profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	avg, err := service.AverageScore(h.DB, m.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.FromProfessorModel(&m, avg))
}

// PUT /profiles/professor
// Accepts JSON or multipart (with an optional "picture" file field).
func (h *ProfessorController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var m model.ProfessorModel
	if err := h.DB.First(&m, "professor_user_id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "professor profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.ProfessorUpdateRequest
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
		m.ProfessorPicture = &path
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	avg, err := service.AverageScore(h.DB, m.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "profile updated", dto.FromProfessorModel(&m, avg))
}

// GET /profiles/professor/:id
// Public professor page: profile, average score, recent reviews.
func (h *ProfessorController) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.ProfessorModel
	if err := h.DB.First(&m, "professor_id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "professor not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	avg, err := service.AverageScore(h.DB, m.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	reviews, err := service.RecentReviews(h.DB, m.ProfessorID, 10)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	reviewResp := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		reviewResp = append(reviewResp, dto.FromReviewModel(&reviews[i]))
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"professor": dto.FromProfessorModel(&m, avg),
		"reviews":   reviewResp,
	})
}

// POST /profiles/professor/:id/contact-request
// Public counter bump; responds with an empty 200 like the original form hook.
func (h *ProfessorController) ContactRequest(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	res := h.DB.Model(&model.ProfessorModel{}).
		Where("professor_id = ?", id).
		UpdateColumn("professor_contacts_requests", gorm.Expr("professor_contacts_requests + 1"))
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "professor not found")
	}
	return c.SendStatus(fiber.StatusOK)
}
