package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	courseModel "opencourse_backend/internals/features/courses/course/model"
	enrollModel "opencourse_backend/internals/features/courses/enrollment/model"
	dto "opencourse_backend/internals/features/courses/handout/dto"
	model "opencourse_backend/internals/features/courses/handout/model"
	profileService "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type HandoutController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewHandoutController(db *gorm.DB, v *validator.Validate) *HandoutController {
	return &HandoutController{DB: db, Validate: v}
}

// canViewHandouts: managing professors see the list through their grant,
// students through an accepted enrollment. Both paths are checked on every
// request so a revoked acceptance takes effect immediately.
func (h *HandoutController) canViewHandouts(c *fiber.Ctx, courseID uuid.UUID) (bool, error) {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return false, nil
	}
	role := helper.GetUserRole(c)

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageCourse, courseID)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	student, err := profileService.StudentByUserID(h.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return enrollModel.HasAcceptedEnrollment(h.DB, courseID, student.StudentID)
}

// GET /courses/:id/handouts
func (h *HandoutController) List(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var course courseModel.CourseModel
	if err := h.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := h.canViewHandouts(c, courseID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "handouts require an accepted enrollment")
	}

	var rows []model.HandoutModel
	if err := h.DB.
		Where("handout_course_id = ?", courseID).
		Order("handout_section_id ASC, handout_created_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.HandoutResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromHandoutModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// POST /courses/:id/handouts
// Requires the manage_course grant on the owning course. The creator gets
// the manage_handout grant on the new row in the same transaction.
func (h *HandoutController) Create(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	var course courseModel.CourseModel
	if err := h.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageCourse, courseID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed to manage this course")
	}

	var req dto.HandoutUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	fh, err := c.FormFile("attachment")
	if err != nil || fh == nil {
		return helper.JsonFormError(c, map[string]string{"attachment": "attachment file is required"})
	}
	path, err := helper.SaveAttachment("handouts", fh)
	if err != nil {
		return helper.JsonFormError(c, map[string]string{"attachment": err.Error()})
	}

	m := req.ToModel(courseID)
	m.HandoutAttachment = path
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return accessService.Grant(tx, userID, accessService.CapManageHandout, m.HandoutID)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "handout created", dto.FromHandoutModel(m))
}

// PUT /handouts/:id
func (h *HandoutController) Edit(c *fiber.Ctx) error {
	m, fail := h.loadManaged(c)
	if fail != nil {
		return fail(c)
	}

	var req dto.HandoutUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(m)

	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		path, err := helper.SaveAttachment("handouts", fh)
		if err != nil {
			return helper.JsonFormError(c, map[string]string{"attachment": err.Error()})
		}
		m.HandoutAttachment = path
	}

	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "handout updated", dto.FromHandoutModel(m))
}

// DELETE /handouts/:id
func (h *HandoutController) Delete(c *fiber.Ctx) error {
	m, fail := h.loadManaged(c)
	if fail != nil {
		return fail(c)
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := accessService.RevokeObject(tx, accessService.CapManageHandout, m.HandoutID); err != nil {
			return err
		}
		return tx.Delete(&model.HandoutModel{}, "handout_id = ?", m.HandoutID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "handout deleted", fiber.Map{"handout_id": m.HandoutID})
}

func (h *HandoutController) loadManaged(c *fiber.Ctx) (*model.HandoutModel, func(*fiber.Ctx) error) {
	handoutID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error { return helper.JsonError(c, fiber.StatusBadRequest, msg) }
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error { return helper.JsonError(c, fiber.StatusUnauthorized, msg) }
	}
	role := helper.GetUserRole(c)

	var m model.HandoutModel
	if err := h.DB.First(&m, "handout_id = ?", handoutID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, func(c *fiber.Ctx) error {
				return helper.JsonError(c, fiber.StatusNotFound, "handout not found")
			}
		}
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, msg)
		}
	}

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageHandout, handoutID)
	if err != nil {
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, msg)
		}
	}
	if !ok {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusForbidden, "not allowed to manage this handout")
		}
	}
	return &m, nil
}
