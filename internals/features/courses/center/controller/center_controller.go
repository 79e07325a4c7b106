package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	dto "opencourse_backend/internals/features/courses/center/dto"
	model "opencourse_backend/internals/features/courses/center/model"
	courseDTO "opencourse_backend/internals/features/courses/course/dto"
	courseModel "opencourse_backend/internals/features/courses/course/model"
	courseService "opencourse_backend/internals/features/courses/course/service"
	joinModel "opencourse_backend/internals/features/courses/join_request/model"
	profileService "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type CenterController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCenterController(db *gorm.DB, v *validator.Validate) *CenterController {
	return &CenterController{DB: db, Validate: v}
}

var centerSortColumns = map[string]string{
	"created_at": "center_created_at",
	"name":       "center_name",
}

/* =========================================================
   CREATE / EDIT / DELETE
   ========================================================= */

// POST /centers
// The creator becomes the center admin and receives the manage_center grant
// in the same transaction.
func (h *CenterController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	professor, err := profileService.ProfessorByUserID(h.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "professor profile required")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.CenterUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(professor.ProfessorID)
	if fh, err := c.FormFile("picture"); err == nil && fh != nil {
		path, err := helper.SavePicture("center_pics", fh)
		if err != nil {
			return helper.JsonFormError(c, map[string]string{"picture": err.Error()})
		}
		m.CenterPicture = &path
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return accessService.Grant(tx, userID, accessService.CapManageCenter, m.CenterID)
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "center created", dto.FromCenterModel(m))
}

// PUT /centers/:id
// Editable by the grant holder or by a professor attached through an
// accepted join request.
func (h *CenterController) Edit(c *fiber.Ctx) error {
	centerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	var m model.CenterModel
	if err := h.DB.First(&m, "center_id = ?", centerID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageCenter, centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !allowed {
		professor, err := profileService.ProfessorByUserID(h.DB, userID)
		if err == nil {
			allowed, err = joinModel.HasAcceptedJoinRequest(h.DB, centerID, professor.ProfessorID)
			if err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
		} else if !helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	if !allowed {
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed to manage this center")
	}

	var req dto.CenterUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	req.Apply(&m)

	if fh, err := c.FormFile("picture"); err == nil && fh != nil {
		path, err := helper.SavePicture("center_pics", fh)
		if err != nil {
			return helper.JsonFormError(c, map[string]string{"picture": err.Error()})
		}
		m.CenterPicture = &path
	}

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "center updated", dto.FromCenterModel(&m))
}

// DELETE /centers/:id
// Grant holder only; join-request membership does not extend to deletion.
func (h *CenterController) Delete(c *fiber.Ctx) error {
	centerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	var m model.CenterModel
	if err := h.DB.First(&m, "center_id = ?", centerID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	allowed, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageCenter, centerID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !allowed {
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed to manage this center")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		// Courses keep existing but detach from the deleted center.
		if err := tx.Model(&courseModel.CourseModel{}).
			Where("course_center_id = ?", centerID).
			Update("course_center_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("join_request_center_id = ?", centerID).
			Delete(&joinModel.JoinRequestModel{}).Error; err != nil {
			return err
		}
		if err := accessService.RevokeObject(tx, accessService.CapManageCenter, centerID); err != nil {
			return err
		}
		return tx.Delete(&model.CenterModel{}, "center_id = ?", centerID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "center deleted", fiber.Map{"center_id": centerID})
}

/* =========================================================
   READ: DETAIL / LIST / SEARCH
   ========================================================= */

// GET /centers/:id
// Public. Authenticated professors also get their join-request state so the
// page can offer the right action.
func (h *CenterController) Detail(c *fiber.Ctx) error {
	centerID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.CenterModel
	if err := h.DB.First(&m, "center_id = ?", centerID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "center not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var courses []courseModel.CourseModel
	if err := h.DB.
		Where("course_center_id = ?", centerID).
		Order("course_created_at DESC").
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	courseResp := make([]courseDTO.CourseResponse, 0, len(courses))
	for i := range courses {
		areaIDs, ageIDs, langIDs, _ := courseService.LinkIDs(h.DB, courses[i].CourseID)
		locations, _ := courseService.Locations(h.DB, courses[i].CourseID)
		courseResp = append(courseResp, courseDTO.FromCourseModel(&courses[i], areaIDs, ageIDs, langIDs, locations))
	}

	resp := fiber.Map{
		"center":  dto.FromCenterModel(&m),
		"courses": courseResp,
	}

	if userID, err := helper.GetUserUUID(c); err == nil {
		if professor, err := profileService.ProfessorByUserID(h.DB, userID); err == nil {
			var jr joinModel.JoinRequestModel
			err := h.DB.First(&jr,
				"join_request_center_id = ? AND join_request_professor_id = ?",
				centerID, professor.ProfessorID).Error
			switch {
			case err == nil:
				resp["join_request"] = jr
			case helper.IsNotFound(err):
				resp["join_request"] = nil
			default:
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
		}
	}

	return helper.JsonOK(c, "ok", resp)
}

// GET /centers/list
// Centers the professor administers plus the ones joined through an accepted
// join request.
func (h *CenterController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	professor, err := profileService.ProfessorByUserID(h.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "professor profile required")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	joined := h.DB.Model(&joinModel.JoinRequestModel{}).
		Select("join_request_center_id").
		Where("join_request_professor_id = ? AND join_request_accepted = ?", professor.ProfessorID, true)

	var rows []model.CenterModel
	if err := h.DB.
		Where("center_admin_id = ? OR center_id IN (?)", professor.ProfessorID, joined).
		Order("center_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CenterResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromCenterModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /centers/search?name=...
// Public name search, case-insensitive substring match.
func (h *CenterController) SearchResults(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.SearchOpts)
	orderClause, err := p.SafeOrderClause(centerSortColumns, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	q := h.DB.Model(&model.CenterModel{})
	if name := c.Query("name"); name != "" {
		q = q.Where("LOWER(center_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.CenterModel
	if err := q.Order(orderClause).Offset(p.Offset()).Limit(p.Limit()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CenterResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromCenterModel(&rows[i]))
	}
	return helper.JsonList(c, resp, helper.BuildMeta(total, p))
}
