package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	centerModel "opencourse_backend/internals/features/courses/center/model"
	dto "opencourse_backend/internals/features/courses/join_request/dto"
	model "opencourse_backend/internals/features/courses/join_request/model"
	profileModel "opencourse_backend/internals/features/users/profile/model"
	profileService "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type JoinRequestController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewJoinRequestController(db *gorm.DB, v *validator.Validate) *JoinRequestController {
	return &JoinRequestController{DB: db, Validate: v}
}

// POST /join-requests
// A professor asks to join a center. The row starts pending and the
// manage_join_request grant goes to the center admin in the same
// transaction.
func (h *JoinRequestController) Create(c *fiber.Ctx) error {
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

	var req dto.JoinRequestCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var center centerModel.CenterModel
	if err := h.DB.First(&center, "center_id = ?", req.CenterID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonFormError(c, map[string]string{"center_id": "center not found"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if center.CenterAdminID == professor.ProfessorID {
		return helper.JsonFormError(c, map[string]string{
			"center_id": "you already administer this center",
		})
	}
	var admin profileModel.ProfessorModel
	if err := h.DB.First(&admin, "professor_id = ?", center.CenterAdminID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m := model.JoinRequestModel{
		JoinRequestCenterID:    center.CenterID,
		JoinRequestProfessorID: professor.ProfessorID,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return accessService.Grant(tx, admin.ProfessorUserID,
			accessService.CapManageJoinRequest, m.JoinRequestID)
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonFormError(c, map[string]string{
				"center_id": "you have already requested to join this center",
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "join request created", dto.FromJoinRequestModel(&m))
}

// PUT /join-requests/:id
// Accept or reject. Only the grant holder for this request may decide.
func (h *JoinRequestController) UpdateStatus(c *fiber.Ctx) error {
	joinRequestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	var m model.JoinRequestModel
	if err := h.DB.First(&m, "join_request_id = ?", joinRequestID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "join request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageJoinRequest, joinRequestID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed to decide this join request")
	}

	var req dto.JoinRequestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m.JoinRequestAccepted = req.Accepted
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "join request updated", dto.FromJoinRequestModel(&m))
}

// GET /join-requests/list
// The professor's own outgoing requests.
func (h *JoinRequestController) MyList(c *fiber.Ctx) error {
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

	var rows []model.JoinRequestModel
	if err := h.DB.
		Where("join_request_professor_id = ?", professor.ProfessorID).
		Order("join_request_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.JoinRequestResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromJoinRequestModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /join-requests/incoming
// Requests against centers the professor administers, pending rows first.
func (h *JoinRequestController) AdminList(c *fiber.Ctx) error {
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

	ownCenters := h.DB.Model(&centerModel.CenterModel{}).
		Select("center_id").
		Where("center_admin_id = ?", professor.ProfessorID)

	var rows []model.JoinRequestModel
	if err := h.DB.
		Where("join_request_center_id IN (?)", ownCenters).
		Order("join_request_accepted ASC NULLS FIRST, join_request_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.JoinRequestResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromJoinRequestModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}
