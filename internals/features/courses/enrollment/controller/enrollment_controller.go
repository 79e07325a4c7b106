package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	courseModel "opencourse_backend/internals/features/courses/course/model"
	dto "opencourse_backend/internals/features/courses/enrollment/dto"
	model "opencourse_backend/internals/features/courses/enrollment/model"
	profileModel "opencourse_backend/internals/features/users/profile/model"
	profileService "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type EnrollmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEnrollmentController(db *gorm.DB, v *validator.Validate) *EnrollmentController {
	return &EnrollmentController{DB: db, Validate: v}
}

// POST /enrollments
// Student self-service. The row starts pending and the manage_enrollment
// grant goes to the course's professor in the same transaction, so the
// professor can decide on it later.
func (h *EnrollmentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	student, err := profileService.StudentByUserID(h.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "student profile required")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.EnrollmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course courseModel.CourseModel
	if err := h.DB.First(&course, "course_id = ?", req.CourseID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonFormError(c, map[string]string{"course_id": "course not found"})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var professor profileModel.ProfessorModel
	if err := h.DB.First(&professor, "professor_id = ?", course.CourseProfessorID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m := model.EnrollmentModel{
		EnrollmentCourseID:  course.CourseID,
		EnrollmentStudentID: student.StudentID,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return accessService.Grant(tx, professor.ProfessorUserID,
			accessService.CapManageEnrollment, m.EnrollmentID)
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.JsonFormError(c, map[string]string{
				"course_id": "you have already requested enrollment in this course",
			})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "enrollment requested", dto.FromEnrollmentModel(&m))
}

// PUT /enrollments/:id
// Accept or reject. Only the grant holder for this enrollment may decide.
func (h *EnrollmentController) UpdateStatus(c *fiber.Ctx) error {
	enrollmentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role := helper.GetUserRole(c)

	var m model.EnrollmentModel
	if err := h.DB.First(&m, "enrollment_id = ?", enrollmentID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageEnrollment, enrollmentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "not allowed to decide this enrollment")
	}

	var req dto.EnrollmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m.EnrollmentAccepted = req.Accepted
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "enrollment updated", dto.FromEnrollmentModel(&m))
}

// GET /enrollments/list
// The student's own enrollments, newest first. ?accepted=true narrows to the
// courses they actually got into.
func (h *EnrollmentController) StudentList(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	student, err := profileService.StudentByUserID(h.DB, userID)
	if err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusForbidden, "student profile required")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	q := h.DB.Where("enrollment_student_id = ?", student.StudentID)
	if c.Query("accepted") == "true" {
		q = q.Where("enrollment_accepted = ?", true)
	}

	var rows []model.EnrollmentModel
	if err := q.Order("enrollment_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EnrollmentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromEnrollmentModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /enrollments/incoming
// Requests against the professor's courses, pending rows first.
func (h *EnrollmentController) ProfessorList(c *fiber.Ctx) error {
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

	ownCourses := h.DB.Model(&courseModel.CourseModel{}).
		Select("course_id").
		Where("course_professor_id = ?", professor.ProfessorID)

	var rows []model.EnrollmentModel
	if err := h.DB.
		Where("enrollment_course_id IN (?)", ownCourses).
		Order("enrollment_accepted ASC NULLS FIRST, enrollment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EnrollmentResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, dto.FromEnrollmentModel(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}
