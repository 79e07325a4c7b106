package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accessService "opencourse_backend/internals/features/access/service"
	dto "opencourse_backend/internals/features/courses/course/dto"
	model "opencourse_backend/internals/features/courses/course/model"
	service "opencourse_backend/internals/features/courses/course/service"
	enrollModel "opencourse_backend/internals/features/courses/enrollment/model"
	profileDTO "opencourse_backend/internals/features/users/profile/dto"
	profileModel "opencourse_backend/internals/features/users/profile/model"
	profileService "opencourse_backend/internals/features/users/profile/service"
	helper "opencourse_backend/internals/helpers"
)

type CourseController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCourseController(db *gorm.DB, v *validator.Validate) *CourseController {
	return &CourseController{DB: db, Validate: v}
}

var courseSortColumns = map[string]string{
	"created_at": "course_created_at",
	"title":      "course_title",
}

/* =========================================================
   CREATE / EDIT / DELETE (professor, grant-gated)
   ========================================================= */

// POST /courses
func (h *CourseController) Create(c *fiber.Ctx) error {
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

	var req dto.CourseUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m, err := service.CreateWithGrant(h.DB, userID, professor.ProfessorID, req)
	if err != nil {
		if errors.Is(err, service.ErrCenterNotAllowed) {
			return helper.JsonFormError(c, map[string]string{"center_id": err.Error()})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "course created", h.courseResponse(m))
}

// PUT /courses/:id
func (h *CourseController) Edit(c *fiber.Ctx) error {
	m, fail := h.loadManaged(c)
	if fail != nil {
		return fail(c)
	}
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	professor, err := profileService.ProfessorByUserID(h.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var req dto.CourseUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid body")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := service.Update(h.DB, m, professor.ProfessorID, req); err != nil {
		if errors.Is(err, service.ErrCenterNotAllowed) {
			return helper.JsonFormError(c, map[string]string{"center_id": err.Error()})
		}
		if errors.Is(err, service.ErrLocationNotOwned) {
			return helper.JsonFormError(c, map[string]string{"locations": err.Error()})
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "course updated", h.courseResponse(m))
}

// DELETE /courses/:id
func (h *CourseController) Delete(c *fiber.Ctx) error {
	m, fail := h.loadManaged(c)
	if fail != nil {
		return fail(c)
	}
	if err := service.Delete(h.DB, m.CourseID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "course deleted", fiber.Map{"course_id": m.CourseID})
}

// loadManaged loads the course from :id and runs the two-condition access
// check. Missing course is 404; existing course without a grant is 403.
func (h *CourseController) loadManaged(c *fiber.Ctx) (*model.CourseModel, func(*fiber.Ctx) error) {
	courseID, err := helper.ParseUUIDParam(c, "id")
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

	var m model.CourseModel
	if err := h.DB.First(&m, "course_id = ?", courseID).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, func(c *fiber.Ctx) error {
				return helper.JsonError(c, fiber.StatusNotFound, "course not found")
			}
		}
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, msg)
		}
	}

	ok, err := accessService.CanManage(h.DB, userID, role, accessService.CapManageCourse, courseID)
	if err != nil {
		msg := err.Error()
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusInternalServerError, msg)
		}
	}
	if !ok {
		return nil, func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusForbidden, "not allowed to manage this course")
		}
	}
	return &m, nil
}

func (h *CourseController) courseResponse(m *model.CourseModel) dto.CourseResponse {
	areaIDs, ageIDs, langIDs, _ := service.LinkIDs(h.DB, m.CourseID)
	locations, _ := service.Locations(h.DB, m.CourseID)
	return dto.FromCourseModel(m, areaIDs, ageIDs, langIDs, locations)
}

/* =========================================================
   READ: DETAIL / LIST / SEARCH
   ========================================================= */

// GET /courses/:id
// Public. When the caller is an authenticated student the response carries
// their enrollment state so the page can render the right call to action.
func (h *CourseController) Detail(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var m model.CourseModel
	if err := h.DB.First(&m, "course_id = ?", courseID).Error; err != nil {
		if helper.IsNotFound(err) {
			return helper.JsonError(c, fiber.StatusNotFound, "course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var professor profileModel.ProfessorModel
	if err := h.DB.First(&professor, "professor_id = ?", m.CourseProfessorID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	avg, err := profileService.AverageScore(h.DB, professor.ProfessorID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	reviews, err := profileService.RecentReviews(h.DB, professor.ProfessorID, 10)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var reviewCount int64
	if err := h.DB.Model(&profileModel.ReviewModel{}).
		Where("review_professor_id = ?", professor.ProfessorID).
		Count(&reviewCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	reviewResp := make([]profileDTO.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		reviewResp = append(reviewResp, profileDTO.FromReviewModel(&reviews[i]))
	}

	resp := fiber.Map{
		"course":       h.courseResponse(&m),
		"professor":    profileDTO.FromProfessorModel(&professor, avg),
		"reviews":      reviewResp,
		"review_count": reviewCount,
	}

	// Anonymous viewers simply get no enrollment block.
	if userID, err := helper.GetUserUUID(c); err == nil {
		if student, err := profileService.StudentByUserID(h.DB, userID); err == nil {
			var enrollment enrollModel.EnrollmentModel
			err := h.DB.First(&enrollment,
				"enrollment_course_id = ? AND enrollment_student_id = ?",
				m.CourseID, student.StudentID).Error
			switch {
			case err == nil:
				resp["enrollment"] = enrollment
			case helper.IsNotFound(err):
				resp["enrollment"] = nil
			default:
				return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
			}
		}
	}

	return helper.JsonOK(c, "ok", resp)
}

// GET /courses/list
// The professor's own courses.
func (h *CourseController) ListMine(c *fiber.Ctx) error {
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

	var rows []model.CourseModel
	if err := h.DB.
		Where("course_professor_id = ?", professor.ProfessorID).
		Order("course_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CourseResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, h.courseResponse(&rows[i]))
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /courses/search
// Public browse endpoint with taxonomy filters and pagination.
func (h *CourseController) SearchResults(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.SearchOpts)
	orderClause, err := p.SafeOrderClause(courseSortColumns, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var filters service.SearchFilters
	for _, f := range []struct {
		name string
		dst  *uuid.UUID
	}{
		{"area_id", &filters.AreaID},
		{"city_id", &filters.CityID},
		{"center_id", &filters.CenterID},
		{"level_id", &filters.LevelID},
		{"age_id", &filters.AgeID},
		{"language_id", &filters.LanguageID},
		{"location_type_id", &filters.LocationTypeID},
	} {
		id, err := helper.ParseUUIDQuery(c, f.name)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		*f.dst = id
	}

	rows, total, err := service.Search(h.DB, filters, orderClause, p.Offset(), p.Limit())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CourseResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, h.courseResponse(&rows[i]))
	}
	return helper.JsonList(c, resp, helper.BuildMeta(total, p))
}

// GET /courses/:id/students
// Accepted enrollees of a managed course.
func (h *CourseController) StudentsList(c *fiber.Ctx) error {
	m, fail := h.loadManaged(c)
	if fail != nil {
		return fail(c)
	}

	var enrollments []enrollModel.EnrollmentModel
	if err := h.DB.
		Where("enrollment_course_id = ? AND enrollment_accepted = ?", m.CourseID, true).
		Order("enrollment_updated_at DESC").
		Find(&enrollments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	studentIDs := make([]uuid.UUID, 0, len(enrollments))
	for i := range enrollments {
		studentIDs = append(studentIDs, enrollments[i].EnrollmentStudentID)
	}

	resp := make([]profileDTO.StudentResponse, 0, len(studentIDs))
	if len(studentIDs) > 0 {
		var students []profileModel.StudentModel
		if err := h.DB.Where("student_id IN ?", studentIDs).Find(&students).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		for i := range students {
			resp = append(resp, profileDTO.FromStudentModel(&students[i]))
		}
	}
	return helper.JsonOK(c, "ok", resp)
}
