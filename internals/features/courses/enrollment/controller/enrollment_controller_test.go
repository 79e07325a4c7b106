package controller

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"opencourse_backend/internals/constants"
	accessModel "opencourse_backend/internals/features/access/model"
	courseModel "opencourse_backend/internals/features/courses/course/model"
	enrollModel "opencourse_backend/internals/features/courses/enrollment/model"
	profileModel "opencourse_backend/internals/features/users/profile/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModel.CourseModel{},
		&enrollModel.EnrollmentModel{},
		&profileModel.ProfessorModel{},
		&profileModel.StudentModel{},
		&accessModel.PermissionGrantModel{},
	))
	return db
}

func newApp(db *gorm.DB, userID uuid.UUID, role string) *fiber.App {
	h := NewEnrollmentController(db, validator.New())
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Post("/enrollments", h.Create)
	app.Put("/enrollments/:id", h.UpdateStatus)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp.StatusCode, parsed
}

type fixture struct {
	professorUser uuid.UUID
	studentUser   uuid.UUID
	professor     profileModel.ProfessorModel
	student       profileModel.StudentModel
	course        courseModel.CourseModel
}

func buildFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	f := fixture{professorUser: uuid.New(), studentUser: uuid.New()}
	f.professor = profileModel.ProfessorModel{ProfessorUserID: f.professorUser}
	require.NoError(t, db.Create(&f.professor).Error)
	f.student = profileModel.StudentModel{StudentUserID: f.studentUser}
	require.NoError(t, db.Create(&f.student).Error)
	f.course = courseModel.CourseModel{
		CourseProfessorID: f.professor.ProfessorID,
		CourseTitle:       "Pottery",
	}
	require.NoError(t, db.Create(&f.course).Error)
	return f
}

func TestEnrollmentCreateAndDuplicate(t *testing.T) {
	db := setupDB(t)
	f := buildFixture(t, db)
	app := newApp(db, f.studentUser, constants.RoleStudent)
	body := `{"course_id":"` + f.course.CourseID.String() + `"}`

	status, parsed := doJSON(t, app, "PUT", "/enrollments/"+uuid.NewString(), `{"accepted":true}`)
	require.Equal(t, fiber.StatusNotFound, status)

	status, parsed = doJSON(t, app, "POST", "/enrollments", body)
	require.Equal(t, fiber.StatusCreated, status)

	// the professor got the deciding grant
	var grants int64
	require.NoError(t, db.Model(&accessModel.PermissionGrantModel{}).
		Where("permission_grant_user_id = ?", f.professorUser).
		Count(&grants).Error)
	require.EqualValues(t, 1, grants)

	// second submission trips the unique index and surfaces as a form error
	status, parsed = doJSON(t, app, "POST", "/enrollments", body)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, false, parsed["success"])
	errs, ok := parsed["errors"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, errs, "course_id")
}

func TestEnrollmentDecisionAuthorization(t *testing.T) {
	db := setupDB(t)
	f := buildFixture(t, db)

	studentApp := newApp(db, f.studentUser, constants.RoleStudent)
	status, _ := doJSON(t, studentApp, "POST", "/enrollments",
		`{"course_id":"`+f.course.CourseID.String()+`"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var enrollment enrollModel.EnrollmentModel
	require.NoError(t, db.First(&enrollment).Error)
	target := "/enrollments/" + enrollment.EnrollmentID.String()

	// the student cannot decide their own request
	status, _ = doJSON(t, studentApp, "PUT", target, `{"accepted":true}`)
	require.Equal(t, fiber.StatusForbidden, status)

	// a professor without the grant cannot either
	strangerUser := uuid.New()
	require.NoError(t, db.Create(&profileModel.ProfessorModel{ProfessorUserID: strangerUser}).Error)
	strangerApp := newApp(db, strangerUser, constants.RoleProfessor)
	status, _ = doJSON(t, strangerApp, "PUT", target, `{"accepted":true}`)
	require.Equal(t, fiber.StatusForbidden, status)

	// the course professor can
	profApp := newApp(db, f.professorUser, constants.RoleProfessor)
	status, _ = doJSON(t, profApp, "PUT", target, `{"accepted":true}`)
	require.Equal(t, fiber.StatusOK, status)

	require.NoError(t, db.First(&enrollment, "enrollment_id = ?", enrollment.EnrollmentID).Error)
	require.NotNil(t, enrollment.EnrollmentAccepted)
	require.True(t, *enrollment.EnrollmentAccepted)

	// rejecting a decided request is allowed: tri-state flips both ways
	status, _ = doJSON(t, profApp, "PUT", target, `{"accepted":false}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, db.First(&enrollment, "enrollment_id = ?", enrollment.EnrollmentID).Error)
	require.False(t, *enrollment.EnrollmentAccepted)
}
