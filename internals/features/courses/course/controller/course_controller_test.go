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
	centerModel "opencourse_backend/internals/features/courses/center/model"
	dto "opencourse_backend/internals/features/courses/course/dto"
	model "opencourse_backend/internals/features/courses/course/model"
	service "opencourse_backend/internals/features/courses/course/service"
	enrollModel "opencourse_backend/internals/features/courses/enrollment/model"
	joinModel "opencourse_backend/internals/features/courses/join_request/model"
	profileModel "opencourse_backend/internals/features/users/profile/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.CourseModel{},
		&model.CourseLocationModel{},
		&model.CourseAreaLinkModel{},
		&model.CourseAgeLinkModel{},
		&model.CourseLanguageLinkModel{},
		&centerModel.CenterModel{},
		&joinModel.JoinRequestModel{},
		&enrollModel.EnrollmentModel{},
		&profileModel.ProfessorModel{},
		&accessModel.PermissionGrantModel{},
	))
	return db
}

// newApp wires the edit route; userID == uuid.Nil means no authenticated
// locals at all.
func newApp(db *gorm.DB, userID uuid.UUID, role string) *fiber.App {
	h := NewCourseController(db, validator.New())
	app := fiber.New()
	if userID != uuid.Nil {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", userID.String())
			c.Locals("user_role", role)
			return c.Next()
		})
	}
	app.Put("/courses/:id", h.Edit)
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

func seedCourse(t *testing.T, db *gorm.DB) (userID uuid.UUID, professor profileModel.ProfessorModel, course *model.CourseModel) {
	t.Helper()
	userID = uuid.New()
	professor = profileModel.ProfessorModel{ProfessorUserID: userID}
	require.NoError(t, db.Create(&professor).Error)

	course, err := service.CreateWithGrant(db, userID, professor.ProfessorID, dto.CourseUpsertRequest{
		Title:   "Watercolor Basics",
		AreaIDs: []uuid.UUID{uuid.New()},
		Locations: []dto.CourseLocationRequest{
			{CurrencyID: uuid.New(), Price: 2500},
		},
	})
	require.NoError(t, err)
	return userID, professor, course
}

func editBody(t *testing.T, title string, locations []map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"title":     title,
		"area_ids":  []string{uuid.NewString()},
		"locations": locations,
	})
	require.NoError(t, err)
	return string(raw)
}

func TestCourseEditAuthorization(t *testing.T) {
	db := setupDB(t)
	ownerUser, _, course := seedCourse(t, db)
	target := "/courses/" + course.CourseID.String()
	body := editBody(t, "Watercolor Basics, revised", []map[string]interface{}{
		{"currency_id": uuid.NewString(), "price": 3000},
	})

	// no authenticated user
	anonApp := newApp(db, uuid.Nil, "")
	status, _ := doJSON(t, anonApp, "PUT", target, body)
	require.Equal(t, fiber.StatusUnauthorized, status)

	// another professor, no grant on this course
	strangerUser := uuid.New()
	require.NoError(t, db.Create(&profileModel.ProfessorModel{ProfessorUserID: strangerUser}).Error)
	strangerApp := newApp(db, strangerUser, constants.RoleProfessor)
	status, _ = doJSON(t, strangerApp, "PUT", target, body)
	require.Equal(t, fiber.StatusForbidden, status)

	// the owner
	ownerApp := newApp(db, ownerUser, constants.RoleProfessor)
	status, _ = doJSON(t, ownerApp, "PUT", target, body)
	require.Equal(t, fiber.StatusOK, status)

	var after model.CourseModel
	require.NoError(t, db.First(&after, "course_id = ?", course.CourseID).Error)
	require.Equal(t, "Watercolor Basics, revised", after.CourseTitle)
}

func TestCourseEditForeignLocationIDIsFormError(t *testing.T) {
	db := setupDB(t)
	_, _, courseA := seedCourse(t, db)
	ownerB, _, courseB := seedCourse(t, db)

	aLocations, err := service.Locations(db, courseA.CourseID)
	require.NoError(t, err)
	require.Len(t, aLocations, 1)

	// b's owner resubmits a's location id through the endpoint
	body := editBody(t, "Mine Now", []map[string]interface{}{
		{
			"course_location_id": aLocations[0].CourseLocationID.String(),
			"currency_id":        uuid.NewString(),
			"price":              1,
		},
	})
	app := newApp(db, ownerB, constants.RoleProfessor)
	status, parsed := doJSON(t, app, "PUT", "/courses/"+courseB.CourseID.String(), body)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, false, parsed["success"])
	errs, ok := parsed["errors"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, errs, "locations")

	// a's row never moved
	aAfter, err := service.Locations(db, courseA.CourseID)
	require.NoError(t, err)
	require.Len(t, aAfter, 1)
	require.Equal(t, 2500, aAfter[0].CourseLocationPrice)
}
