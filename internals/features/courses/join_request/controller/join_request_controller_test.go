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
		&centerModel.CenterModel{},
		&joinModel.JoinRequestModel{},
		&profileModel.ProfessorModel{},
		&accessModel.PermissionGrantModel{},
	))
	return db
}

func newApp(db *gorm.DB, userID uuid.UUID, role string) *fiber.App {
	h := NewJoinRequestController(db, validator.New())
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Post("/join-requests", h.Create)
	app.Put("/join-requests/:id", h.UpdateStatus)
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

func TestJoinRequestCreateAndDuplicate(t *testing.T) {
	db := setupDB(t)

	adminUser := uuid.New()
	admin := profileModel.ProfessorModel{ProfessorUserID: adminUser}
	require.NoError(t, db.Create(&admin).Error)

	applicantUser := uuid.New()
	applicant := profileModel.ProfessorModel{ProfessorUserID: applicantUser}
	require.NoError(t, db.Create(&applicant).Error)

	center := centerModel.CenterModel{CenterAdminID: admin.ProfessorID, CenterName: "Riverside"}
	require.NoError(t, db.Create(&center).Error)

	app := newApp(db, applicantUser, constants.RoleProfessor)
	body := `{"center_id":"` + center.CenterID.String() + `"}`

	status, _ := doJSON(t, app, "POST", "/join-requests", body)
	require.Equal(t, fiber.StatusCreated, status)

	// the center admin got the deciding grant
	var grants int64
	require.NoError(t, db.Model(&accessModel.PermissionGrantModel{}).
		Where("permission_grant_user_id = ?", adminUser).
		Count(&grants).Error)
	require.EqualValues(t, 1, grants)

	// second request for the same (center, professor) trips the unique index
	status, parsed := doJSON(t, app, "POST", "/join-requests", body)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, false, parsed["success"])
	errs, ok := parsed["errors"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, errs, "center_id")

	// exactly one row exists
	var rows int64
	require.NoError(t, db.Model(&joinModel.JoinRequestModel{}).Count(&rows).Error)
	require.EqualValues(t, 1, rows)
}

func TestJoinRequestSelfAdministeredCenterRejected(t *testing.T) {
	db := setupDB(t)

	adminUser := uuid.New()
	admin := profileModel.ProfessorModel{ProfessorUserID: adminUser}
	require.NoError(t, db.Create(&admin).Error)
	center := centerModel.CenterModel{CenterAdminID: admin.ProfessorID, CenterName: "Own"}
	require.NoError(t, db.Create(&center).Error)

	app := newApp(db, adminUser, constants.RoleProfessor)
	status, parsed := doJSON(t, app, "POST", "/join-requests",
		`{"center_id":"`+center.CenterID.String()+`"}`)
	require.Equal(t, fiber.StatusBadRequest, status)
	errs, ok := parsed["errors"].(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, errs, "center_id")
}

func TestJoinRequestDecisionAuthorization(t *testing.T) {
	db := setupDB(t)

	adminUser := uuid.New()
	admin := profileModel.ProfessorModel{ProfessorUserID: adminUser}
	require.NoError(t, db.Create(&admin).Error)
	applicantUser := uuid.New()
	applicant := profileModel.ProfessorModel{ProfessorUserID: applicantUser}
	require.NoError(t, db.Create(&applicant).Error)
	center := centerModel.CenterModel{CenterAdminID: admin.ProfessorID, CenterName: "Riverside"}
	require.NoError(t, db.Create(&center).Error)

	applicantApp := newApp(db, applicantUser, constants.RoleProfessor)
	status, _ := doJSON(t, applicantApp, "POST", "/join-requests",
		`{"center_id":"`+center.CenterID.String()+`"}`)
	require.Equal(t, fiber.StatusCreated, status)

	var jr joinModel.JoinRequestModel
	require.NoError(t, db.First(&jr).Error)
	target := "/join-requests/" + jr.JoinRequestID.String()

	// the applicant cannot accept their own request
	status, _ = doJSON(t, applicantApp, "PUT", target, `{"accepted":true}`)
	require.Equal(t, fiber.StatusForbidden, status)

	adminApp := newApp(db, adminUser, constants.RoleProfessor)
	status, _ = doJSON(t, adminApp, "PUT", target, `{"accepted":true}`)
	require.Equal(t, fiber.StatusOK, status)

	require.NoError(t, db.First(&jr, "join_request_id = ?", jr.JoinRequestID).Error)
	require.NotNil(t, jr.JoinRequestAccepted)
	require.True(t, *jr.JoinRequestAccepted)
}
