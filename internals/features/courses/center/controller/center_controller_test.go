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
	accessService "opencourse_backend/internals/features/access/service"
	centerModel "opencourse_backend/internals/features/courses/center/model"
	courseModel "opencourse_backend/internals/features/courses/course/model"
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
		&courseModel.CourseModel{},
		&joinModel.JoinRequestModel{},
		&profileModel.ProfessorModel{},
		&accessModel.PermissionGrantModel{},
	))
	return db
}

func newApp(db *gorm.DB, userID uuid.UUID, role string) *fiber.App {
	h := NewCenterController(db, validator.New())
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		c.Locals("user_role", role)
		return c.Next()
	})
	app.Put("/centers/:id", h.Edit)
	app.Delete("/centers/:id", h.Delete)
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

func TestCenterEditMembershipRule(t *testing.T) {
	db := setupDB(t)

	adminUser := uuid.New()
	admin := profileModel.ProfessorModel{ProfessorUserID: adminUser}
	require.NoError(t, db.Create(&admin).Error)

	memberUser := uuid.New()
	member := profileModel.ProfessorModel{ProfessorUserID: memberUser}
	require.NoError(t, db.Create(&member).Error)

	center := centerModel.CenterModel{CenterAdminID: admin.ProfessorID, CenterName: "Riverside"}
	require.NoError(t, db.Create(&center).Error)
	require.NoError(t, accessService.Grant(db, adminUser, accessService.CapManageCenter, center.CenterID))

	target := "/centers/" + center.CenterID.String()
	body := `{"name":"Riverside, renamed"}`

	// admin edits through the grant
	adminApp := newApp(db, adminUser, constants.RoleProfessor)
	status, _ := doJSON(t, adminApp, "PUT", target, body)
	require.Equal(t, fiber.StatusOK, status)

	// a professor with no relationship to the center gets 403
	memberApp := newApp(db, memberUser, constants.RoleProfessor)
	status, _ = doJSON(t, memberApp, "PUT", target, body)
	require.Equal(t, fiber.StatusForbidden, status)

	// a pending join request is not membership
	jr := joinModel.JoinRequestModel{
		JoinRequestCenterID:    center.CenterID,
		JoinRequestProfessorID: member.ProfessorID,
	}
	require.NoError(t, db.Create(&jr).Error)
	status, _ = doJSON(t, memberApp, "PUT", target, body)
	require.Equal(t, fiber.StatusForbidden, status)

	// an accepted one is
	accepted := true
	require.NoError(t, db.Model(&jr).Update("join_request_accepted", &accepted).Error)
	status, _ = doJSON(t, memberApp, "PUT", target, `{"name":"Riverside, member edit"}`)
	require.Equal(t, fiber.StatusOK, status)

	var after centerModel.CenterModel
	require.NoError(t, db.First(&after, "center_id = ?", center.CenterID).Error)
	require.Equal(t, "Riverside, member edit", after.CenterName)

	// flipping the request to rejected closes edit access again
	accepted = false
	require.NoError(t, db.Model(&jr).Update("join_request_accepted", &accepted).Error)
	status, _ = doJSON(t, memberApp, "PUT", target, body)
	require.Equal(t, fiber.StatusForbidden, status)
}

func TestCenterDeleteIsAdminOnly(t *testing.T) {
	db := setupDB(t)

	adminUser := uuid.New()
	admin := profileModel.ProfessorModel{ProfessorUserID: adminUser}
	require.NoError(t, db.Create(&admin).Error)

	memberUser := uuid.New()
	member := profileModel.ProfessorModel{ProfessorUserID: memberUser}
	require.NoError(t, db.Create(&member).Error)

	center := centerModel.CenterModel{CenterAdminID: admin.ProfessorID, CenterName: "Riverside"}
	require.NoError(t, db.Create(&center).Error)
	require.NoError(t, accessService.Grant(db, adminUser, accessService.CapManageCenter, center.CenterID))

	// accepted membership lets a professor edit, but never delete
	accepted := true
	require.NoError(t, db.Create(&joinModel.JoinRequestModel{
		JoinRequestCenterID:    center.CenterID,
		JoinRequestProfessorID: member.ProfessorID,
		JoinRequestAccepted:    &accepted,
	}).Error)

	target := "/centers/" + center.CenterID.String()

	memberApp := newApp(db, memberUser, constants.RoleProfessor)
	status, _ := doJSON(t, memberApp, "DELETE", target, "")
	require.Equal(t, fiber.StatusForbidden, status)

	adminApp := newApp(db, adminUser, constants.RoleProfessor)
	status, _ = doJSON(t, adminApp, "DELETE", target, "")
	require.Equal(t, fiber.StatusOK, status)

	var n int64
	require.NoError(t, db.Model(&centerModel.CenterModel{}).Count(&n).Error)
	require.EqualValues(t, 0, n)
}
