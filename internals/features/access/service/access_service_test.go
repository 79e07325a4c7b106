package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"opencourse_backend/internals/constants"
	"opencourse_backend/internals/features/access/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PermissionGrantModel{}))
	return db
}

func TestHasCapability(t *testing.T) {
	require.True(t, HasCapability(constants.RoleProfessor, CapManageCourse))
	require.True(t, HasCapability(constants.RoleProfessor, CapManageJoinRequest))
	require.False(t, HasCapability(constants.RoleStudent, CapManageCourse))
	require.False(t, HasCapability("", CapManageCourse))
	require.False(t, HasCapability(constants.RoleProfessor, "manage_everything"))
}

func TestCanManageRequiresBothConditions(t *testing.T) {
	db := setupDB(t)
	userID := uuid.New()
	objectID := uuid.New()

	// capability without a grant
	ok, err := CanManage(db, userID, constants.RoleProfessor, CapManageCourse, objectID)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, Grant(db, userID, CapManageCourse, objectID))

	ok, err = CanManage(db, userID, constants.RoleProfessor, CapManageCourse, objectID)
	require.NoError(t, err)
	require.True(t, ok)

	// grant without the capability class: a student holding a grant row still
	// fails the check
	ok, err = CanManage(db, userID, constants.RoleStudent, CapManageCourse, objectID)
	require.NoError(t, err)
	require.False(t, ok)

	// grant is object-scoped
	ok, err = CanManage(db, userID, constants.RoleProfessor, CapManageCourse, uuid.New())
	require.NoError(t, err)
	require.False(t, ok)

	// and capability-scoped
	ok, err = CanManage(db, userID, constants.RoleProfessor, CapManageHandout, objectID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestGrantDuplicateRejected(t *testing.T) {
	db := setupDB(t)
	userID := uuid.New()
	objectID := uuid.New()

	require.NoError(t, Grant(db, userID, CapManageCenter, objectID))
	require.Error(t, Grant(db, userID, CapManageCenter, objectID))
}

func TestRevokeObject(t *testing.T) {
	db := setupDB(t)
	objectID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	require.NoError(t, Grant(db, first, CapManageEnrollment, objectID))
	require.NoError(t, Grant(db, second, CapManageEnrollment, objectID))
	require.NoError(t, Grant(db, first, CapManageEnrollment, uuid.New()))

	require.NoError(t, RevokeObject(db, CapManageEnrollment, objectID))

	ok, err := HasGrant(db, first, CapManageEnrollment, objectID)
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = HasGrant(db, second, CapManageEnrollment, objectID)
	require.NoError(t, err)
	require.False(t, ok)

	var remaining int64
	require.NoError(t, db.Model(&model.PermissionGrantModel{}).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}
