package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	helper "opencourse_backend/internals/helpers"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&EnrollmentModel{}))
	return db
}

func TestDuplicateEnrollmentRejected(t *testing.T) {
	db := setupDB(t)
	courseID := uuid.New()
	studentID := uuid.New()

	require.NoError(t, db.Create(&EnrollmentModel{
		EnrollmentCourseID:  courseID,
		EnrollmentStudentID: studentID,
	}).Error)

	err := db.Create(&EnrollmentModel{
		EnrollmentCourseID:  courseID,
		EnrollmentStudentID: studentID,
	}).Error
	require.Error(t, err)
	require.True(t, helper.IsDuplicateKey(err))

	// same student, other course is fine
	require.NoError(t, db.Create(&EnrollmentModel{
		EnrollmentCourseID:  uuid.New(),
		EnrollmentStudentID: studentID,
	}).Error)
}

func TestHasAcceptedEnrollmentFollowsTransitions(t *testing.T) {
	db := setupDB(t)
	courseID := uuid.New()
	studentID := uuid.New()

	m := EnrollmentModel{
		EnrollmentCourseID:  courseID,
		EnrollmentStudentID: studentID,
	}
	require.NoError(t, db.Create(&m).Error)

	// pending
	ok, err := HasAcceptedEnrollment(db, courseID, studentID)
	require.NoError(t, err)
	require.False(t, ok)

	// accepted
	accepted := true
	require.NoError(t, db.Model(&m).Update("enrollment_accepted", &accepted).Error)
	ok, err = HasAcceptedEnrollment(db, courseID, studentID)
	require.NoError(t, err)
	require.True(t, ok)

	// flipped to rejected: access disappears on the next check
	accepted = false
	require.NoError(t, db.Model(&m).Update("enrollment_accepted", &accepted).Error)
	ok, err = HasAcceptedEnrollment(db, courseID, studentID)
	require.NoError(t, err)
	require.False(t, ok)

	// and back again
	accepted = true
	require.NoError(t, db.Model(&m).Update("enrollment_accepted", &accepted).Error)
	ok, err = HasAcceptedEnrollment(db, courseID, studentID)
	require.NoError(t, err)
	require.True(t, ok)
}
