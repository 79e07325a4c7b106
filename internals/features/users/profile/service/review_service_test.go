package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "opencourse_backend/internals/features/users/profile/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.ProfessorModel{},
		&model.StudentModel{},
		&model.ReviewModel{},
	))
	return db
}

func addReview(t *testing.T, db *gorm.DB, professorID uuid.UUID, score int16) {
	t.Helper()
	require.NoError(t, db.Create(&model.ReviewModel{
		ReviewProfessorID: professorID,
		ReviewStudentID:   uuid.New(),
		ReviewScore:       score,
		ReviewText:        "fine",
	}).Error)
}

func TestAverageScore(t *testing.T) {
	db := setupDB(t)
	professorID := uuid.New()

	// no reviews yet
	avg, err := AverageScore(db, professorID)
	require.NoError(t, err)
	require.Nil(t, avg)

	addReview(t, db, professorID, 3)
	addReview(t, db, professorID, 5)
	addReview(t, db, professorID, 4)

	// another professor's reviews must not leak into the average
	addReview(t, db, uuid.New(), 1)

	avg, err = AverageScore(db, professorID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	require.InDelta(t, 4.0, *avg, 0.0001)
}

func TestRecentReviewsCapped(t *testing.T) {
	db := setupDB(t)
	professorID := uuid.New()

	for i := 0; i < 15; i++ {
		addReview(t, db, professorID, 4)
	}

	rows, err := RecentReviews(db, professorID, 10)
	require.NoError(t, err)
	require.Len(t, rows, 10)
}
