package service

import (
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "opencourse_backend/internals/features/users/profile/model"
)

// AverageScore computes the professor's mean review score on demand.
// Returns nil when the professor has no reviews.
func AverageScore(db *gorm.DB, professorID uuid.UUID) (*float64, error) {
	var avg sql.NullFloat64
	err := db.Model(&model.ReviewModel{}).
		Where("review_professor_id = ?", professorID).
		Select("AVG(review_score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

// RecentReviews returns the newest reviews for a professor, capped at limit.
func RecentReviews(db *gorm.DB, professorID uuid.UUID, limit int) ([]model.ReviewModel, error) {
	var rows []model.ReviewModel
	err := db.
		Where("review_professor_id = ?", professorID).
		Order("review_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
