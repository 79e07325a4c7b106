package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "opencourse_backend/internals/features/users/profile/model"
)

// ProfessorByUserID resolves the professor profile for an authenticated user.
func ProfessorByUserID(db *gorm.DB, userID uuid.UUID) (*model.ProfessorModel, error) {
	var m model.ProfessorModel
	if err := db.First(&m, "professor_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// StudentByUserID resolves the student profile for an authenticated user.
func StudentByUserID(db *gorm.DB, userID uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := db.First(&m, "student_user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
