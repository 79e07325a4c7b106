package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel: a student rates a professor. The author is a direct student FK;
// multiple reviews per (student, professor) pair are allowed.
type ReviewModel struct {
	ReviewID uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`

	ReviewProfessorID uuid.UUID `gorm:"column:review_professor_id;type:uuid;not null;index" json:"review_professor_id"`
	ReviewStudentID   uuid.UUID `gorm:"column:review_student_id;type:uuid;not null;index" json:"review_student_id"`

	ReviewScore int16  `gorm:"column:review_score;not null" json:"review_score"`
	ReviewText  string `gorm:"column:review_text;type:text;not null" json:"review_text"`

	ReviewCreatedAt time.Time `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (m *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReviewID == uuid.Nil {
		m.ReviewID = uuid.New()
	}
	return nil
}
