package dto

import (
	"strings"
	"time"

	model "opencourse_backend/internals/features/users/profile/model"
)

type ReviewCreateRequest struct {
	Score int16  `json:"score" validate:"required,gte=1,lte=5"`
	Text  string `json:"text" validate:"required,max=2000"`
}

func (r *ReviewCreateRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

type ReviewResponse struct {
	ReviewID    string    `json:"review_id"`
	ProfessorID string    `json:"professor_id"`
	StudentID   string    `json:"student_id"`
	Score       int16     `json:"score"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromReviewModel(m *model.ReviewModel) ReviewResponse {
	return ReviewResponse{
		ReviewID:    m.ReviewID.String(),
		ProfessorID: m.ReviewProfessorID.String(),
		StudentID:   m.ReviewStudentID.String(),
		Score:       m.ReviewScore,
		Text:        m.ReviewText,
		CreatedAt:   m.ReviewCreatedAt,
	}
}
