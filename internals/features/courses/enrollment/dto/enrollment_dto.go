package dto

import (
	"time"

	"github.com/google/uuid"

	model "opencourse_backend/internals/features/courses/enrollment/model"
)

type EnrollmentCreateRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}

// EnrollmentStatusRequest flips the tri-state. Pending rows are accepted or
// rejected; an earlier decision may be flipped later.
type EnrollmentStatusRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

type EnrollmentResponse struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	CourseID     uuid.UUID `json:"course_id"`
	StudentID    uuid.UUID `json:"student_id"`
	Accepted     *bool     `json:"accepted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromEnrollmentModel(m *model.EnrollmentModel) EnrollmentResponse {
	return EnrollmentResponse{
		EnrollmentID: m.EnrollmentID,
		CourseID:     m.EnrollmentCourseID,
		StudentID:    m.EnrollmentStudentID,
		Accepted:     m.EnrollmentAccepted,
		CreatedAt:    m.EnrollmentCreatedAt,
		UpdatedAt:    m.EnrollmentUpdatedAt,
	}
}
