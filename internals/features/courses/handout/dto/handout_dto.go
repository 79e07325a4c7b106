package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "opencourse_backend/internals/features/courses/handout/model"
)

// HandoutUpsertRequest arrives as multipart form data; the attachment rides
// in a separate file part.
type HandoutUpsertRequest struct {
	SectionID uuid.UUID `json:"section_id" form:"section_id" validate:"required"`
	Name      string    `json:"name" form:"name" validate:"required,max=40"`

	Description *string `json:"description,omitempty" form:"description" validate:"omitempty,max=255"`
}

func (r *HandoutUpsertRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		if v == "" {
			r.Description = nil
		} else {
			r.Description = &v
		}
	}
}

func (r *HandoutUpsertRequest) ToModel(courseID uuid.UUID) *model.HandoutModel {
	return &model.HandoutModel{
		HandoutCourseID:    courseID,
		HandoutSectionID:   r.SectionID,
		HandoutName:        r.Name,
		HandoutDescription: r.Description,
	}
}

func (r *HandoutUpsertRequest) Apply(m *model.HandoutModel) {
	m.HandoutSectionID = r.SectionID
	m.HandoutName = r.Name
	m.HandoutDescription = r.Description
}

type HandoutResponse struct {
	HandoutID   uuid.UUID `json:"handout_id"`
	CourseID    uuid.UUID `json:"course_id"`
	SectionID   uuid.UUID `json:"section_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Attachment  string    `json:"attachment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromHandoutModel(m *model.HandoutModel) HandoutResponse {
	return HandoutResponse{
		HandoutID:   m.HandoutID,
		CourseID:    m.HandoutCourseID,
		SectionID:   m.HandoutSectionID,
		Name:        m.HandoutName,
		Description: m.HandoutDescription,
		Attachment:  m.HandoutAttachment,
		CreatedAt:   m.HandoutCreatedAt,
		UpdatedAt:   m.HandoutUpdatedAt,
	}
}
