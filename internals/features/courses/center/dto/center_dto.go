package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "opencourse_backend/internals/features/courses/center/model"
)

type CenterUpsertRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,max=40"`
	Description *string `json:"description,omitempty" form:"description" validate:"omitempty,max=255"`
}

func (r *CenterUpsertRequest) Normalize() {
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

func (r *CenterUpsertRequest) ToModel(adminID uuid.UUID) *model.CenterModel {
	return &model.CenterModel{
		CenterAdminID:     adminID,
		CenterName:        r.Name,
		CenterDescription: r.Description,
	}
}

func (r *CenterUpsertRequest) Apply(m *model.CenterModel) {
	m.CenterName = r.Name
	m.CenterDescription = r.Description
}

type CenterResponse struct {
	CenterID    uuid.UUID `json:"center_id"`
	AdminID     uuid.UUID `json:"admin_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Picture     *string   `json:"picture,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromCenterModel(m *model.CenterModel) CenterResponse {
	return CenterResponse{
		CenterID:    m.CenterID,
		AdminID:     m.CenterAdminID,
		Name:        m.CenterName,
		Description: m.CenterDescription,
		Picture:     m.CenterPicture,
		CreatedAt:   m.CenterCreatedAt,
		UpdatedAt:   m.CenterUpdatedAt,
	}
}
