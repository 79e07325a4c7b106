package dto

import (
	"time"

	"github.com/google/uuid"

	model "opencourse_backend/internals/features/courses/join_request/model"
)

type JoinRequestCreateRequest struct {
	CenterID uuid.UUID `json:"center_id" validate:"required"`
}

type JoinRequestStatusRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

type JoinRequestResponse struct {
	JoinRequestID uuid.UUID `json:"join_request_id"`
	CenterID      uuid.UUID `json:"center_id"`
	ProfessorID   uuid.UUID `json:"professor_id"`
	Accepted      *bool     `json:"accepted"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromJoinRequestModel(m *model.JoinRequestModel) JoinRequestResponse {
	return JoinRequestResponse{
		JoinRequestID: m.JoinRequestID,
		CenterID:      m.JoinRequestCenterID,
		ProfessorID:   m.JoinRequestProfessorID,
		Accepted:      m.JoinRequestAccepted,
		CreatedAt:     m.JoinRequestCreatedAt,
		UpdatedAt:     m.JoinRequestUpdatedAt,
	}
}
