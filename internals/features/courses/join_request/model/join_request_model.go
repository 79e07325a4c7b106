package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JoinRequestModel: a professor's request to join a center. Same tri-state
// accepted semantics and uniqueness rule as enrollments.
type JoinRequestModel struct {
	JoinRequestID uuid.UUID `gorm:"column:join_request_id;type:uuid;primaryKey" json:"join_request_id"`

	JoinRequestCenterID    uuid.UUID `gorm:"column:join_request_center_id;type:uuid;not null;uniqueIndex:ux_join_requests_center_professor" json:"join_request_center_id"`
	JoinRequestProfessorID uuid.UUID `gorm:"column:join_request_professor_id;type:uuid;not null;uniqueIndex:ux_join_requests_center_professor" json:"join_request_professor_id"`

	JoinRequestAccepted *bool `gorm:"column:join_request_accepted" json:"join_request_accepted"`

	JoinRequestCreatedAt time.Time `gorm:"column:join_request_created_at;autoCreateTime" json:"join_request_created_at"`
	JoinRequestUpdatedAt time.Time `gorm:"column:join_request_updated_at;autoUpdateTime" json:"join_request_updated_at"`
}

func (JoinRequestModel) TableName() string { return "join_requests" }

func (m *JoinRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.JoinRequestID == uuid.Nil {
		m.JoinRequestID = uuid.New()
	}
	return nil
}

// HasAcceptedJoinRequest reports whether the professor is attached to the
// center via an accepted join request.
func HasAcceptedJoinRequest(db *gorm.DB, centerID, professorID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&JoinRequestModel{}).
		Where("join_request_center_id = ? AND join_request_professor_id = ? AND join_request_accepted = ?",
			centerID, professorID, true).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
