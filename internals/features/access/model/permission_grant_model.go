package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionGrantModel is an object-scoped grant: user X may exercise
// capability Y on object Z. Rows are written at object creation time, never
// retroactively.
type PermissionGrantModel struct {
	PermissionGrantID uuid.UUID `gorm:"column:permission_grant_id;type:uuid;primaryKey" json:"permission_grant_id"`

	PermissionGrantUserID     uuid.UUID `gorm:"column:permission_grant_user_id;type:uuid;not null;uniqueIndex:ux_permission_grants_user_cap_obj" json:"permission_grant_user_id"`
	PermissionGrantCapability string    `gorm:"column:permission_grant_capability;type:varchar(40);not null;uniqueIndex:ux_permission_grants_user_cap_obj" json:"permission_grant_capability"`
	PermissionGrantObjectID   uuid.UUID `gorm:"column:permission_grant_object_id;type:uuid;not null;uniqueIndex:ux_permission_grants_user_cap_obj" json:"permission_grant_object_id"`

	PermissionGrantCreatedAt time.Time `gorm:"column:permission_grant_created_at;autoCreateTime" json:"permission_grant_created_at"`
}

func (PermissionGrantModel) TableName() string { return "permission_grants" }

func (m *PermissionGrantModel) BeforeCreate(tx *gorm.DB) error {
	if m.PermissionGrantID == uuid.Nil {
		m.PermissionGrantID = uuid.New()
	}
	return nil
}
