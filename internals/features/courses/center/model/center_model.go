package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CenterModel: owned by exactly one professor (the admin); other professors
// attach via accepted join requests.
type CenterModel struct {
	CenterID uuid.UUID `gorm:"column:center_id;type:uuid;primaryKey" json:"center_id"`

	CenterAdminID uuid.UUID `gorm:"column:center_admin_id;type:uuid;not null;index" json:"center_admin_id"`

	CenterName        string  `gorm:"column:center_name;type:varchar(40);not null" json:"center_name"`
	CenterDescription *string `gorm:"column:center_description;type:varchar(255)" json:"center_description,omitempty"`
	CenterPicture     *string `gorm:"column:center_picture;type:text" json:"center_picture,omitempty"`

	CenterCreatedAt time.Time `gorm:"column:center_created_at;autoCreateTime" json:"center_created_at"`
	CenterUpdatedAt time.Time `gorm:"column:center_updated_at;autoUpdateTime" json:"center_updated_at"`
}

func (CenterModel) TableName() string { return "centers" }

func (m *CenterModel) BeforeCreate(tx *gorm.DB) error {
	if m.CenterID == uuid.Nil {
		m.CenterID = uuid.New()
	}
	return nil
}
