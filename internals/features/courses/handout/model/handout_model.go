package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HandoutModel: course material, visible to students only through an accepted
// enrollment on the owning course.
type HandoutModel struct {
	HandoutID uuid.UUID `gorm:"column:handout_id;type:uuid;primaryKey" json:"handout_id"`

	HandoutCourseID  uuid.UUID `gorm:"column:handout_course_id;type:uuid;not null;index" json:"handout_course_id"`
	HandoutSectionID uuid.UUID `gorm:"column:handout_section_id;type:uuid;not null" json:"handout_section_id"`

	HandoutName        string  `gorm:"column:handout_name;type:varchar(40);not null" json:"handout_name"`
	HandoutDescription *string `gorm:"column:handout_description;type:varchar(255)" json:"handout_description,omitempty"`
	HandoutAttachment  string  `gorm:"column:handout_attachment;type:text;not null" json:"handout_attachment"`

	HandoutCreatedAt time.Time `gorm:"column:handout_created_at;autoCreateTime" json:"handout_created_at"`
	HandoutUpdatedAt time.Time `gorm:"column:handout_updated_at;autoUpdateTime" json:"handout_updated_at"`
}

func (HandoutModel) TableName() string { return "handouts" }

func (m *HandoutModel) BeforeCreate(tx *gorm.DB) error {
	if m.HandoutID == uuid.Nil {
		m.HandoutID = uuid.New()
	}
	return nil
}
