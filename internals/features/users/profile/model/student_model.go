package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	// FK (one profile per user)
	StudentUserID uuid.UUID `gorm:"column:student_user_id;type:uuid;not null;uniqueIndex" json:"student_user_id"`

	// Shared profile shape
	StudentPicture  *string         `gorm:"column:student_picture;type:text" json:"student_picture,omitempty"`
	StudentAddress  *string         `gorm:"column:student_address;type:varchar(255)" json:"student_address,omitempty"`
	StudentCity     *string         `gorm:"column:student_city;type:varchar(60)" json:"student_city,omitempty"`
	StudentDOB      *datatypes.Date `gorm:"column:student_dob" json:"student_dob,omitempty"`
	StudentEdulevel *string         `gorm:"column:student_edulevel;type:text" json:"student_edulevel,omitempty"`
	StudentTel      string          `gorm:"column:student_tel;type:varchar(20);not null;default:''" json:"student_tel"`
	StudentWhatsapp *string         `gorm:"column:student_whatsapp;type:varchar(20)" json:"student_whatsapp,omitempty"`
	StudentEmail    *string         `gorm:"column:student_email;type:varchar(60)" json:"student_email,omitempty"`

	StudentContactsRequests int `gorm:"column:student_contacts_requests;not null;default:0" json:"student_contacts_requests"`

	// timestamps
	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}
