package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfessorModel struct {
	// PK
	ProfessorID uuid.UUID `gorm:"column:professor_id;type:uuid;primaryKey" json:"professor_id"`

	// FK (one profile per user)
	ProfessorUserID uuid.UUID `gorm:"column:professor_user_id;type:uuid;not null;uniqueIndex" json:"professor_user_id"`

	// Shared profile shape
	ProfessorPicture  *string         `gorm:"column:professor_picture;type:text" json:"professor_picture,omitempty"`
	ProfessorAddress  *string         `gorm:"column:professor_address;type:varchar(255)" json:"professor_address,omitempty"`
	ProfessorCity     *string         `gorm:"column:professor_city;type:varchar(60)" json:"professor_city,omitempty"`
	ProfessorDOB      *datatypes.Date `gorm:"column:professor_dob" json:"professor_dob,omitempty"`
	ProfessorEdulevel *string         `gorm:"column:professor_edulevel;type:text" json:"professor_edulevel,omitempty"`
	ProfessorTel      string          `gorm:"column:professor_tel;type:varchar(20);not null;default:''" json:"professor_tel"`
	ProfessorWhatsapp *string         `gorm:"column:professor_whatsapp;type:varchar(20)" json:"professor_whatsapp,omitempty"`
	ProfessorEmail    *string         `gorm:"column:professor_email;type:varchar(60)" json:"professor_email,omitempty"`

	// Incremented by the public contact-request endpoint
	ProfessorContactsRequests int `gorm:"column:professor_contacts_requests;not null;default:0" json:"professor_contacts_requests"`

	// Professor-specific
	ProfessorBio             *string    `gorm:"column:professor_bio;type:text" json:"professor_bio,omitempty"`
	ProfessorYearsExperience *int16     `gorm:"column:professor_years_experience" json:"professor_years_experience,omitempty"`
	ProfessorActPosition     *string    `gorm:"column:professor_act_position;type:varchar(100)" json:"professor_act_position,omitempty"`
	ProfessorDateExpire      *time.Time `gorm:"column:professor_date_expire" json:"professor_date_expire,omitempty"`
	ProfessorListed          *bool      `gorm:"column:professor_listed" json:"professor_listed,omitempty"`
	ProfessorFeesPaid        *bool      `gorm:"column:professor_fees_paid" json:"professor_fees_paid,omitempty"`

	// timestamps
	ProfessorCreatedAt time.Time `gorm:"column:professor_created_at;autoCreateTime" json:"professor_created_at"`
	ProfessorUpdatedAt time.Time `gorm:"column:professor_updated_at;autoUpdateTime" json:"professor_updated_at"`
}

func (ProfessorModel) TableName() string { return "professors" }

func (m *ProfessorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProfessorID == uuid.Nil {
		m.ProfessorID = uuid.New()
	}
	return nil
}
