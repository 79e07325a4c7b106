package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseModel struct {
	// PK
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`

	// FK
	CourseProfessorID uuid.UUID  `gorm:"column:course_professor_id;type:uuid;not null;index" json:"course_professor_id"`
	CourseCenterID    *uuid.UUID `gorm:"column:course_center_id;type:uuid;index" json:"course_center_id,omitempty"`
	CourseCityID      *uuid.UUID `gorm:"column:course_city_id;type:uuid;index" json:"course_city_id,omitempty"`
	CourseLevelID     *uuid.UUID `gorm:"column:course_level_id;type:uuid" json:"course_level_id,omitempty"`
	CourseDurationID  *uuid.UUID `gorm:"column:course_duration_id;type:uuid" json:"course_duration_id,omitempty"`

	CourseTitle       string  `gorm:"column:course_title;type:varchar(100);not null" json:"course_title"`
	CourseDescription string  `gorm:"column:course_description;type:text;not null;default:''" json:"course_description"`
	CourseExtraInfo   *string `gorm:"column:course_extra_info;type:varchar(250)" json:"course_extra_info,omitempty"`

	// Listing / hosting flags (tri-state like the legacy schema)
	CourseActive     *bool `gorm:"column:course_active" json:"course_active,omitempty"`
	CoursePayActive  *bool `gorm:"column:course_pay_active" json:"course_pay_active,omitempty"`
	CourseHosted     *bool `gorm:"column:course_hosted" json:"course_hosted,omitempty"`
	CourseHostActive *bool `gorm:"column:course_host_active" json:"course_host_active,omitempty"`

	CourseDateExp       *time.Time `gorm:"column:course_date_exp" json:"course_date_exp,omitempty"`
	CourseStartHostDate *time.Time `gorm:"column:course_start_host_date" json:"course_start_host_date,omitempty"`
	CourseEndHostDate   *time.Time `gorm:"column:course_end_host_date" json:"course_end_host_date,omitempty"`

	// timestamps
	CourseCreatedAt time.Time `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt time.Time `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}

// CourseLocationModel: dependent collection edited alongside the parent course
// in a single submission.
type CourseLocationModel struct {
	CourseLocationID uuid.UUID `gorm:"column:course_location_id;type:uuid;primaryKey" json:"course_location_id"`

	CourseLocationCourseID   uuid.UUID  `gorm:"column:course_location_course_id;type:uuid;not null;index" json:"course_location_course_id"`
	CourseLocationTypeID     *uuid.UUID `gorm:"column:course_location_type_id;type:uuid" json:"course_location_type_id,omitempty"`
	CourseLocationCurrencyID uuid.UUID  `gorm:"column:course_location_currency_id;type:uuid;not null" json:"course_location_currency_id"`

	CourseLocationDescription    *string `gorm:"column:course_location_description;type:varchar(100)" json:"course_location_description,omitempty"`
	CourseLocationPrice          int     `gorm:"column:course_location_price;not null" json:"course_location_price"`
	CourseLocationNumberSessions *int16  `gorm:"column:course_location_number_sessions" json:"course_location_number_sessions,omitempty"`

	CourseLocationStartDate *time.Time `gorm:"column:course_location_start_date" json:"course_location_start_date,omitempty"`
	CourseLocationEndDate   *time.Time `gorm:"column:course_location_end_date" json:"course_location_end_date,omitempty"`
}

func (CourseLocationModel) TableName() string { return "course_locations" }

func (m *CourseLocationModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseLocationID == uuid.Nil {
		m.CourseLocationID = uuid.New()
	}
	return nil
}

/* =========================================================
   M2M link tables: course <-> area / age / language
   ========================================================= */

type CourseAreaLinkModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	AreaID   uuid.UUID `gorm:"column:course_area_id;type:uuid;primaryKey" json:"course_area_id"`
}

func (CourseAreaLinkModel) TableName() string { return "course_area_links" }

type CourseAgeLinkModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	AgeID    uuid.UUID `gorm:"column:course_age_id;type:uuid;primaryKey" json:"course_age_id"`
}

func (CourseAgeLinkModel) TableName() string { return "course_age_links" }

type CourseLanguageLinkModel struct {
	CourseID   uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`
	LanguageID uuid.UUID `gorm:"column:course_language_id;type:uuid;primaryKey" json:"course_language_id"`
}

func (CourseLanguageLinkModel) TableName() string { return "course_language_links" }
