package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   Taxonomy reference tables used to categorize courses.
   Durations, currencies and location types are protected
   from deletion while referenced; levels are nullable on
   course rows (SET NULL semantics at the schema level).
   ========================================================= */

type CityModel struct {
	ID         uuid.UUID `gorm:"column:city_id;type:uuid;primaryKey" json:"city_id"`
	Name       string    `gorm:"column:city_name;type:varchar(60);not null" json:"city_name"`
	PostalCode *string   `gorm:"column:city_postal_code;type:varchar(8)" json:"city_postal_code,omitempty"`

	LatitudeSouth *float64 `gorm:"column:city_latitude_south" json:"city_latitude_south,omitempty"`
	LatitudeNorth *float64 `gorm:"column:city_latitude_north" json:"city_latitude_north,omitempty"`
	LongitudeWest *float64 `gorm:"column:city_longitude_west" json:"city_longitude_west,omitempty"`
	LongitudeEast *float64 `gorm:"column:city_longitude_east" json:"city_longitude_east,omitempty"`
}

func (CityModel) TableName() string { return "cities" }

func (m *CityModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseLevelModel struct {
	ID          uuid.UUID `gorm:"column:course_level_id;type:uuid;primaryKey" json:"course_level_id"`
	Name        string    `gorm:"column:course_level_name;type:varchar(30);not null" json:"course_level_name"`
	Description *string   `gorm:"column:course_level_description;type:varchar(255)" json:"course_level_description,omitempty"`
}

func (CourseLevelModel) TableName() string { return "course_levels" }

func (m *CourseLevelModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseDurationModel struct {
	ID      uuid.UUID `gorm:"column:course_duration_id;type:uuid;primaryKey" json:"course_duration_id"`
	Minutes int16     `gorm:"column:course_duration_minutes;not null" json:"course_duration_minutes"`
}

func (CourseDurationModel) TableName() string { return "course_durations" }

func (m *CourseDurationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseAgeModel struct {
	ID     uuid.UUID `gorm:"column:course_age_id;type:uuid;primaryKey" json:"course_age_id"`
	Name   string    `gorm:"column:course_age_name;type:varchar(50);not null" json:"course_age_name"`
	MaxAge *int16    `gorm:"column:course_age_max" json:"course_age_max,omitempty"`
}

func (CourseAgeModel) TableName() string { return "course_ages" }

func (m *CourseAgeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseAreaModel struct {
	ID          uuid.UUID `gorm:"column:course_area_id;type:uuid;primaryKey" json:"course_area_id"`
	Name        string    `gorm:"column:course_area_name;type:varchar(30);not null" json:"course_area_name"`
	Description *string   `gorm:"column:course_area_description;type:varchar(255)" json:"course_area_description,omitempty"`
}

func (CourseAreaModel) TableName() string { return "course_areas" }

func (m *CourseAreaModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseLanguageModel struct {
	ID   uuid.UUID `gorm:"column:course_language_id;type:uuid;primaryKey" json:"course_language_id"`
	Name string    `gorm:"column:course_language_name;type:varchar(30);not null" json:"course_language_name"`
	Tag  *string   `gorm:"column:course_language_tag;type:varchar(2)" json:"course_language_tag,omitempty"`
}

func (CourseLanguageModel) TableName() string { return "course_languages" }

func (m *CourseLanguageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CurrencyModel struct {
	ID      uuid.UUID `gorm:"column:currency_id;type:uuid;primaryKey" json:"currency_id"`
	Name    string    `gorm:"column:currency_name;type:varchar(20);not null" json:"currency_name"`
	ISOCode string    `gorm:"column:currency_iso_code;type:varchar(5);not null" json:"currency_iso_code"`
	Symbol  string    `gorm:"column:currency_symbol;type:varchar(5);not null" json:"currency_symbol"`
}

func (CurrencyModel) TableName() string { return "currencies" }

func (m *CurrencyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CourseLocationTypeModel struct {
	ID   uuid.UUID `gorm:"column:course_location_type_id;type:uuid;primaryKey" json:"course_location_type_id"`
	Name string    `gorm:"column:course_location_type_name;type:varchar(25);not null" json:"course_location_type_name"`
}

func (CourseLocationTypeModel) TableName() string { return "course_location_types" }

func (m *CourseLocationTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type HandoutSectionModel struct {
	ID   uuid.UUID `gorm:"column:handout_section_id;type:uuid;primaryKey" json:"handout_section_id"`
	Name string    `gorm:"column:handout_section_name;type:varchar(40);not null" json:"handout_section_name"`
}

func (HandoutSectionModel) TableName() string { return "handout_sections" }

func (m *HandoutSectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
