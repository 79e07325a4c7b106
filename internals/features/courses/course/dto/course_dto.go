package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "opencourse_backend/internals/features/courses/course/model"
)

/* =========================================================
   REQUEST: CREATE / UPDATE (single submission including the
   dependent course_locations collection)
   ========================================================= */

type CourseLocationRequest struct {
	// ID set = update that row; absent rows are deleted, new rows created.
	ID *uuid.UUID `json:"course_location_id,omitempty"`

	TypeID     *uuid.UUID `json:"location_type_id,omitempty"`
	CurrencyID uuid.UUID  `json:"currency_id" validate:"required"`
	Price      int        `json:"price" validate:"gte=0"`

	Description    *string    `json:"description,omitempty"`
	NumberSessions *int16     `json:"number_sessions,omitempty" validate:"omitempty,gte=1"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

type CourseUpsertRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"description"`
	ExtraInfo   *string `json:"extra_info,omitempty"`

	CenterID   *uuid.UUID `json:"center_id,omitempty"`
	CityID     *uuid.UUID `json:"city_id,omitempty"`
	LevelID    *uuid.UUID `json:"level_id,omitempty"`
	DurationID *uuid.UUID `json:"duration_id,omitempty"`

	AreaIDs     []uuid.UUID `json:"area_ids" validate:"required,min=1"`
	AgeIDs      []uuid.UUID `json:"age_ids"`
	LanguageIDs []uuid.UUID `json:"language_ids"`

	Locations []CourseLocationRequest `json:"locations" validate:"required,min=1,dive"`
}

func (r *CourseUpsertRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.ExtraInfo != nil {
		v := strings.TrimSpace(*r.ExtraInfo)
		if v == "" {
			r.ExtraInfo = nil
		} else {
			r.ExtraInfo = &v
		}
	}
}

func (r *CourseUpsertRequest) ToModel(professorID uuid.UUID) *model.CourseModel {
	return &model.CourseModel{
		CourseProfessorID: professorID,
		CourseCenterID:    r.CenterID,
		CourseCityID:      r.CityID,
		CourseLevelID:     r.LevelID,
		CourseDurationID:  r.DurationID,
		CourseTitle:       r.Title,
		CourseDescription: r.Description,
		CourseExtraInfo:   r.ExtraInfo,
	}
}

func (r *CourseUpsertRequest) Apply(m *model.CourseModel) {
	m.CourseCenterID = r.CenterID
	m.CourseCityID = r.CityID
	m.CourseLevelID = r.LevelID
	m.CourseDurationID = r.DurationID
	m.CourseTitle = r.Title
	m.CourseDescription = r.Description
	m.CourseExtraInfo = r.ExtraInfo
}

/* =========================================================
   RESPONSE
   ========================================================= */

type CourseLocationResponse struct {
	ID             uuid.UUID  `json:"course_location_id"`
	TypeID         *uuid.UUID `json:"location_type_id,omitempty"`
	CurrencyID     uuid.UUID  `json:"currency_id"`
	Price          int        `json:"price"`
	Description    *string    `json:"description,omitempty"`
	NumberSessions *int16     `json:"number_sessions,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
}

func FromLocationModel(m *model.CourseLocationModel) CourseLocationResponse {
	return CourseLocationResponse{
		ID:             m.CourseLocationID,
		TypeID:         m.CourseLocationTypeID,
		CurrencyID:     m.CourseLocationCurrencyID,
		Price:          m.CourseLocationPrice,
		Description:    m.CourseLocationDescription,
		NumberSessions: m.CourseLocationNumberSessions,
		StartDate:      m.CourseLocationStartDate,
		EndDate:        m.CourseLocationEndDate,
	}
}

type CourseResponse struct {
	CourseID    uuid.UUID  `json:"course_id"`
	ProfessorID uuid.UUID  `json:"professor_id"`
	CenterID    *uuid.UUID `json:"center_id,omitempty"`
	CityID      *uuid.UUID `json:"city_id,omitempty"`
	LevelID     *uuid.UUID `json:"level_id,omitempty"`
	DurationID  *uuid.UUID `json:"duration_id,omitempty"`

	Title       string  `json:"title"`
	Description string  `json:"description"`
	ExtraInfo   *string `json:"extra_info,omitempty"`

	AreaIDs     []uuid.UUID `json:"area_ids"`
	AgeIDs      []uuid.UUID `json:"age_ids"`
	LanguageIDs []uuid.UUID `json:"language_ids"`

	Locations []CourseLocationResponse `json:"locations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromCourseModel(m *model.CourseModel, areaIDs, ageIDs, langIDs []uuid.UUID, locations []model.CourseLocationModel) CourseResponse {
	locResp := make([]CourseLocationResponse, 0, len(locations))
	for i := range locations {
		locResp = append(locResp, FromLocationModel(&locations[i]))
	}
	if areaIDs == nil {
		areaIDs = []uuid.UUID{}
	}
	if ageIDs == nil {
		ageIDs = []uuid.UUID{}
	}
	if langIDs == nil {
		langIDs = []uuid.UUID{}
	}
	return CourseResponse{
		CourseID:    m.CourseID,
		ProfessorID: m.CourseProfessorID,
		CenterID:    m.CourseCenterID,
		CityID:      m.CourseCityID,
		LevelID:     m.CourseLevelID,
		DurationID:  m.CourseDurationID,
		Title:       m.CourseTitle,
		Description: m.CourseDescription,
		ExtraInfo:   m.CourseExtraInfo,
		AreaIDs:     areaIDs,
		AgeIDs:      ageIDs,
		LanguageIDs: langIDs,
		Locations:   locResp,
		CreatedAt:   m.CourseCreatedAt,
		UpdatedAt:   m.CourseUpdatedAt,
	}
}
