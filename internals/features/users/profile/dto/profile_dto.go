package dto

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	model "opencourse_backend/internals/features/users/profile/model"
)

const dobLayout = "2006-01-02"

func parseDOB(s *string) (*datatypes.Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(dobLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, errors.New("dob must be formatted YYYY-MM-DD")
	}
	d := datatypes.Date(t)
	return &d, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   PROFESSOR
   ========================================================= */

type ProfessorUpdateRequest struct {
	Tel             *string `json:"tel" form:"tel"`
	Address         *string `json:"address" form:"address"`
	City            *string `json:"city" form:"city"`
	DOB             *string `json:"dob" form:"dob"`
	Edulevel        *string `json:"edulevel" form:"edulevel"`
	Whatsapp        *string `json:"whatsapp" form:"whatsapp"`
	Email           *string `json:"email" form:"email" validate:"omitempty,email"`
	Bio             *string `json:"bio" form:"bio"`
	YearsExperience *int16  `json:"years_experience" form:"years_experience" validate:"omitempty,gte=0,lte=80"`
	ActPosition     *string `json:"act_position" form:"act_position"`
}

func (r *ProfessorUpdateRequest) Normalize() {
	r.Tel = trimPtr(r.Tel)
	r.Address = trimPtr(r.Address)
	r.City = trimPtr(r.City)
	r.Edulevel = trimPtr(r.Edulevel)
	r.Whatsapp = trimPtr(r.Whatsapp)
	r.Email = trimPtr(r.Email)
	r.Bio = trimPtr(r.Bio)
	r.ActPosition = trimPtr(r.ActPosition)
}

func (r *ProfessorUpdateRequest) Apply(m *model.ProfessorModel) error {
	dob, err := parseDOB(r.DOB)
	if err != nil {
		return err
	}
	if dob != nil {
		m.ProfessorDOB = dob
	}
	if r.Tel != nil {
		m.ProfessorTel = *r.Tel
	}
	if r.Address != nil {
		m.ProfessorAddress = r.Address
	}
	if r.City != nil {
		m.ProfessorCity = r.City
	}
	if r.Edulevel != nil {
		m.ProfessorEdulevel = r.Edulevel
	}
	if r.Whatsapp != nil {
		m.ProfessorWhatsapp = r.Whatsapp
	}
	if r.Email != nil {
		m.ProfessorEmail = r.Email
	}
	if r.Bio != nil {
		m.ProfessorBio = r.Bio
	}
	if r.YearsExperience != nil {
		m.ProfessorYearsExperience = r.YearsExperience
	}
	if r.ActPosition != nil {
		m.ProfessorActPosition = r.ActPosition
	}
	return nil
}

type ProfessorResponse struct {
	ProfessorID              string   `json:"professor_id"`
	ProfessorUserID          string   `json:"professor_user_id"`
	Picture                  *string  `json:"picture,omitempty"`
	Address                  *string  `json:"address,omitempty"`
	City                     *string  `json:"city,omitempty"`
	DOB                      *string  `json:"dob,omitempty"`
	Edulevel                 *string  `json:"edulevel,omitempty"`
	Tel                      string   `json:"tel"`
	Whatsapp                 *string  `json:"whatsapp,omitempty"`
	Email                    *string  `json:"email,omitempty"`
	Bio                      *string  `json:"bio,omitempty"`
	YearsExperience          *int16   `json:"years_experience,omitempty"`
	ActPosition              *string  `json:"act_position,omitempty"`
	Listed                   *bool    `json:"listed,omitempty"`
	FeesPaid                 *bool    `json:"fees_paid,omitempty"`
	ContactsRequests         int      `json:"contacts_requests"`
	AverageScore             *float64 `json:"average_score"`
}

func FromProfessorModel(m *model.ProfessorModel, avgScore *float64) ProfessorResponse {
	var dob *string
	if m.ProfessorDOB != nil {
		s := time.Time(*m.ProfessorDOB).Format(dobLayout)
		dob = &s
	}
	return ProfessorResponse{
		ProfessorID:      m.ProfessorID.String(),
		ProfessorUserID:  m.ProfessorUserID.String(),
		Picture:          m.ProfessorPicture,
		Address:          m.ProfessorAddress,
		City:             m.ProfessorCity,
		DOB:              dob,
		Edulevel:         m.ProfessorEdulevel,
		Tel:              m.ProfessorTel,
		Whatsapp:         m.ProfessorWhatsapp,
		Email:            m.ProfessorEmail,
		Bio:              m.ProfessorBio,
		YearsExperience:  m.ProfessorYearsExperience,
		ActPosition:      m.ProfessorActPosition,
		Listed:           m.ProfessorListed,
		FeesPaid:         m.ProfessorFeesPaid,
		ContactsRequests: m.ProfessorContactsRequests,
		AverageScore:     avgScore,
	}
}

/* =========================================================
   STUDENT
   ========================================================= */

type StudentUpdateRequest struct {
	Tel      *string `json:"tel" form:"tel"`
	Address  *string `json:"address" form:"address"`
	City     *string `json:"city" form:"city"`
	DOB      *string `json:"dob" form:"dob"`
	Edulevel *string `json:"edulevel" form:"edulevel"`
	Whatsapp *string `json:"whatsapp" form:"whatsapp"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
}

func (r *StudentUpdateRequest) Normalize() {
	r.Tel = trimPtr(r.Tel)
	r.Address = trimPtr(r.Address)
	r.City = trimPtr(r.City)
	r.Edulevel = trimPtr(r.Edulevel)
	r.Whatsapp = trimPtr(r.Whatsapp)
	r.Email = trimPtr(r.Email)
}

func (r *StudentUpdateRequest) Apply(m *model.StudentModel) error {
	dob, err := parseDOB(r.DOB)
	if err != nil {
		return err
	}
	if dob != nil {
		m.StudentDOB = dob
	}
	if r.Tel != nil {
		m.StudentTel = *r.Tel
	}
	if r.Address != nil {
		m.StudentAddress = r.Address
	}
	if r.City != nil {
		m.StudentCity = r.City
	}
	if r.Edulevel != nil {
		m.StudentEdulevel = r.Edulevel
	}
	if r.Whatsapp != nil {
		m.StudentWhatsapp = r.Whatsapp
	}
	if r.Email != nil {
		m.StudentEmail = r.Email
	}
	return nil
}

type StudentResponse struct {
	StudentID     string  `json:"student_id"`
	StudentUserID string  `json:"student_user_id"`
	Picture       *string `json:"picture,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	DOB           *string `json:"dob,omitempty"`
	Edulevel      *string `json:"edulevel,omitempty"`
	Tel           string  `json:"tel"`
	Whatsapp      *string `json:"whatsapp,omitempty"`
	Email         *string `json:"email,omitempty"`
}

func FromStudentModel(m *model.StudentModel) StudentResponse {
	var dob *string
	if m.StudentDOB != nil {
		s := time.Time(*m.StudentDOB).Format(dobLayout)
		dob = &s
	}
	return StudentResponse{
		StudentID:     m.StudentID.String(),
		StudentUserID: m.StudentUserID.String(),
		Picture:       m.StudentPicture,
		Address:       m.StudentAddress,
		City:          m.StudentCity,
		DOB:           dob,
		Edulevel:      m.StudentEdulevel,
		Tel:           m.StudentTel,
		Whatsapp:      m.StudentWhatsapp,
		Email:         m.StudentEmail,
	}
}
