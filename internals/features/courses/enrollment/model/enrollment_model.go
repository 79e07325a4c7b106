package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentModel: a student's request for access to a course.
// accepted: nil = pending, true = accepted, false = rejected.
// At most one row per (course, student) pair; the unique index rejects the
// second writer and callers surface that as a validation failure.
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`

	EnrollmentCourseID  uuid.UUID `gorm:"column:enrollment_course_id;type:uuid;not null;uniqueIndex:ux_enrollments_course_student" json:"enrollment_course_id"`
	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;uniqueIndex:ux_enrollments_course_student" json:"enrollment_student_id"`

	EnrollmentAccepted *bool `gorm:"column:enrollment_accepted" json:"enrollment_accepted"`

	EnrollmentCreatedAt time.Time `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time `gorm:"column:enrollment_updated_at;autoUpdateTime" json:"enrollment_updated_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}

// HasAcceptedEnrollment: the relationship gate for handout visibility.
// Evaluated per request; acceptance can be revoked at any time.
func HasAcceptedEnrollment(db *gorm.DB, courseID, studentID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&EnrollmentModel{}).
		Where("enrollment_course_id = ? AND enrollment_student_id = ? AND enrollment_accepted = ?",
			courseID, studentID, true).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
