package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
)

// UserModel represents the users table. Role is the tagged profile kind
// (professor|student) and is immutable after signup.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserName string    `gorm:"size:50;not null" json:"user_name"`
	Email    string    `gorm:"size:255;unique;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null" json:"role"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *UserModel) IsProfessor() bool { return u.Role == constants.RoleProfessor }
func (u *UserModel) IsStudent() bool   { return u.Role == constants.RoleStudent }
