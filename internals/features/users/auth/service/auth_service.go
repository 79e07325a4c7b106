package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"opencourse_backend/internals/constants"
	authDTO "opencourse_backend/internals/features/users/auth/dto"
	profileModel "opencourse_backend/internals/features/users/profile/model"
	userModel "opencourse_backend/internals/features/users/user/model"
)

const accessTokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Register creates the user plus exactly one profile of the requested kind in
// a single transaction. Either both rows land or neither does.
func Register(db *gorm.DB, req authDTO.RegisterRequest) (*userModel.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := userModel.UserModel{
		UserName: req.UserName,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.UserType,
		IsActive: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		switch req.UserType {
		case constants.RoleProfessor:
			return tx.Create(&profileModel.ProfessorModel{ProfessorUserID: u.ID}).Error
		case constants.RoleStudent:
			return tx.Create(&profileModel.StudentModel{StudentUserID: u.ID}).Error
		default:
			return errors.New("unknown user type")
		}
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and issues an HS256 access token carrying
// user_id and role.
func Login(db *gorm.DB, email, password, jwtSecret string) (*userModel.UserModel, string, error) {
	var u userModel.UserModel
	if err := db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !u.IsActive {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": u.ID.String(),
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// DispatchTarget decides where a freshly authenticated user lands:
// professor with courses -> own course list, professor without -> course
// creation, everyone else -> course search.
func DispatchTarget(db *gorm.DB, userID uuid.UUID, role string) (string, error) {
	if role != constants.RoleProfessor {
		return "/courses/search", nil
	}

	var prof profileModel.ProfessorModel
	if err := db.First(&prof, "professor_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "/courses/search", nil
		}
		return "", err
	}

	var n int64
	if err := db.Table("courses").
		Where("course_professor_id = ?", prof.ProfessorID).
		Count(&n).Error; err != nil {
		return "", err
	}
	if n > 0 {
		return "/courses/list", nil
	}
	return "/courses/create", nil
}
