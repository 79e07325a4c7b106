package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"opencourse_backend/internals/constants"
	authDTO "opencourse_backend/internals/features/users/auth/dto"
	courseModel "opencourse_backend/internals/features/courses/course/model"
	profileModel "opencourse_backend/internals/features/users/profile/model"
	userModel "opencourse_backend/internals/features/users/user/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&profileModel.ProfessorModel{},
		&profileModel.StudentModel{},
		&courseModel.CourseModel{},
	))
	return db
}

func registerReq(email, userType string) authDTO.RegisterRequest {
	return authDTO.RegisterRequest{
		UserName: "someone",
		Email:    email,
		Password: "hunter2hunter2",
		UserType: userType,
	}
}

func TestRegisterStudentCreatesExactlyOneProfile(t *testing.T) {
	db := setupDB(t)

	u, err := Register(db, registerReq("student@example.com", constants.RoleStudent))
	require.NoError(t, err)
	require.Equal(t, constants.RoleStudent, u.Role)

	var students, professors int64
	require.NoError(t, db.Model(&profileModel.StudentModel{}).
		Where("student_user_id = ?", u.ID).Count(&students).Error)
	require.NoError(t, db.Model(&profileModel.ProfessorModel{}).
		Where("professor_user_id = ?", u.ID).Count(&professors).Error)
	require.EqualValues(t, 1, students)
	require.EqualValues(t, 0, professors)
}

func TestRegisterProfessorCreatesProfessorProfile(t *testing.T) {
	db := setupDB(t)

	u, err := Register(db, registerReq("prof@example.com", constants.RoleProfessor))
	require.NoError(t, err)

	var professors int64
	require.NoError(t, db.Model(&profileModel.ProfessorModel{}).
		Where("professor_user_id = ?", u.ID).Count(&professors).Error)
	require.EqualValues(t, 1, professors)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupDB(t)

	_, err := Register(db, registerReq("dup@example.com", constants.RoleStudent))
	require.NoError(t, err)
	_, err = Register(db, registerReq("dup@example.com", constants.RoleStudent))
	require.Error(t, err)

	// the failed transaction must not leave a user behind
	var users int64
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("email = ?", "dup@example.com").Count(&users).Error)
	require.EqualValues(t, 1, users)
}

func TestRegisterUnknownUserTypeRollsBack(t *testing.T) {
	db := setupDB(t)

	_, err := Register(db, registerReq("odd@example.com", "admin"))
	require.Error(t, err)

	var users int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.EqualValues(t, 0, users)
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	_, err := Register(db, registerReq("login@example.com", constants.RoleStudent))
	require.NoError(t, err)

	u, token, err := Login(db, "login@example.com", "hunter2hunter2", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "login@example.com", u.Email)

	_, _, err = Login(db, "login@example.com", "wrong-password", "test-secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = Login(db, "nobody@example.com", "hunter2hunter2", "test-secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDispatchTarget(t *testing.T) {
	db := setupDB(t)

	student, err := Register(db, registerReq("s@example.com", constants.RoleStudent))
	require.NoError(t, err)
	target, err := DispatchTarget(db, student.ID, student.Role)
	require.NoError(t, err)
	require.Equal(t, "/courses/search", target)

	prof, err := Register(db, registerReq("p@example.com", constants.RoleProfessor))
	require.NoError(t, err)
	target, err = DispatchTarget(db, prof.ID, prof.Role)
	require.NoError(t, err)
	require.Equal(t, "/courses/create", target)

	var profile profileModel.ProfessorModel
	require.NoError(t, db.First(&profile, "professor_user_id = ?", prof.ID).Error)
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseProfessorID: profile.ProfessorID,
		CourseTitle:       "Intro to Something",
	}).Error)

	target, err = DispatchTarget(db, prof.ID, prof.Role)
	require.NoError(t, err)
	require.Equal(t, "/courses/list", target)
}
