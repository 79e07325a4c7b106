package constants

// User roles. A user carries exactly one, fixed at signup.
const (
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// Role error message templates
const (
	ErrOnlyProfessorsCanAccess = "only professors may access %s"
	ErrOnlyStudentsCanAccess   = "only students may access %s"
)

// ==========================
// Grouped role slices
// ==========================
var (
	AllRoles = []string{
		RoleProfessor,
		RoleStudent,
	}

	ProfessorOnly = []string{
		RoleProfessor,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)
