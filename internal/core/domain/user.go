package domain

// Role is the portal role carried in the access token and stamped onto ledger
// entries as the recording actor.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTeacher    Role = "teacher"
	RoleStudent    Role = "student"
	RoleAccountant Role = "accountant"
)

// User is a portal identity. Students get one generated by the enrollment
// workflow; staff accounts are provisioned directly.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	AuditFields
}
