package models

// User is the database representation of a portal identity.
type User struct {
	UserID       string
	Username     string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	AuditFields
}
