package models

import "time"

// Role identifies the kind of account a user holds
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

// IsGuardian reports whether the role may have linked students
func (r Role) IsGuardian() bool {
	return r == RoleTeacher || r == RoleParent
}

// Valid reports whether the role is one the platform knows about
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// User represents the authenticated account's profile
type User struct {
	ID             int64     `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           Role      `json:"user_type"`
	GradeLevel     int       `json:"grade_level,omitempty"`
	SchoolName     string    `json:"school_name,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
