package models

import "time"

// LinkedStudent is a student linked to a teacher or parent account
type LinkedStudent struct {
	StudentID        int64     `json:"user_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	GradeLevel       int       `json:"grade_level,omitempty"`
	SchoolName       string    `json:"school_name,omitempty"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	RelationshipType string    `json:"relationship_type"`
	LinkedAt         time.Time `json:"linked_at"`
}

// LinkedGuardian is a teacher or parent linked to a student account
type LinkedGuardian struct {
	GuardianID       int64     `json:"user_id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	ProfilePicture   string    `json:"profile_picture,omitempty"`
	Role             Role      `json:"user_type"`
	RelationshipType string    `json:"relationship_type"`
	LinkedAt         time.Time `json:"linked_at"`
}

// DashboardSnapshot is the server-computed academic summary for one student
type DashboardSnapshot struct {
	StudentID         int64    `json:"student_id"`
	StudentName       string   `json:"student_name"`
	OverallGPA        float64  `json:"overall_gpa"`
	TotalSubjects     int      `json:"total_subjects"`
	StrongSubjects    []string `json:"strong_subjects"`
	WeakSubjects      []string `json:"weak_subjects"`
	ImprovingSubjects []string `json:"improving_subjects"`
	DecliningSubjects []string `json:"declining_subjects"`
}

// InviteCode grants a student the ability to link to its creator
type InviteCode struct {
	Code      string    `json:"code"`
	CreatorID int64     `json:"creator_id"`
	Redeemed  bool      `json:"redeemed"`
	CreatedAt time.Time `json:"created_at"`
}
