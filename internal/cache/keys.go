package cache

import "strconv"

// Well-known query keys shared by the orchestration components.

// CurrentUser keys the authenticated user's profile
func CurrentUser() Key {
	return NewKey("currentUser")
}

// LinkedStudents keys the guardian's linked-student list
func LinkedStudents() Key {
	return NewKey("linkedStudents")
}

// LinkedGuardians keys the student's linked-guardian list
func LinkedGuardians() Key {
	return NewKey("linkedGuardians")
}

// ChildDashboard keys one linked student's dashboard snapshot
func ChildDashboard(studentID int64) Key {
	return NewKeyID("childDashboard", strconv.FormatInt(studentID, 10))
}

// InviteCodes keys the caller's invite-code list
func InviteCodes() Key {
	return NewKey("inviteCodes")
}

// GradeTrends keys the per-subject grade trend series; an empty subject is
// the all-subjects view
func GradeTrends(subject string) Key {
	if subject == "" {
		return NewKey("gradeTrends")
	}
	return NewKeyID("gradeTrends", subject)
}

// Predictions keys the performance prediction list
func Predictions() Key {
	return NewKey("predictions")
}

// ReportHistory keys the caller's uploaded-report list
func ReportHistory() Key {
	return NewKey("reportHistory")
}

// Resources keys the curated-content catalog listing
func Resources() Key {
	return NewKey("resources")
}

// Resource keys one catalog entry
func Resource(id int64) Key {
	return NewKeyID("resource", strconv.FormatInt(id, 10))
}
