package session

import "smartpath/internal/models"

// NavItem is one entry in a role's navigation menu
type NavItem struct {
	Label string
	Path  string
}

// MenuFor resolves the navigation menu for a role once, at layout construction
// time. Unknown roles get the student menu.
func MenuFor(role models.Role) []NavItem {
	switch role {
	case models.RoleTeacher, models.RoleParent:
		return []NavItem{
			{Label: "My Students", Path: "/students"},
			{Label: "Invite Codes", Path: "/invites"},
			{Label: "Resources", Path: "/resources"},
			{Label: "Profile", Path: "/profile"},
		}
	case models.RoleAdmin:
		return []NavItem{
			{Label: "Admin", Path: "/admin"},
			{Label: "Resources", Path: "/resources"},
			{Label: "Profile", Path: "/profile"},
		}
	default:
		return []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Tutor", Path: "/tutor"},
			{Label: "Math Solver", Path: "/solver"},
			{Label: "Resources", Path: "/resources"},
			{Label: "Profile", Path: "/profile"},
		}
	}
}
