package access

// Package access gates navigation: given the current session snapshot and a
// route rule, it decides whether a route may render and where to redirect
// when it may not.

import "github.com/hrsystem/hr-console/internal/domain/auth"

// LoginPath is the one route that renders without a session.
const LoginPath = "login"

// Rule maps a navigable route to the roles permitted to view it.
// A nil Allowed set means "all authenticated".
type Rule struct {
	Path    string
	Title   string
	Allowed []auth.Role
}

// Allows reports whether role may view the route.
func (r Rule) Allows(role auth.Role) bool {
	if len(r.Allowed) == 0 {
		return true
	}
	for _, a := range r.Allowed {
		if a == role {
			return true
		}
	}
	return false
}

// DefaultRules is the fixed ordered rule table. Order matters only for
// choosing the default navigation target; the access decision itself is
// order-independent.
func DefaultRules() []Rule {
	recruiter := []auth.Role{auth.RoleRecruiter}
	return []Rule{
		{Path: "competencies", Title: "Competencies", Allowed: recruiter},
		{Path: "languages", Title: "Languages", Allowed: recruiter},
		{Path: "training", Title: "Training", Allowed: recruiter},
		{Path: "positions", Title: "Positions", Allowed: recruiter},
		{Path: "candidates", Title: "Candidates"},
		{Path: "employees", Title: "Employees", Allowed: recruiter},
		{Path: "work-experience", Title: "Work Experience"},
	}
}
