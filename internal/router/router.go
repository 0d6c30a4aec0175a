// Package router decides, per navigation, whether the current session may
// see a page. It holds no state: every decision is a function of the
// session's role and the path's guard rule.
package router

import (
	"sort"
	"strings"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

const (
	LandingPath = "/"
	LoginPath   = "/login"
)

// Rule requires Role for every path under Prefix.
type Rule struct {
	Prefix string
	Role   models.Role
}

type Action int

const (
	Render Action = iota
	Redirect
)

type Decision struct {
	Action   Action
	Location string
}

func (d Decision) Allowed() bool { return d.Action == Render }

var render = Decision{Action: Render}

type Table struct {
	rules []Rule
}

// NewTable sorts rules so the longest prefix is tried first.
func NewTable(rules ...Rule) Table {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	for i := range sorted {
		sorted[i].Prefix = "/" + strings.Trim(sorted[i].Prefix, "/")
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return Table{rules: sorted}
}

// DefaultTable guards each role's area. Department-head pages are only
// routed when enabled.
func DefaultTable(departmentHead bool) Table {
	rules := []Rule{
		{Prefix: "/patient", Role: models.RolePatient},
		{Prefix: "/doctor", Role: models.RoleDoctor},
		{Prefix: "/admin", Role: models.RoleAdmin},
	}
	if departmentHead {
		rules = append(rules, Rule{Prefix: "/department-head", Role: models.RoleDepartmentHead})
	}
	return NewTable(rules...)
}

// Required returns the role path needs; ok is false for public paths.
func (t Table) Required(path string) (models.Role, bool) {
	for _, r := range t.rules {
		if path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/") {
			return r.Role, true
		}
	}
	return "", false
}

// Routes reports whether any rule guards role's area.
func (t Table) Routes(role models.Role) bool {
	for _, r := range t.rules {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Decide evaluates one navigation. Public paths always render. Guarded
// paths render only for a user whose role equals the required role; no
// session and a different role both go to the login page.
func (t Table) Decide(path string, user *models.User) Decision {
	required, guarded := t.Required(path)
	if !guarded {
		return render
	}
	return Authorize(required, user)
}

// Authorize is the strict-equality gate. There is no role hierarchy.
func Authorize(required models.Role, user *models.User) Decision {
	if user == nil || user.Role != required {
		return Decision{Action: Redirect, Location: LoginPath}
	}
	return render
}

// Dashboard is the landing page of each role's area.
func Dashboard(role models.Role) string {
	switch role {
	case models.RolePatient:
		return "/patient/dashboard"
	case models.RoleDoctor:
		return "/doctor/dashboard"
	case models.RoleDepartmentHead:
		return "/department-head/dashboard"
	case models.RoleAdmin:
		return "/admin/dashboard"
	}
	return ""
}

// Home is where a user lands after login: their dashboard when this table
// routes their role, otherwise the public landing page.
func (t Table) Home(role models.Role) string {
	if dash := Dashboard(role); dash != "" && t.Routes(role) {
		return dash
	}
	return LandingPath
}

// Landing decides the public root: authenticated users whose area is
// routed are sent to their dashboard, everyone else sees the page.
func (t Table) Landing(user *models.User) Decision {
	if user == nil {
		return render
	}
	home := t.Home(user.Role)
	if home == LandingPath {
		return render
	}
	return Decision{Action: Redirect, Location: home}
}
