package router

import (
	"testing"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func user(role models.Role) *models.User {
	return &models.User{ID: "u-" + string(role), Role: role}
}

var guardedPages = map[string]models.Role{
	"/patient/dashboard":               models.RolePatient,
	"/patient/search-doctors":          models.RolePatient,
	"/patient/appointments":            models.RolePatient,
	"/patient/chat/apt-1":              models.RolePatient,
	"/doctor/dashboard":                models.RoleDoctor,
	"/doctor/profile":                  models.RoleDoctor,
	"/doctor/schedule":                 models.RoleDoctor,
	"/doctor/appointments":             models.RoleDoctor,
	"/doctor/chat/apt-1":               models.RoleDoctor,
	"/admin/dashboard":                 models.RoleAdmin,
	"/admin/doctors":                   models.RoleAdmin,
	"/admin/patients":                  models.RoleAdmin,
	"/admin/stats":                     models.RoleAdmin,
	"/admin/admins":                    models.RoleAdmin,
	"/department-head/dashboard":       models.RoleDepartmentHead,
	"/department-head/doctors/d1":      models.RoleDepartmentHead,
	"/department-head/create-accounts": models.RoleDepartmentHead,
}

func TestGuardedPagesRequireExactRole(t *testing.T) {
	table := DefaultTable(true)
	sessions := []*models.User{nil, user(models.RolePatient), user(models.RoleDoctor), user(models.RoleDepartmentHead), user(models.RoleAdmin)}

	for path, required := range guardedPages {
		for _, u := range sessions {
			d := table.Decide(path, u)
			if u != nil && u.Role == required {
				if !d.Allowed() {
					t.Errorf("%s as %s: expected render, got %+v", path, u.Role, d)
				}
				continue
			}
			if d.Action != Redirect || d.Location != LoginPath {
				t.Errorf("%s as %v: expected redirect to %s, got %+v", path, u, LoginPath, d)
			}
		}
	}
}

func TestDoctorCannotOpenAdminPages(t *testing.T) {
	d := DefaultTable(false).Decide("/admin/doctors", user(models.RoleDoctor))
	if d.Action != Redirect || d.Location != "/login" {
		t.Fatalf("expected redirect to /login, got %+v", d)
	}
}

func TestAdminHasNoHierarchyPrivilege(t *testing.T) {
	d := DefaultTable(false).Decide("/doctor/dashboard", user(models.RoleAdmin))
	if d.Allowed() {
		t.Fatal("admin must not reach doctor pages")
	}
}

func TestPublicPagesRenderForEveryone(t *testing.T) {
	table := DefaultTable(false)
	for _, path := range []string{"/", "/login", "/register", "/forgot-password", "/language", "/patients", "/doctorx"} {
		if d := table.Decide(path, nil); !d.Allowed() {
			t.Errorf("%s without session: expected render, got %+v", path, d)
		}
	}
}

func TestDepartmentHeadAreaUnroutedByDefault(t *testing.T) {
	table := DefaultTable(false)
	if _, guarded := table.Required("/department-head/dashboard"); guarded {
		t.Fatal("department-head area should not be guarded when disabled")
	}
	if table.Home(models.RoleDepartmentHead) != LandingPath {
		t.Fatalf("Home = %q", table.Home(models.RoleDepartmentHead))
	}
	if d := table.Landing(user(models.RoleDepartmentHead)); !d.Allowed() {
		t.Fatalf("landing must render for an unrouted role, got %+v", d)
	}
}

func TestLandingRedirects(t *testing.T) {
	table := DefaultTable(true)
	cases := map[models.Role]string{
		models.RolePatient:        "/patient/dashboard",
		models.RoleDoctor:         "/doctor/dashboard",
		models.RoleAdmin:          "/admin/dashboard",
		models.RoleDepartmentHead: "/department-head/dashboard",
	}
	for role, want := range cases {
		d := table.Landing(user(role))
		if d.Action != Redirect || d.Location != want {
			t.Errorf("landing as %s: got %+v, want redirect to %s", role, d, want)
		}
	}
	if d := table.Landing(nil); !d.Allowed() {
		t.Errorf("landing without session must render, got %+v", d)
	}
}

func TestDashboardCoversEveryRole(t *testing.T) {
	for _, r := range models.Roles {
		if Dashboard(r) == "" {
			t.Errorf("no dashboard for role %s", r)
		}
	}
	if Dashboard("nurse") != "" {
		t.Error("unknown role must have no dashboard")
	}
}

func TestLongestPrefixWins(t *testing.T) {
	table := NewTable(
		Rule{Prefix: "/admin", Role: models.RoleAdmin},
		Rule{Prefix: "/admin/reports/", Role: models.RoleDepartmentHead},
	)
	if role, _ := table.Required("/admin/reports/monthly"); role != models.RoleDepartmentHead {
		t.Fatalf("Required = %s", role)
	}
	if role, _ := table.Required("/admin/dashboard"); role != models.RoleAdmin {
		t.Fatalf("Required = %s", role)
	}
}
