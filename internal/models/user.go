package models

import "time"

// Role is the closed set of account roles the backend issues.
type Role string

const (
	RolePatient        Role = "patient"
	RoleDoctor         Role = "doctor"
	RoleDepartmentHead Role = "department_head"
	RoleAdmin          Role = "admin"
)

// Roles lists every valid role, in the order dashboards are presented.
var Roles = []Role{RolePatient, RoleDoctor, RoleDepartmentHead, RoleAdmin}

// ParseRole rejects anything outside the enumeration, so a typo never
// reaches the router as a role that silently matches nothing.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePatient, RoleDoctor, RoleDepartmentHead, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

func (r Role) String() string { return string(r) }

// Capability names a boolean flag inside AdminPermissions.
type Capability string

const (
	CanManageDoctors      Capability = "can_manage_doctors"
	CanManagePatients     Capability = "can_manage_patients"
	CanManageAppointments Capability = "can_manage_appointments"
	CanViewStats          Capability = "can_view_stats"
	CanManageSpecialties  Capability = "can_manage_specialties"
	CanCreateAdmins       Capability = "can_create_admins"
)

// AdminPermissions is only populated for admin and department_head accounts.
type AdminPermissions struct {
	CanManageDoctors      bool `json:"can_manage_doctors"`
	CanManagePatients     bool `json:"can_manage_patients"`
	CanManageAppointments bool `json:"can_manage_appointments"`
	CanViewStats          bool `json:"can_view_stats"`
	CanManageSpecialties  bool `json:"can_manage_specialties"`
	CanCreateAdmins       bool `json:"can_create_admins"`
}

// Has reports whether the named capability is granted. Unknown names are denied.
func (p AdminPermissions) Has(c Capability) bool {
	switch c {
	case CanManageDoctors:
		return p.CanManageDoctors
	case CanManagePatients:
		return p.CanManagePatients
	case CanManageAppointments:
		return p.CanManageAppointments
	case CanViewStats:
		return p.CanViewStats
	case CanManageSpecialties:
		return p.CanManageSpecialties
	case CanCreateAdmins:
		return p.CanCreateAdmins
	}
	return false
}

type User struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	FullName         string            `json:"full_name"`
	Role             Role              `json:"role"`
	Phone            string            `json:"phone,omitempty"`
	DateOfBirth      string            `json:"date_of_birth,omitempty"`
	Address          string            `json:"address,omitempty"`
	AdminPermissions *AdminPermissions `json:"admin_permissions,omitempty"`
	CreatedAt        time.Time         `json:"created_at,omitempty"`
}

// Can checks a capability flag. Users without a permission set have none.
func (u User) Can(c Capability) bool {
	if u.AdminPermissions == nil {
		return false
	}
	return u.AdminPermissions.Has(c)
}

// AuthResponse is what /auth/login and /auth/register return.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role,omitempty"`
}

// NewAccount is the payload of the admin and department-head account forms.
// Doctor fields are only sent for doctors, permissions only for department heads.
type NewAccount struct {
	Email            string            `json:"email"`
	Password         string            `json:"password"`
	FullName         string            `json:"full_name"`
	Role             Role              `json:"role"`
	Phone            string            `json:"phone,omitempty"`
	DateOfBirth      string            `json:"date_of_birth,omitempty"`
	Address          string            `json:"address,omitempty"`
	SpecialtyID      string            `json:"specialty_id,omitempty"`
	Bio              string            `json:"bio,omitempty"`
	ExperienceYears  int               `json:"experience_years,omitempty"`
	ConsultationFee  float64           `json:"consultation_fee,omitempty"`
	AdminPermissions *AdminPermissions `json:"admin_permissions,omitempty"`
}

// NewAdmin mirrors the flat admin-creation form.
type NewAdmin struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"full_name"`
	CanCreateAdmins   bool   `json:"can_create_admins"`
	CanManageDoctors  bool   `json:"can_manage_doctors"`
	CanManagePatients bool   `json:"can_manage_patients"`
	CanViewStats      bool   `json:"can_view_stats"`
}

type PermissionsUpdate struct {
	AdminID     string           `json:"admin_id"`
	Permissions AdminPermissions `json:"permissions"`
}
