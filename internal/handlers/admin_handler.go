package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (h *Handler) AdminDashboard(c *gin.Context) {
	u := user(c)
	dash, err := h.Dashboards.Admin(ctx(c), u)
	if err != nil {
		h.fail(c, err, "Failed to load dashboard", nil)
		return
	}
	page(c, "admin-dashboard", gin.H{"user": u, "dashboard": dash})
}

func (h *Handler) AdminDoctors(c *gin.Context) {
	status := models.DoctorStatus(c.Query("status"))
	query := c.Query("q")
	doctors, err := h.API.AdminDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	page(c, "admin-doctors", gin.H{
		"doctors": models.FilterDoctorsByStatus(doctors, status, query),
		"filters": gin.H{"status": status, "q": query},
	})
}

type reviewForm struct {
	Status models.DoctorStatus `form:"status" json:"status"`
}

func (f reviewForm) valid() bool {
	return f.Status == models.DoctorApproved || f.Status == models.DoctorRejected || f.Status == models.DoctorPending
}

func (h *Handler) ReviewDoctor(c *gin.Context) {
	var form reviewForm
	_ = c.ShouldBind(&form)
	if !form.valid() {
		invalid(c, "Invalid status", form)
		return
	}
	if _, err := h.API.ReviewDoctor(ctx(c), c.Param("id"), form.Status); err != nil {
		h.fail(c, err, "Update failed", form)
		return
	}
	doctors, err := h.API.AdminDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor " + string(form.Status), "doctors": doctors})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	if _, err := h.API.DeleteUser(ctx(c), c.Param("id")); err != nil {
		h.fail(c, err, "Delete failed", nil)
		return
	}
	doctors, err := h.API.AdminDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted", "doctors": doctors})
}

func (h *Handler) AdminPatients(c *gin.Context) {
	query := c.Query("q")
	patients, err := h.API.AdminPatients(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load patients", nil)
		return
	}
	page(c, "admin-patients", gin.H{
		"patients": models.FilterUsers(patients, query),
		"filters":  gin.H{"q": query},
	})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	if _, err := h.API.DeleteUser(ctx(c), c.Param("id")); err != nil {
		h.fail(c, err, "Delete failed", nil)
		return
	}
	patients, err := h.API.AdminPatients(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load patients", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted", "patients": patients})
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.API.AdminStats(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load statistics", nil)
		return
	}
	page(c, "admin-stats", gin.H{"stats": stats})
}

// Admins lists admin accounts. Managing them needs can_create_admins,
// checked here and not by the route table.
func (h *Handler) Admins(c *gin.Context) {
	admins, err := h.API.Admins(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load admins", nil)
		return
	}
	page(c, "admin-admins", gin.H{
		"admins":     admins,
		"can_manage": user(c).Can(models.CanCreateAdmins),
	})
}

type adminForm struct {
	Email             string `form:"email" json:"email"`
	Password          string `form:"password" json:"password"`
	FullName          string `form:"full_name" json:"full_name"`
	CanCreateAdmins   bool   `form:"can_create_admins" json:"can_create_admins"`
	CanManageDoctors  bool   `form:"can_manage_doctors" json:"can_manage_doctors"`
	CanManagePatients bool   `form:"can_manage_patients" json:"can_manage_patients"`
	CanViewStats      bool   `form:"can_view_stats" json:"can_view_stats"`
}

func (f adminForm) echo() gin.H {
	return gin.H{
		"email":               f.Email,
		"full_name":           f.FullName,
		"can_create_admins":   f.CanCreateAdmins,
		"can_manage_doctors":  f.CanManageDoctors,
		"can_manage_patients": f.CanManagePatients,
		"can_view_stats":      f.CanViewStats,
	}
}

func (h *Handler) CreateAdmin(c *gin.Context) {
	if !require(c, models.CanCreateAdmins) {
		return
	}
	// New admins manage doctors, patients and stats unless told otherwise.
	form := adminForm{CanManageDoctors: true, CanManagePatients: true, CanViewStats: true}
	if err := c.ShouldBind(&form); err != nil {
		invalid(c, "Invalid data!", form.echo())
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	form.FullName = strings.TrimSpace(form.FullName)
	if form.Email == "" || form.Password == "" || form.FullName == "" {
		invalid(c, "Please fill in all required fields", form.echo())
		return
	}

	created, err := h.API.CreateAdmin(ctx(c), models.NewAdmin(form))
	if err != nil {
		h.fail(c, err, "Failed to create admin", form.echo())
		return
	}
	admins, err := h.API.Admins(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load admins", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created", "admin": created, "admins": admins})
}

func (h *Handler) UpdatePermissions(c *gin.Context) {
	if !require(c, models.CanCreateAdmins) {
		return
	}
	var perms models.AdminPermissions
	if err := c.ShouldBindJSON(&perms); err != nil {
		invalid(c, "Invalid data!", perms)
		return
	}
	if _, err := h.API.UpdatePermissions(ctx(c), c.Param("id"), perms); err != nil {
		h.fail(c, err, "Failed to update permissions", perms)
		return
	}
	admins, err := h.API.Admins(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load admins", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Permissions updated", "admins": admins})
}

func (h *Handler) DeleteAdmin(c *gin.Context) {
	if !require(c, models.CanCreateAdmins) {
		return
	}
	if c.Param("id") == user(c).ID {
		invalid(c, "You cannot delete your own account", nil)
		return
	}
	if _, err := h.API.DeleteAdmin(ctx(c), c.Param("id")); err != nil {
		h.fail(c, err, "Failed to delete admin", nil)
		return
	}
	admins, err := h.API.Admins(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load admins", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted", "admins": admins})
}

func (h *Handler) CreateAccountsPage(c *gin.Context) {
	h.createAccountsPage(c, "admin-create-accounts",
		[]models.Role{models.RolePatient, models.RoleDoctor, models.RoleDepartmentHead})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	form, ok := bindAccount(c, models.RolePatient, models.RoleDoctor, models.RoleDepartmentHead)
	if !ok {
		return
	}
	created, err := h.API.CreateUser(ctx(c), form.account())
	if err != nil {
		h.fail(c, err, "Failed to create account", form.echo())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user": created})
}

func (h *Handler) createAccountsPage(c *gin.Context, name string, roles []models.Role) {
	specialties, err := h.API.Specialties(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load data", nil)
		return
	}
	page(c, name, gin.H{"roles": roles, "specialties": specialties})
}

type accountForm struct {
	Email           string                   `json:"email"`
	Password        string                   `json:"password"`
	FullName        string                   `json:"full_name"`
	Role            models.Role              `json:"role"`
	Phone           string                   `json:"phone"`
	DateOfBirth     string                   `json:"date_of_birth"`
	Address         string                   `json:"address"`
	SpecialtyID     string                   `json:"specialty_id"`
	Bio             string                   `json:"bio"`
	ExperienceYears int                      `json:"experience_years"`
	ConsultationFee float64                  `json:"consultation_fee"`
	Permissions     *models.AdminPermissions `json:"admin_permissions"`
}

func (f accountForm) echo() accountForm {
	f.Password = ""
	return f
}

// account drops the fields that do not apply to the chosen role.
func (f accountForm) account() models.NewAccount {
	acc := models.NewAccount{
		Email:       f.Email,
		Password:    f.Password,
		FullName:    f.FullName,
		Role:        f.Role,
		Phone:       f.Phone,
		DateOfBirth: f.DateOfBirth,
		Address:     f.Address,
	}
	switch f.Role {
	case models.RoleDoctor:
		acc.SpecialtyID = f.SpecialtyID
		acc.Bio = f.Bio
		acc.ExperienceYears = f.ExperienceYears
		acc.ConsultationFee = f.ConsultationFee
	case models.RoleDepartmentHead:
		perms := models.AdminPermissions{}
		if f.Permissions != nil {
			perms = *f.Permissions
		}
		perms.CanCreateAdmins = false
		acc.AdminPermissions = &perms
	}
	return acc
}

// bindAccount reads and checks the create-account form. Roles outside
// allowed are refused before any call.
func bindAccount(c *gin.Context, allowed ...models.Role) (accountForm, bool) {
	var form accountForm
	if err := c.ShouldBindJSON(&form); err != nil {
		invalid(c, "Invalid data!", form.echo())
		return form, false
	}
	form.Email = strings.TrimSpace(form.Email)
	form.FullName = strings.TrimSpace(form.FullName)

	if form.Email == "" || form.Password == "" || form.FullName == "" {
		invalid(c, "Please fill in all required fields", form.echo())
		return form, false
	}
	if len(form.Password) < minPasswordLength {
		invalid(c, "Password must be at least 6 characters", form.echo())
		return form, false
	}
	roleOK := false
	for _, r := range allowed {
		if form.Role == r {
			roleOK = true
			break
		}
	}
	if !roleOK {
		invalid(c, "Invalid role", form.echo())
		return form, false
	}
	if form.Role == models.RoleDoctor && form.SpecialtyID == "" {
		invalid(c, "Please choose a specialty", form.echo())
		return form, false
	}
	return form, true
}
