package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (h *Handler) DepartmentDashboard(c *gin.Context) {
	stats, err := h.Dashboards.DepartmentHead(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load dashboard", nil)
		return
	}
	u := user(c)
	page(c, "department-head-dashboard", gin.H{
		"user":                u,
		"stats":               stats,
		"can_manage_doctors":  u.Can(models.CanManageDoctors),
		"can_manage_patients": u.Can(models.CanManagePatients),
	})
}

func (h *Handler) DepartmentDoctors(c *gin.Context) {
	status := models.DoctorStatus(c.Query("status"))
	query := c.Query("q")
	doctors, err := h.API.DepartmentDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	page(c, "department-head-doctors", gin.H{
		"doctors":    models.FilterDoctorsByStatus(doctors, status, query),
		"filters":    gin.H{"status": status, "q": query},
		"can_manage": user(c).Can(models.CanManageDoctors),
	})
}

func (h *Handler) DepartmentReviewDoctor(c *gin.Context) {
	if !require(c, models.CanManageDoctors) {
		return
	}
	var form reviewForm
	_ = c.ShouldBind(&form)
	if !form.valid() {
		invalid(c, "Invalid status", form)
		return
	}
	ack, err := h.API.DepartmentReviewDoctor(ctx(c), c.Param("id"), form.Status)
	if err != nil {
		h.fail(c, err, "Update failed", form)
		return
	}
	doctors, err := h.API.DepartmentDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message, "doctors": doctors})
}

func (h *Handler) DepartmentRemoveDoctor(c *gin.Context) {
	if !require(c, models.CanManageDoctors) {
		return
	}
	ack, err := h.API.DepartmentRemoveDoctor(ctx(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Delete failed", nil)
		return
	}
	doctors, err := h.API.DepartmentDoctors(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load doctors", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message, "doctors": doctors})
}

func (h *Handler) DepartmentPatients(c *gin.Context) {
	query := c.Query("q")
	patients, err := h.API.DepartmentPatients(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load patients", nil)
		return
	}
	page(c, "department-head-patients", gin.H{
		"patients":   models.FilterUsers(patients, query),
		"filters":    gin.H{"q": query},
		"can_manage": user(c).Can(models.CanManagePatients),
	})
}

func (h *Handler) DepartmentRemovePatient(c *gin.Context) {
	if !require(c, models.CanManagePatients) {
		return
	}
	ack, err := h.API.DepartmentRemovePatient(ctx(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Delete failed", nil)
		return
	}
	patients, err := h.API.DepartmentPatients(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load patients", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message, "patients": patients})
}

func (h *Handler) DepartmentCreateAccountsPage(c *gin.Context) {
	h.createAccountsPage(c, "department-head-create-accounts", []models.Role{models.RolePatient, models.RoleDoctor})
}

func (h *Handler) DepartmentCreateAccount(c *gin.Context) {
	form, ok := bindAccount(c, models.RolePatient, models.RoleDoctor)
	if !ok {
		return
	}
	created, err := h.API.DepartmentCreateUser(ctx(c), form.account())
	if err != nil {
		h.fail(c, err, "Failed to create account", form.echo())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "user": created})
}
