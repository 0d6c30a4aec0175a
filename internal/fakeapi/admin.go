package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (s *Server) AdminDoctors(c *gin.Context) {
	s.mu.RLock()
	out := s.profilesWhere(func(models.DoctorProfile) bool { return true })
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func parseDoctorStatus(raw string) (models.DoctorStatus, bool) {
	switch st := models.DoctorStatus(raw); st {
	case models.DoctorPending, models.DoctorApproved, models.DoctorRejected:
		return st, true
	}
	return "", false
}

// AdminReviewDoctor sets a profile's review status from the status query.
func (s *Server) AdminReviewDoctor(c *gin.Context) {
	status, ok := parseDoctorStatus(c.Query("status"))
	if !ok {
		invalid(c, "Invalid status")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.profiles[c.Param("id")]
	if !found {
		detail(c, http.StatusNotFound, "Doctor not found")
		return
	}
	p.Status = status
	c.JSON(http.StatusOK, s.enrich(*p))
}

func (s *Server) AdminPatients(c *gin.Context) {
	s.mu.RLock()
	out := s.usersWithRole(models.RolePatient)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) AdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats())
}

func (s *Server) stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st models.Stats
	for _, acc := range s.accounts {
		switch acc.user.Role {
		case models.RolePatient:
			st.TotalPatients++
		case models.RoleDoctor:
			st.TotalDoctors++
		}
	}
	for _, a := range s.appointments {
		st.TotalAppointments++
		switch a.Status {
		case models.StatusPending:
			st.PendingAppointments++
		case models.StatusConfirmed:
			st.ConfirmedAppointments++
		case models.StatusCompleted:
			st.CompletedAppointments++
		case models.StatusCancelled:
			st.CancelledAppointments++
		}
		switch a.AppointmentType {
		case models.TypeOnline:
			st.OnlineConsultations++
		case models.TypeInPerson:
			st.InPersonConsultations++
		}
	}
	for _, p := range s.profiles {
		switch p.Status {
		case models.DoctorPending:
			st.PendingDoctors++
		case models.DoctorApproved:
			st.ApprovedDoctors++
		}
	}
	return st
}

func (s *Server) ListAdmins(c *gin.Context) {
	s.mu.RLock()
	out := s.usersWithRole(models.RoleAdmin)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func requireCapability(c *gin.Context, capability models.Capability) bool {
	if !currentUser(c).Can(capability) {
		detail(c, http.StatusForbidden, "Permission denied: "+string(capability))
		return false
	}
	return true
}

func (s *Server) CreateAdmin(c *gin.Context) {
	if !requireCapability(c, models.CanCreateAdmins) {
		return
	}
	var req models.NewAdmin
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	if !validEmail(req.Email) || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		invalid(c, "Email, password and full name are required")
		return
	}

	admin := models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     models.RoleAdmin,
		AdminPermissions: &models.AdminPermissions{
			CanCreateAdmins:   req.CanCreateAdmins,
			CanManageDoctors:  req.CanManageDoctors,
			CanManagePatients: req.CanManagePatients,
			CanViewStats:      req.CanViewStats,
		},
	}
	s.createAccount(c, admin, req.Password)
}

// createAccount stores the account and answers with it, mapping a taken
// email to 400.
func (s *Server) createAccount(c *gin.Context, u models.User, password string) {
	created, err := s.AddUser(u, password)
	if errors.Is(err, errEmailTaken) {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("create account")
		detail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) UpdatePermissions(c *gin.Context) {
	if !requireCapability(c, models.CanCreateAdmins) {
		return
	}
	var req models.PermissionsUpdate
	if err := c.ShouldBindJSON(&req); err != nil || req.AdminID == "" {
		invalid(c, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[req.AdminID]
	if !ok || (acc.user.Role != models.RoleAdmin && acc.user.Role != models.RoleDepartmentHead) {
		detail(c, http.StatusNotFound, "Admin not found")
		return
	}
	perms := req.Permissions
	acc.user.AdminPermissions = &perms
	c.JSON(http.StatusOK, gin.H{"message": "Permissions updated successfully"})
}

func (s *Server) DeleteAdmin(c *gin.Context) {
	if !requireCapability(c, models.CanCreateAdmins) {
		return
	}
	id := c.Param("id")
	if id == currentUser(c).ID {
		detail(c, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok || acc.user.Role != models.RoleAdmin {
		detail(c, http.StatusNotFound, "Admin not found")
		return
	}
	s.removeUser(id)
	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted successfully"})
}

// accountFromRequest validates the create-user form. Only the roles in
// allowed may be created.
func accountFromRequest(c *gin.Context, allowed ...models.Role) (models.NewAccount, bool) {
	var req models.NewAccount
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return req, false
	}
	if !validEmail(req.Email) || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		invalid(c, "Email, password and full name are required")
		return req, false
	}
	for _, role := range allowed {
		if req.Role == role {
			return req, true
		}
	}
	invalid(c, "Role not allowed: "+string(req.Role))
	return req, false
}

func (s *Server) storeAccount(c *gin.Context, req models.NewAccount) {
	user := models.User{
		Email:       req.Email,
		FullName:    req.FullName,
		Role:        req.Role,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
	}
	if req.Role == models.RoleDepartmentHead {
		perms := models.AdminPermissions{}
		if req.AdminPermissions != nil {
			perms = *req.AdminPermissions
		}
		user.AdminPermissions = &perms
	}
	if req.Role != models.RoleDoctor {
		s.createAccount(c, user, req.Password)
		return
	}

	created, err := s.AddDoctor(user, req.Password, models.DoctorProfile{
		SpecialtyID:     req.SpecialtyID,
		Bio:             req.Bio,
		ExperienceYears: req.ExperienceYears,
		ConsultationFee: req.ConsultationFee,
		Status:          models.DoctorApproved,
	})
	if errors.Is(err, errEmailTaken) {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		detail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) AdminCreateUser(c *gin.Context) {
	req, ok := accountFromRequest(c, models.RolePatient, models.RoleDoctor, models.RoleDepartmentHead)
	if !ok {
		return
	}
	s.storeAccount(c, req)
}

// AdminDeleteUser removes a patient or doctor.
func (s *Server) AdminDeleteUser(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok || acc.user.Role == models.RoleAdmin {
		detail(c, http.StatusNotFound, "User not found")
		return
	}
	s.removeUser(id)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
