package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (s *Server) DepartmentStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats())
}

func (s *Server) DepartmentDoctors(c *gin.Context) {
	s.mu.RLock()
	out := s.profilesWhere(func(models.DoctorProfile) bool { return true })
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) DepartmentPatients(c *gin.Context) {
	s.mu.RLock()
	out := s.usersWithRole(models.RolePatient)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

// DepartmentCreateUser creates patients and doctors only.
func (s *Server) DepartmentCreateUser(c *gin.Context) {
	req, ok := accountFromRequest(c, models.RolePatient, models.RoleDoctor)
	if !ok {
		return
	}
	s.storeAccount(c, req)
}

func (s *Server) DepartmentReviewDoctor(c *gin.Context) {
	if !requireCapability(c, models.CanManageDoctors) {
		return
	}
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
	c.JSON(http.StatusOK, gin.H{"message": "Doctor status updated to " + string(status)})
}

func (s *Server) DepartmentRemoveDoctor(c *gin.Context) {
	if !requireCapability(c, models.CanManageDoctors) {
		return
	}
	s.removeWithRole(c, models.RoleDoctor, "Doctor")
}

func (s *Server) DepartmentRemovePatient(c *gin.Context) {
	if !requireCapability(c, models.CanManagePatients) {
		return
	}
	s.removeWithRole(c, models.RolePatient, "Patient")
}

func (s *Server) removeWithRole(c *gin.Context, role models.Role, label string) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok || acc.user.Role != role {
		detail(c, http.StatusNotFound, label+" not found")
		return
	}
	s.removeUser(id)
	c.JSON(http.StatusOK, gin.H{"message": label + " removed successfully"})
}
