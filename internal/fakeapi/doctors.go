package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (s *Server) ListSpecialties(c *gin.Context) {
	s.mu.RLock()
	out := append([]models.Specialty{}, s.specialties...)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

// ListDoctors returns approved doctors, optionally of one specialty.
func (s *Server) ListDoctors(c *gin.Context) {
	specialtyID := c.Query("specialty_id")
	s.mu.RLock()
	out := s.profilesWhere(func(p models.DoctorProfile) bool {
		return p.Status == models.DoctorApproved && (specialtyID == "" || p.SpecialtyID == specialtyID)
	})
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) GetDoctor(c *gin.Context) {
	s.mu.RLock()
	p, ok := s.profiles[c.Param("id")]
	var out models.DoctorProfile
	if ok {
		out = s.enrich(*p)
	}
	s.mu.RUnlock()
	if !ok {
		detail(c, http.StatusNotFound, "Doctor not found")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) UpdateDoctorProfile(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleDoctor {
		detail(c, http.StatusForbidden, "Doctor access required")
		return
	}
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[user.ID]
	if !ok {
		detail(c, http.StatusNotFound, "Doctor not found")
		return
	}
	if req.SpecialtyID != nil {
		p.SpecialtyID = *req.SpecialtyID
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.ExperienceYears != nil {
		p.ExperienceYears = *req.ExperienceYears
	}
	if req.ConsultationFee != nil {
		p.ConsultationFee = *req.ConsultationFee
	}
	c.JSON(http.StatusOK, s.enrich(*p))
}

func (s *Server) UpdateSchedule(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleDoctor {
		detail(c, http.StatusForbidden, "Doctor access required")
		return
	}
	var req models.ScheduleUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	for _, slot := range req.AvailableSlots {
		if err := slot.Validate(); err != nil {
			invalid(c, err.Error())
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[user.ID]
	if !ok {
		detail(c, http.StatusNotFound, "Doctor not found")
		return
	}
	p.AvailableSlots = append([]models.Slot{}, req.AvailableSlots...)
	c.JSON(http.StatusOK, s.enrich(*p))
}
