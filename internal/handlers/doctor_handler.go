package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (h *Handler) DoctorDashboard(c *gin.Context) {
	u := user(c)
	dash, err := h.Dashboards.Doctor(ctx(c), u.ID)
	if err != nil {
		h.fail(c, err, "Failed to load dashboard", nil)
		return
	}
	incomplete := dash.Profile == nil || dash.Profile.SpecialtyID == ""
	page(c, "doctor-dashboard", gin.H{
		"user":               u,
		"dashboard":          dash,
		"profile_incomplete": incomplete,
	})
}

// DoctorProfile shows the doctor's own profile with the specialties it may
// pick from. A doctor without a profile yet gets an empty form.
func (h *Handler) DoctorProfile(c *gin.Context) {
	u := user(c)
	specialties, err := h.API.Specialties(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load data", nil)
		return
	}
	profile, err := h.API.Doctor(ctx(c), u.ID)
	if err != nil && apiclient.StatusCode(err) != http.StatusNotFound {
		h.fail(c, err, "Failed to load profile", nil)
		return
	}
	if err != nil {
		profile = models.DoctorProfile{UserID: u.ID, AvailableSlots: []models.Slot{}}
	}
	page(c, "doctor-profile", gin.H{"profile": profile, "specialties": specialties})
}

func (h *Handler) UpdateDoctorProfile(c *gin.Context) {
	var form models.ProfileUpdate
	if err := c.ShouldBindJSON(&form); err != nil {
		invalid(c, "Invalid data!", form)
		return
	}
	if form.ExperienceYears != nil && *form.ExperienceYears < 0 {
		invalid(c, "Experience cannot be negative", form)
		return
	}
	if form.ConsultationFee != nil && *form.ConsultationFee < 0 {
		invalid(c, "Consultation fee cannot be negative", form)
		return
	}

	profile, err := h.API.UpdateDoctorProfile(ctx(c), form)
	if err != nil {
		h.fail(c, err, "Update failed", form)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": profile})
}

func (h *Handler) DoctorSchedule(c *gin.Context) {
	profile, err := h.API.Doctor(ctx(c), user(c).ID)
	if err != nil {
		h.fail(c, err, "Failed to load schedule", nil)
		return
	}
	slots := profile.AvailableSlots
	if slots == nil {
		slots = []models.Slot{}
	}
	page(c, "doctor-schedule", gin.H{"available_slots": slots})
}

// UpdateSchedule replaces the weekly slots after checking each one.
func (h *Handler) UpdateSchedule(c *gin.Context) {
	var form models.ScheduleUpdate
	if err := c.ShouldBindJSON(&form); err != nil {
		invalid(c, "Invalid data!", form)
		return
	}
	for _, slot := range form.AvailableSlots {
		if err := slot.Validate(); err != nil {
			invalid(c, err.Error(), form)
			return
		}
	}

	profile, err := h.API.UpdateSchedule(ctx(c), form.AvailableSlots)
	if err != nil {
		h.fail(c, err, "Update failed", form)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated", "available_slots": profile.AvailableSlots})
}
