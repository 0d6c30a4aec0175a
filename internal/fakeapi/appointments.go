package fakeapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (s *Server) CreateAppointment(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RolePatient {
		detail(c, http.StatusForbidden, "Patient access required")
		return
	}
	var req models.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	if req.DoctorID == "" {
		invalid(c, "Field required")
		return
	}
	if !req.AppointmentType.Valid() {
		invalid(c, "Input should be 'in_person' or 'online'")
		return
	}
	if _, err := time.Parse("2006-01-02", req.AppointmentDate); err != nil {
		invalid(c, "Invalid appointment date")
		return
	}
	if _, err := time.Parse("15:04", req.AppointmentTime); err != nil {
		invalid(c, "Invalid appointment time")
		return
	}

	apt := s.AddAppointment(models.Appointment{
		PatientID:       user.ID,
		PatientName:     user.FullName,
		DoctorID:        req.DoctorID,
		AppointmentType: req.AppointmentType,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Symptoms:        req.Symptoms,
		Status:          models.StatusPending,
	})
	s.log.Info().Str("appointment_id", apt.ID).Str("patient_id", user.ID).Msg("appointment booked")
	c.JSON(http.StatusOK, apt)
}

// MyAppointments lists the caller's appointments, newest date and time first.
func (s *Server) MyAppointments(c *gin.Context) {
	user := currentUser(c)
	var match func(*models.Appointment) bool
	switch user.Role {
	case models.RolePatient:
		match = func(a *models.Appointment) bool { return a.PatientID == user.ID }
	case models.RoleDoctor:
		match = func(a *models.Appointment) bool { return a.DoctorID == user.ID }
	default:
		detail(c, http.StatusForbidden, "Invalid role")
		return
	}

	s.mu.RLock()
	out := []models.Appointment{}
	for _, a := range s.appointments {
		if match(a) {
			out = append(out, *a)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime > out[j].AppointmentTime
	})
	c.JSON(http.StatusOK, out)
}

// UpdateAppointmentStatus lets the assigned doctor move an appointment to
// any status.
func (s *Server) UpdateAppointmentStatus(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleDoctor {
		detail(c, http.StatusForbidden, "Doctor access required")
		return
	}
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		invalid(c, "Input should be 'pending', 'confirmed', 'completed' or 'cancelled'")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	apt := s.findAppointment(c.Param("id"))
	if apt == nil {
		detail(c, http.StatusNotFound, "Appointment not found")
		return
	}
	if apt.DoctorID != user.ID {
		detail(c, http.StatusForbidden, "Not your appointment")
		return
	}
	apt.Status = req.Status
	c.JSON(http.StatusOK, *apt)
}

// findAppointment looks an appointment up by id. Callers hold mu.
func (s *Server) findAppointment(id string) *models.Appointment {
	for _, a := range s.appointments {
		if a.ID == id {
			return a
		}
	}
	return nil
}
