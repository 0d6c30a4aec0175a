package fakeapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

// participant checks that the caller is the appointment's patient or
// doctor and writes the error response when not.
func (s *Server) participant(c *gin.Context, appointmentID string) bool {
	user := currentUser(c)
	s.mu.RLock()
	apt := s.findAppointment(appointmentID)
	var patientID, doctorID string
	if apt != nil {
		patientID, doctorID = apt.PatientID, apt.DoctorID
	}
	s.mu.RUnlock()

	if apt == nil {
		detail(c, http.StatusNotFound, "Appointment not found")
		return false
	}
	if user.ID != patientID && user.ID != doctorID {
		detail(c, http.StatusForbidden, "Not your appointment")
		return false
	}
	return true
}

// ChatMessages returns the whole thread, oldest first.
func (s *Server) ChatMessages(c *gin.Context) {
	appointmentID := c.Param("appointmentId")
	if !s.participant(c, appointmentID) {
		return
	}
	s.mu.RLock()
	out := append([]models.ChatMessage{}, s.messages[appointmentID]...)
	s.mu.RUnlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) SendMessage(c *gin.Context) {
	var req models.ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		invalid(c, "Message cannot be empty")
		return
	}
	if !s.participant(c, req.AppointmentID) {
		return
	}

	user := currentUser(c)
	msg := models.ChatMessage{
		ID:            newID(),
		AppointmentID: req.AppointmentID,
		SenderID:      user.ID,
		SenderName:    user.FullName,
		Message:       req.Message,
		CreatedAt:     s.now().UTC(),
	}
	s.mu.Lock()
	s.messages[req.AppointmentID] = append(s.messages[req.AppointmentID], msg)
	s.mu.Unlock()
	c.JSON(http.StatusOK, msg)
}
