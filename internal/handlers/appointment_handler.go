package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (h *Handler) PatientDashboard(c *gin.Context) {
	dash, err := h.Dashboards.Patient(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load dashboard", nil)
		return
	}
	page(c, "patient-dashboard", gin.H{"user": user(c), "dashboard": dash})
}

// SearchDoctors narrows approved doctors by specialty on the backend and by
// name on the page.
func (h *Handler) SearchDoctors(c *gin.Context) {
	specialtyID := c.Query("specialty_id")
	query := c.Query("q")

	specialties, err := h.API.Specialties(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load data", nil)
		return
	}
	doctors, err := h.API.Doctors(ctx(c), specialtyID)
	if err != nil {
		h.fail(c, err, "Failed to load data", nil)
		return
	}
	page(c, "search-doctors", gin.H{
		"specialties": specialties,
		"doctors":     models.FilterDoctors(doctors, specialtyID, query),
		"filters":     gin.H{"specialty_id": specialtyID, "q": query},
	})
}

func (h *Handler) DoctorDetail(c *gin.Context) {
	doctor, err := h.API.Doctor(ctx(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Doctor not found", nil)
		return
	}
	page(c, "doctor-detail", gin.H{
		"doctor": doctor,
		"types":  []models.AppointmentType{models.TypeInPerson, models.TypeOnline},
	})
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	h.appointmentsPage(c, "patient-appointments")
}

func (h *Handler) DoctorAppointments(c *gin.Context) {
	h.appointmentsPage(c, "doctor-appointments")
}

func (h *Handler) appointmentsPage(c *gin.Context, name string) {
	status := models.AppointmentStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		status = ""
	}
	list, err := h.API.MyAppointments(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load appointments", nil)
		return
	}
	page(c, name, gin.H{
		"appointments": models.FilterAppointments(list, status),
		"filters":      gin.H{"status": status},
	})
}

type bookingForm struct {
	DoctorID        string                 `form:"doctor_id" json:"doctor_id"`
	AppointmentType models.AppointmentType `form:"appointment_type" json:"appointment_type"`
	AppointmentDate string                 `form:"appointment_date" json:"appointment_date"`
	AppointmentTime string                 `form:"appointment_time" json:"appointment_time"`
	Symptoms        string                 `form:"symptoms" json:"symptoms"`
}

// BookAppointment checks the form locally, books, and answers with the
// refreshed list.
func (h *Handler) BookAppointment(c *gin.Context) {
	var form bookingForm
	if err := c.ShouldBind(&form); err != nil {
		invalid(c, "Invalid data!", form)
		return
	}
	form.Symptoms = strings.TrimSpace(form.Symptoms)
	if form.AppointmentType == "" {
		form.AppointmentType = models.TypeInPerson
	}

	switch {
	case form.DoctorID == "":
		invalid(c, "Please choose a doctor", form)
		return
	case !form.AppointmentType.Valid():
		invalid(c, "Invalid appointment type", form)
		return
	case !validDate(form.AppointmentDate):
		invalid(c, "Please choose a valid date", form)
		return
	case !validClock(form.AppointmentTime):
		invalid(c, "Please choose a valid time", form)
		return
	}

	apt, err := h.API.BookAppointment(ctx(c), models.AppointmentRequest(form))
	if err != nil {
		h.fail(c, err, "Booking failed", form)
		return
	}
	list, err := h.API.MyAppointments(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Appointment booked",
		"appointment":  apt,
		"appointments": list,
	})
}

type statusForm struct {
	Status models.AppointmentStatus `form:"status" json:"status"`
}

// UpdateAppointmentStatus asks for a transition and re-fetches; which
// transitions are legal is the backend's call.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var form statusForm
	_ = c.ShouldBind(&form)
	if !form.Status.Valid() {
		invalid(c, "Invalid status", form)
		return
	}
	if _, err := h.API.UpdateAppointmentStatus(ctx(c), c.Param("id"), form.Status); err != nil {
		h.fail(c, err, "Update failed", form)
		return
	}
	list, err := h.API.MyAppointments(ctx(c))
	if err != nil {
		h.fail(c, err, "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "appointments": list})
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
