package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/middleware"
	"github.com/harentsoaR/medischedule-portal/internal/models"
)

// Routes registers every page. Department-head pages exist only when the
// route table guards that area.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	settings := r.Group("/")
	settings.Use(middleware.RequireReady(h.Session))
	{
		settings.GET("/language", h.Language)
		settings.PUT("/language", h.SetLanguage)
		settings.POST("/logout", h.Logout)
	}

	pages := r.Group("/")
	pages.Use(middleware.RequireReady(h.Session), h.trackNavigation(), middleware.RequireRole(h.Table, h.Session))
	{
		pages.GET("/", h.Landing)
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", h.Login)
		pages.GET("/register", h.RegisterPage)
		pages.POST("/register", h.Register)
		pages.GET("/forgot-password", h.ForgotPasswordPage)
		pages.POST("/forgot-password", h.ForgotPassword)
	}

	patient := pages.Group("/patient")
	{
		patient.GET("/dashboard", h.PatientDashboard)
		patient.GET("/search-doctors", h.SearchDoctors)
		patient.GET("/doctors/:id", h.DoctorDetail)
		patient.GET("/appointments", h.PatientAppointments)
		patient.POST("/appointments", h.BookAppointment)
		patient.GET("/chat/:appointmentId", h.ChatPage)
		patient.POST("/chat/:appointmentId", h.SendMessage)
		patient.DELETE("/chat/:appointmentId", h.LeaveChat)
	}

	doctor := pages.Group("/doctor")
	{
		doctor.GET("/dashboard", h.DoctorDashboard)
		doctor.GET("/profile", h.DoctorProfile)
		doctor.PUT("/profile", h.UpdateDoctorProfile)
		doctor.GET("/schedule", h.DoctorSchedule)
		doctor.PUT("/schedule", h.UpdateSchedule)
		doctor.GET("/appointments", h.DoctorAppointments)
		doctor.PUT("/appointments/:id/status", h.UpdateAppointmentStatus)
		doctor.GET("/chat/:appointmentId", h.ChatPage)
		doctor.POST("/chat/:appointmentId", h.SendMessage)
		doctor.DELETE("/chat/:appointmentId", h.LeaveChat)
	}

	admin := pages.Group("/admin")
	{
		admin.GET("/dashboard", h.AdminDashboard)
		admin.GET("/doctors", h.AdminDoctors)
		admin.PUT("/doctors/:id/status", h.ReviewDoctor)
		admin.DELETE("/doctors/:id", h.DeleteDoctor)
		admin.GET("/patients", h.AdminPatients)
		admin.DELETE("/patients/:id", h.DeletePatient)
		admin.GET("/stats", h.AdminStats)
		admin.GET("/admins", h.Admins)
		admin.POST("/admins", h.CreateAdmin)
		admin.PUT("/admins/:id/permissions", h.UpdatePermissions)
		admin.DELETE("/admins/:id", h.DeleteAdmin)
		admin.GET("/create-accounts", h.CreateAccountsPage)
		admin.POST("/create-accounts", h.CreateAccount)
	}

	if h.Table.Routes(models.RoleDepartmentHead) {
		dept := pages.Group("/department-head")
		{
			dept.GET("/dashboard", h.DepartmentDashboard)
			dept.GET("/doctors", h.DepartmentDoctors)
			dept.PUT("/doctors/:id/status", h.DepartmentReviewDoctor)
			dept.DELETE("/doctors/:id", h.DepartmentRemoveDoctor)
			dept.GET("/patients", h.DepartmentPatients)
			dept.DELETE("/patients/:id", h.DepartmentRemovePatient)
			dept.GET("/create-accounts", h.DepartmentCreateAccountsPage)
			dept.POST("/create-accounts", h.DepartmentCreateAccount)
		}
	}
}

// trackNavigation treats every page GET as a navigation, which unmounts a
// chat view shown at any other path.
func (h *Handler) trackNavigation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			h.Views.Navigate(c.Request.URL.Path)
		}
		c.Next()
	}
}

func (h *Handler) Health(c *gin.Context) {
	snap := h.Session.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"session":       snap.State.String(),
		"authenticated": snap.Authenticated(),
	})
}
