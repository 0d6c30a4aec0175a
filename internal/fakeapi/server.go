// Package fakeapi is an in-memory MediSchedule backend. It serves the same
// routes and error payloads as the real API and is used by the tests and
// by cmd/fakeapi for local development.
package fakeapi

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/utils"
)

type account struct {
	user         models.User
	passwordHash string
}

type Server struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
	log        zerolog.Logger
	now        func() time.Time

	mu           sync.RWMutex
	accounts     map[string]*account
	emails       map[string]string
	fixedTokens  map[string]string
	loginTokens  map[string]string
	specialties  []models.Specialty
	profiles     map[string]*models.DoctorProfile
	appointments []*models.Appointment
	messages     map[string][]models.ChatMessage

	callsMu sync.Mutex
	calls   map[string]int
}

type Option func(*Server)

// WithBcryptCost sets the hashing cost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.bcryptCost = cost }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Server) { s.tokenTTL = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(secret []byte, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		secret:      secret,
		tokenTTL:    7 * 24 * time.Hour,
		log:         log,
		now:         time.Now,
		accounts:    make(map[string]*account),
		emails:      make(map[string]string),
		fixedTokens: make(map[string]string),
		loginTokens: make(map[string]string),
		profiles:    make(map[string]*models.DoctorProfile),
		messages:    make(map[string][]models.ChatMessage),
		calls:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine builds the route tree under /api.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.countCalls())

	api := r.Group("/api")
	{
		api.POST("/auth/register", s.Register)
		api.POST("/auth/login", s.Login)
		api.POST("/auth/forgot-password", s.ForgotPassword)
		api.GET("/specialties", s.ListSpecialties)
		api.GET("/doctors", s.ListDoctors)
		api.GET("/doctors/:id", s.GetDoctor)
	}

	authed := api.Group("")
	authed.Use(s.authenticate())
	{
		authed.GET("/auth/me", s.Me)
		authed.PUT("/doctors/profile", s.UpdateDoctorProfile)
		authed.PUT("/doctors/schedule", s.UpdateSchedule)

		authed.GET("/appointments/my", s.MyAppointments)
		authed.POST("/appointments", s.CreateAppointment)
		authed.PUT("/appointments/:id/status", s.UpdateAppointmentStatus)

		authed.GET("/chat/:appointmentId", s.ChatMessages)
		authed.POST("/chat/send", s.SendMessage)
	}

	admin := authed.Group("/admin")
	admin.Use(requireRole(models.RoleAdmin, "Admin access required"))
	{
		admin.GET("/doctors", s.AdminDoctors)
		admin.PUT("/doctors/:id/approve", s.AdminReviewDoctor)
		admin.GET("/patients", s.AdminPatients)
		admin.GET("/stats", s.AdminStats)
		admin.GET("/admins", s.ListAdmins)
		admin.POST("/create-admin", s.CreateAdmin)
		admin.PUT("/update-permissions", s.UpdatePermissions)
		admin.DELETE("/delete-admin/:id", s.DeleteAdmin)
		admin.POST("/create-user", s.AdminCreateUser)
		admin.DELETE("/delete-user/:id", s.AdminDeleteUser)
	}

	dept := authed.Group("/department-head")
	dept.Use(requireRole(models.RoleDepartmentHead, "Department head access required"))
	{
		dept.GET("/stats", s.DepartmentStats)
		dept.GET("/doctors", s.DepartmentDoctors)
		dept.GET("/patients", s.DepartmentPatients)
		dept.POST("/create-user", s.DepartmentCreateUser)
		dept.PUT("/approve-doctor/:id", s.DepartmentReviewDoctor)
		dept.DELETE("/remove-doctor/:id", s.DepartmentRemoveDoctor)
		dept.DELETE("/remove-patient/:id", s.DepartmentRemovePatient)
	}

	return r
}

func (s *Server) countCalls() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		s.callsMu.Lock()
		s.calls[c.Request.Method+" "+route]++
		s.callsMu.Unlock()
		c.Next()
	}
}

// Calls reports how often a route was hit, e.g. Calls("GET", "/api/chat/:appointmentId").
func (s *Server) Calls(method, route string) int {
	s.callsMu.Lock()
	defer s.callsMu.Unlock()
	return s.calls[method+" "+route]
}

func (s *Server) TotalCalls() int {
	s.callsMu.Lock()
	defer s.callsMu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *Server) ResetCalls() {
	s.callsMu.Lock()
	s.calls = make(map[string]int)
	s.callsMu.Unlock()
}

// authenticate resolves the bearer token to an account and puts its id and
// role on the context.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, ok := s.resolveToken(token)
		if !ok {
			detail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		s.mu.RLock()
		acc, found := s.accounts[userID]
		var user models.User
		if found {
			user = acc.user
		}
		s.mu.RUnlock()
		if !found {
			detail(c, http.StatusUnauthorized, "User not found")
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", string(user.Role))
		c.Set("user", user)
		c.Next()
	}
}

func (s *Server) resolveToken(token string) (string, bool) {
	s.mu.RLock()
	id, fixed := s.fixedTokens[token]
	s.mu.RUnlock()
	if fixed {
		return id, true
	}
	claims, err := utils.ValidateJWT(s.secret, token)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

func requireRole(role models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != string(role) {
			detail(c, http.StatusForbidden, message)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	u, _ := c.Get("user")
	user, _ := u.(models.User)
	return user
}

// detail writes the backend's {"detail": "..."} error body.
func detail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": message})
}

// invalid writes a validation error in the list form.
func invalid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []gin.H{{"loc": []string{"body"}, "msg": message, "type": "value_error"}},
	})
}

func newID() string {
	return uuid.NewString()
}

// --- seeding ---

// AddSpecialty registers a specialty and returns it with its id.
func (s *Server) AddSpecialty(name, description string) models.Specialty {
	sp := models.Specialty{ID: newID(), Name: name, Description: description}
	s.mu.Lock()
	s.specialties = append(s.specialties, sp)
	s.mu.Unlock()
	return sp
}

// AddUser stores an account with a hashed password. Doctors get a pending
// profile, as on registration.
func (s *Server) AddUser(u models.User, password string) (models.User, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emails[strings.ToLower(u.Email)]; taken {
		return models.User{}, errEmailTaken
	}
	s.accounts[u.ID] = &account{user: u, passwordHash: hash}
	s.emails[strings.ToLower(u.Email)] = u.ID
	if u.Role == models.RoleDoctor {
		s.profiles[u.ID] = &models.DoctorProfile{
			UserID:         u.ID,
			AvailableSlots: []models.Slot{},
			Status:         models.DoctorPending,
			CreatedAt:      s.now().UTC(),
		}
	}
	return u, nil
}

// AddDoctor stores a doctor account together with its profile.
func (s *Server) AddDoctor(u models.User, password string, profile models.DoctorProfile) (models.User, error) {
	u.Role = models.RoleDoctor
	created, err := s.AddUser(u, password)
	if err != nil {
		return models.User{}, err
	}
	profile.UserID = created.ID
	if profile.Status == "" {
		profile.Status = models.DoctorPending
	}
	if profile.AvailableSlots == nil {
		profile.AvailableSlots = []models.Slot{}
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = s.now().UTC()
	}
	s.mu.Lock()
	s.profiles[created.ID] = &profile
	s.mu.Unlock()
	return created, nil
}

// AddAppointment stores a ready-made appointment, filling id and names.
func (s *Server) AddAppointment(a models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = newID()
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	if acc, ok := s.accounts[a.PatientID]; ok && a.PatientName == "" {
		a.PatientName = acc.user.FullName
	}
	if acc, ok := s.accounts[a.DoctorID]; ok && a.DoctorName == "" {
		a.DoctorName = acc.user.FullName
	}
	stored := a
	s.appointments = append(s.appointments, &stored)
	return a
}

// SetLoginToken makes a successful login for email return token instead of
// a signed JWT; the token is accepted as a bearer from then on.
func (s *Server) SetLoginToken(email, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginTokens[strings.ToLower(email)] = token
	if id, ok := s.emails[strings.ToLower(email)]; ok {
		s.fixedTokens[token] = id
	}
}

// RevokeToken stops accepting a fixed token.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	delete(s.fixedTokens, token)
	s.mu.Unlock()
}

func (s *Server) Appointment(id string) (models.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return *a, true
		}
	}
	return models.Appointment{}, false
}

func (s *Server) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return models.User{}, false
	}
	return s.accounts[id].user, true
}

func (s *Server) issueToken(user models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.loginTokens[strings.ToLower(user.Email)]; ok {
		s.fixedTokens[token] = user.ID
		return token, nil
	}
	return utils.GenerateJWT(s.secret, user.ID, string(user.Role), s.tokenTTL)
}

// usersWithRole lists users of a role in creation order. Callers hold mu.
func (s *Server) usersWithRole(role models.Role) []models.User {
	out := []models.User{}
	for _, acc := range s.accounts {
		if acc.user.Role == role {
			out = append(out, acc.user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// enrich fills the doctor's name, email and specialty name. Callers hold mu.
func (s *Server) enrich(p models.DoctorProfile) models.DoctorProfile {
	if acc, ok := s.accounts[p.UserID]; ok {
		p.FullName = acc.user.FullName
		p.Email = acc.user.Email
	}
	for _, sp := range s.specialties {
		if sp.ID == p.SpecialtyID {
			p.SpecialtyName = sp.Name
			break
		}
	}
	if p.AvailableSlots == nil {
		p.AvailableSlots = []models.Slot{}
	}
	return p
}

// profilesWhere lists enriched profiles matching keep, oldest first. Callers hold mu.
func (s *Server) profilesWhere(keep func(models.DoctorProfile) bool) []models.DoctorProfile {
	out := []models.DoctorProfile{}
	for _, p := range s.profiles {
		if keep(*p) {
			out = append(out, s.enrich(*p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].UserID < out[j].UserID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// removeUser deletes an account with its profile. Callers hold mu.
func (s *Server) removeUser(id string) bool {
	acc, ok := s.accounts[id]
	if !ok {
		return false
	}
	delete(s.emails, strings.ToLower(acc.user.Email))
	delete(s.accounts, id)
	delete(s.profiles, id)
	for token, owner := range s.fixedTokens {
		if owner == id {
			delete(s.fixedTokens, token)
		}
	}
	return true
}
