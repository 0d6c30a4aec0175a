package fakeapi

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/utils"
)

var errEmailTaken = errors.New("email already registered")

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil && strings.Contains(email, "@")
}

func (s *Server) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	if !validEmail(req.Email) {
		invalid(c, "value is not a valid email address")
		return
	}
	if req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		invalid(c, "Field required")
		return
	}
	if req.Role == "" {
		req.Role = models.RolePatient
	}
	if req.Role != models.RolePatient && req.Role != models.RoleDoctor {
		invalid(c, "Input should be 'patient' or 'doctor'")
		return
	}

	user, err := s.AddUser(models.User{Email: req.Email, FullName: req.FullName, Role: req.Role}, req.Password)
	if errors.Is(err, errEmailTaken) {
		detail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Msg("register")
		detail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		detail(c, http.StatusInternalServerError, "Could not generate token")
		return
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (s *Server) Login(c *gin.Context) {
	var req models.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, "Invalid request body")
		return
	}
	if !validEmail(req.Email) {
		invalid(c, "value is not a valid email address")
		return
	}

	s.mu.RLock()
	id, ok := s.emails[strings.ToLower(req.Email)]
	var acc account
	if ok {
		acc = *s.accounts[id]
	}
	s.mu.RUnlock()

	if !ok || !utils.CheckPasswordHash(req.Password, acc.passwordHash) {
		detail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(acc.user)
	if err != nil {
		detail(c, http.StatusInternalServerError, "Could not generate token")
		return
	}
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: acc.user})
}

func (s *Server) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// ForgotPassword never reveals whether the address exists.
func (s *Server) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !validEmail(req.Email) {
		invalid(c, "value is not a valid email address")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If email exists, reset link will be sent"})
}
