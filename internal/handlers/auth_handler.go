package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/router"
	"github.com/harentsoaR/medischedule-portal/internal/storage"
)

const minPasswordLength = 6

// Landing sends a logged-in user to their dashboard.
func (h *Handler) Landing(c *gin.Context) {
	var current *models.User
	if u, ok := h.Session.User(); ok {
		current = &u
	}
	if d := h.Table.Landing(current); !d.Allowed() {
		c.Redirect(http.StatusFound, d.Location)
		return
	}
	page(c, "landing", gin.H{"authenticated": current != nil})
}

type loginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Remember bool   `form:"remember" json:"remember"`
}

// echo is the form as sent back on failure; the password never is.
func (f loginForm) echo() gin.H {
	return gin.H{"email": f.Email, "remember": f.Remember}
}

func (h *Handler) LoginPage(c *gin.Context) {
	email := storage.GetOr(ctx(c), h.Store, storage.KeyRememberedEmail, "")
	page(c, "login", gin.H{"form": gin.H{"email": email, "remember": email != ""}})
}

// Login authenticates against the backend, stores the session and
// redirects to the role's dashboard.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		invalid(c, "Invalid data!", form.echo())
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		invalid(c, "Please enter your email and password", form.echo())
		return
	}

	resp, err := h.API.Login(ctx(c), models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		status := http.StatusBadGateway
		if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
			status = code
		}
		h.Log.Info().Err(err).Str("email", form.Email).Msg("login failed")
		c.JSON(status, gin.H{"error": apiclient.LoginMessage(err), "form": form.echo()})
		return
	}

	if err := h.Session.Login(ctx(c), resp.Token, resp.User); err != nil {
		h.Log.Error().Err(err).Msg("store session")
		c.JSON(http.StatusBadGateway, gin.H{"error": "System error. Please try again later!", "form": form.echo()})
		return
	}
	h.rememberEmail(c, form)
	c.Redirect(http.StatusSeeOther, h.Table.Home(resp.User.Role))
}

func (h *Handler) rememberEmail(c *gin.Context, form loginForm) {
	var err error
	if form.Remember {
		err = h.Store.Set(ctx(c), storage.KeyRememberedEmail, form.Email)
	} else {
		err = h.Store.Delete(ctx(c), storage.KeyRememberedEmail)
	}
	if err != nil {
		h.Log.Warn().Err(err).Msg("remembered email")
	}
}

type registerForm struct {
	FullName        string      `form:"full_name" json:"full_name"`
	Email           string      `form:"email" json:"email"`
	Password        string      `form:"password" json:"password"`
	ConfirmPassword string      `form:"confirm_password" json:"confirm_password"`
	Role            models.Role `form:"role" json:"role"`
}

func (f registerForm) echo() gin.H {
	return gin.H{"full_name": f.FullName, "email": f.Email, "role": f.Role}
}

func (h *Handler) RegisterPage(c *gin.Context) {
	page(c, "register", gin.H{
		"roles": []models.Role{models.RolePatient, models.RoleDoctor},
		"form":  gin.H{"role": models.RolePatient},
	})
}

// Register creates a patient or doctor account and logs it in.
func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		invalid(c, "Invalid data!", form.echo())
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	form.FullName = strings.TrimSpace(form.FullName)
	if form.Role == "" {
		form.Role = models.RolePatient
	}

	switch {
	case form.FullName == "" || form.Email == "" || form.Password == "":
		invalid(c, "Please fill in all required fields", form.echo())
		return
	case len(form.Password) < minPasswordLength:
		invalid(c, "Password must be at least 6 characters", form.echo())
		return
	case form.Password != form.ConfirmPassword:
		invalid(c, "Passwords do not match", form.echo())
		return
	case form.Role != models.RolePatient && form.Role != models.RoleDoctor:
		invalid(c, "Invalid role", form.echo())
		return
	}

	resp, err := h.API.Register(ctx(c), models.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
		Role:     form.Role,
	})
	if err != nil {
		h.fail(c, err, "Registration failed", form.echo())
		return
	}
	if err := h.Session.Login(ctx(c), resp.Token, resp.User); err != nil {
		h.Log.Error().Err(err).Msg("store session")
		c.JSON(http.StatusBadGateway, gin.H{"error": "System error. Please try again later!", "form": form.echo()})
		return
	}
	c.Redirect(http.StatusSeeOther, h.Table.Home(resp.User.Role))
}

func (h *Handler) ForgotPasswordPage(c *gin.Context) {
	page(c, "forgot-password", nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var form struct {
		Email string `form:"email" json:"email"`
	}
	_ = c.ShouldBind(&form)
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" {
		invalid(c, "Please enter your email", gin.H{"email": form.Email})
		return
	}
	ack, err := h.API.ForgotPassword(ctx(c), form.Email)
	if err != nil {
		h.fail(c, err, "An error occurred", gin.H{"email": form.Email})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ack.Message, "next": router.LoginPath})
}

// Logout always ends the local session, even when storage fails.
func (h *Handler) Logout(c *gin.Context) {
	h.Views.Close()
	if err := h.Session.Logout(ctx(c)); err != nil {
		h.Log.Error().Err(err).Msg("logout")
	}
	c.Redirect(http.StatusSeeOther, router.LoginPath)
}

var languages = map[string]bool{"vi": true, "en": true}

const defaultLanguage = "vi"

func (h *Handler) Language(c *gin.Context) {
	lang := storage.GetOr(ctx(c), h.Store, storage.KeyLanguage, defaultLanguage)
	if !languages[lang] {
		lang = defaultLanguage
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}

func (h *Handler) SetLanguage(c *gin.Context) {
	var form struct {
		Language string `form:"language" json:"language"`
	}
	_ = c.ShouldBind(&form)
	if !languages[form.Language] {
		invalid(c, "Unsupported language", gin.H{"language": form.Language})
		return
	}
	if err := h.Store.Set(ctx(c), storage.KeyLanguage, form.Language); err != nil {
		h.Log.Error().Err(err).Msg("save language")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save language"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"language": form.Language})
}
