package handlers

import (
	"errors"
	"net/http"

	"recipebook/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type changePasswordRequest struct {
	OldPassword     string `form:"old_password" json:"old_password"`
	NewPassword     string `form:"new_password" json:"new_password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

type forgotPasswordRequest struct {
	Email string `form:"email" json:"email"`
}

type resetPasswordRequest struct {
	NewPassword     string `form:"new_password" json:"new_password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// bindOrBadRequest binds the form/JSON body into dst and writes a 400 on
// failure. Returns false if the request was already handled.
func (h *Handler) bindOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// respondAuthError maps auth service errors onto HTTP responses.
func (h *Handler) respondAuthError(c *gin.Context, logKey string, err error) {
	if v, ok := service.AsValidationErrors(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": v})
		return
	}
	switch {
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
	case errors.Is(err, service.ErrEmailNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWrongOldPassword), errors.Is(err, service.ErrInvalidResetToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// @Summary      Registration form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/register [get]
func (h *Handler) registerForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Register",
		"fields": []string{"username", "email", "password", "confirm_password"},
	})
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}

	id, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondAuthError(c, "auth_register_failed", err)
		return
	}

	if h.log != nil {
		h.log.Infow("user_registered", "id", id, "username", req.Username)
	}
	c.Redirect(http.StatusFound, pathLogin)
}

// @Summary      Login form
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/login [get]
func (h *Handler) loginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Login",
		"fields": []string{"email", "password"},
	})
}

// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      401  {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}

	token, err := h.services.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, "auth_login_failed", err)
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, pathHome)
}

// @Summary      Logout
// @Tags         auth
// @Success      302
// @Router       /auth/logout [get]
func (h *Handler) logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, pathHome)
}

func (h *Handler) changePasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Change Password",
		"fields": []string{"old_password", "new_password", "confirm_password"},
	})
}

// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/change_password [post]
func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}
	userID, _ := currentUserID(c)

	err := h.services.ChangePassword(c.Request.Context(), userID, service.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondAuthError(c, "auth_change_password_failed", err)
		return
	}

	c.Redirect(http.StatusFound, pathHome)
}

func (h *Handler) forgotPasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Forgot Password",
		"fields": []string{"email"},
	})
}

// @Summary      Request a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      404  {object}  map[string]string
// @Router       /auth/forgot_password [post]
func (h *Handler) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}

	if err := h.services.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.respondAuthError(c, "auth_forgot_password_failed", err)
		return
	}

	if h.log != nil {
		h.log.Infow("reset_mail_sent", "email", req.Email)
	}
	c.Redirect(http.StatusFound, pathLogin)
}

func (h *Handler) resetPasswordForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  "Reset Password",
		"token":  c.Param("token"),
		"fields": []string{"new_password", "confirm_password"},
	})
}

// @Summary      Reset password with an emailed token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      302
// @Failure      400  {object}  map[string]interface{}
// @Router       /auth/reset_password/{token} [post]
func (h *Handler) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !h.bindOrBadRequest(c, &req) {
		return
	}

	err := h.services.ResetPassword(c.Request.Context(), c.Param("token"), service.ResetPasswordInput{
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondAuthError(c, "auth_reset_password_failed", err)
		return
	}

	c.Redirect(http.StatusFound, pathLogin)
}
