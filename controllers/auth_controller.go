// Package controllers provides the HTTP intent handlers for the site.
// File: controllers/auth_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/services"
	"go-bet-tips/store"
)

// ---------------- Auth Controller ----------------

// AuthController handles registration, login, logout and the profile view.
type AuthController struct {
	Sessions *services.SessionManager
}

// NewAuthController initializes a new instance of AuthController.
func NewAuthController(sm *services.SessionManager) *AuthController {
	return &AuthController{Sessions: sm}
}

// ------------------ session helpers ------------------

// currentUser resolves the visitor for this request. The cookie only proves
// this browser logged in; the session manager's snapshot stays the source
// of truth for the account state.
func (ac *AuthController) currentUser(c *gin.Context) *models.User {
	session := sessions.Default(c)
	email, ok := session.Get("email").(string)
	if !ok || email == "" {
		return nil
	}
	user := ac.Sessions.CurrentUser()
	if user == nil || user.Email != email {
		return nil
	}
	return user
}

// bindSession writes the authenticated identity into the cookie session.
func bindSession(c *gin.Context, user models.User) error {
	session := sessions.Default(c)
	session.Set("email", user.Email)
	session.Set("isAdmin", user.Role == models.RoleAdmin)
	return session.Save()
}

// fail writes the inline-feedback error shape.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failFromErr maps the session/store error taxonomy onto HTTP statuses.
func failFromErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidAdminKey),
		errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrCannotDeleteSelf),
		errors.Is(err, services.ErrCannotDemoteSelf):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPredictionNotFound),
		errors.Is(err, store.ErrCommentNotFound):
		fail(c, http.StatusNotFound, err.Error())
	default:
		logger.Error.Printf("unhandled error on %s: %v", c.FullPath(), err)
		fail(c, http.StatusInternalServerError, "Internal error, please try again.")
	}
}

// ------------------ registration ------------------

type registerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a normal account (role=user, status=pending) and logs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all fields.")
		return
	}
	ac.register(c, services.RegisterDetails{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
}

type adminRegisterRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	AdminKey string `json:"adminKey" binding:"required"`
}

// AdminRegister creates an admin account when the supplied key matches the
// configured one; any other key is rejected and no account is created.
func (ac *AuthController) AdminRegister(c *gin.Context) {
	var req adminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all fields.")
		return
	}
	ac.register(c, services.RegisterDetails{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		AdminKey: &req.AdminKey,
	})
}

func (ac *AuthController) register(c *gin.Context, details services.RegisterDetails) {
	user, err := ac.Sessions.Register(details)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if err := bindSession(c, user); err != nil {
		logger.Error.Println("register: failed to save session:", err)
		fail(c, http.StatusInternalServerError, "Internal error, please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration successful! Welcome.",
		"user":    user.Sanitized(),
	})
}

// ------------------ login / logout ------------------

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by email and password.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all fields.")
		return
	}
	user, err := ac.Sessions.Login(req.Email, req.Password)
	if err != nil {
		failFromErr(c, err)
		return
	}
	if err := bindSession(c, user); err != nil {
		logger.Error.Println("Login: failed to save session:", err)
		fail(c, http.StatusInternalServerError, "Internal error, please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful!",
		"user":    user.Sanitized(),
	})
}

// Logout clears both the store session and the cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.Sessions.Logout()

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session during logout: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out."})
}

// ------------------ profile ------------------

// Profile returns the session subject's record, password hash stripped.
func (ac *AuthController) Profile(c *gin.Context) {
	user := ac.currentUser(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "Please log in to continue.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user.Sanitized()})
}

type profileUpdateRequest struct {
	FullName *string `json:"fullName"`
	Password *string `json:"password"`
}

// UpdateProfile lets the session subject edit their own name or password.
// Role and status are not self-service.
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	user := ac.currentUser(c)
	if user == nil {
		fail(c, http.StatusUnauthorized, "Please log in to continue.")
		return
	}
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	updated, err := ac.Sessions.UpdateUser(user.Email, models.UserPatch{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated.Sanitized()})
}
