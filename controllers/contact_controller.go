// Package controllers - controllers/contact_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/services"
	"go-bet-tips/store"
)

// ---------------- Contact Controller ----------------

// ContactController serves the contact page data and takes visitor comments.
type ContactController struct {
	Comments *store.CommentRepo
	Settings *store.SettingsRepo
}

// NewContactController initializes a new instance of ContactController.
func NewContactController(comments *store.CommentRepo, settings *store.SettingsRepo) *ContactController {
	return &ContactController{Comments: comments, Settings: settings}
}

// PublicSettings exposes the visitor-facing site configuration. The admin
// key never leaves the server through this route.
func (cc *ContactController) PublicSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": cc.Settings.Get().Public()})
}

type commentRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// AddComment stores visitor feedback. Open to everyone, authenticated or not.
func (cc *ContactController) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all fields.")
		return
	}
	created := cc.Comments.Add(models.Comment{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	logger.Info.Printf("AddComment: #%d from %s", created.ID, created.Email)
	c.JSON(http.StatusOK, gin.H{"success": true, "comment": created})
}

// ContactQRCode renders the configured Telegram link as a QR code PNG.
func (cc *ContactController) ContactQRCode(c *gin.Context) {
	size := 256
	if s := c.Query("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 1024 {
			size = parsed
		}
	}
	png, err := services.GenerateContactQRCode(cc.Settings.Get().Telegram, size)
	if err != nil {
		fail(c, http.StatusNotFound, "No contact link configured.")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
