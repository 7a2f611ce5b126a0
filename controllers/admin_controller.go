// Package controllers - controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/services"
	"go-bet-tips/store"
	"go-bet-tips/websocket"
)

// ---------------- Admin Controller ----------------

// AdminController provides the management surfaces: user directory,
// prediction catalog, comment moderation and site settings. Every route it
// serves sits behind the AdminRequired middleware.
type AdminController struct {
	Sessions    *services.SessionManager
	Users       *store.UserRepo
	Predictions *store.PredictionRepo
	Comments    *store.CommentRepo
	Settings    *store.SettingsRepo
	Ingestion   *services.IngestionService
}

// NewAdminController initializes a new instance of AdminController.
func NewAdminController(sm *services.SessionManager, users *store.UserRepo,
	predictions *store.PredictionRepo, comments *store.CommentRepo,
	settings *store.SettingsRepo, ingestion *services.IngestionService) *AdminController {
	return &AdminController{
		Sessions:    sm,
		Users:       users,
		Predictions: predictions,
		Comments:    comments,
		Settings:    settings,
		Ingestion:   ingestion,
	}
}

// ---------------- user management ----------------

// ListUsers returns the whole directory, password hashes stripped.
func (ad *AdminController) ListUsers(c *gin.Context) {
	users := ad.Users.List()
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = u.Sanitized()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": out})
}

// ToggleVip flips an account's VIP approval. No-op for admin targets.
func (ad *AdminController) ToggleVip(c *gin.Context) {
	email := c.Param("email")
	if err := ad.Sessions.ToggleVipStatus(email); err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "VIP status updated."})
}

// PromoteUser grants the admin role.
func (ad *AdminController) PromoteUser(c *gin.Context) {
	if err := ad.Sessions.Promote(c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User promoted."})
}

// DemoteUser revokes the admin role. Self-demotion is refused.
func (ad *AdminController) DemoteUser(c *gin.Context) {
	if err := ad.Sessions.Demote(c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User demoted."})
}

type adminUserUpdateRequest struct {
	FullName *string        `json:"fullName"`
	Password *string        `json:"password"`
	Role     *models.Role   `json:"role"`
	Status   *models.Status `json:"status"`
}

// UpdateUser merges a typed patch into an account.
func (ad *AdminController) UpdateUser(c *gin.Context) {
	var req adminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Role != nil && !req.Role.Valid() {
		fail(c, http.StatusBadRequest, "Unknown role.")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		fail(c, http.StatusBadRequest, "Unknown status.")
		return
	}
	updated, err := ad.Sessions.UpdateUser(c.Param("email"), models.UserPatch{
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated.Sanitized()})
}

// DeleteUser removes an account. Deleting yourself is refused.
func (ad *AdminController) DeleteUser(c *gin.Context) {
	if err := ad.Sessions.DeleteUser(c.Param("email")); err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted."})
}

// ---------------- prediction management ----------------

type predictionRequest struct {
	MatchName string         `json:"match_name" binding:"required"`
	League    string         `json:"league" binding:"required"`
	Tip       string         `json:"tip" binding:"required"`
	Odds      string         `json:"odds" binding:"required"`
	Kickoff   string         `json:"kickoff" binding:"required"`
	Type      models.TipType `json:"type" binding:"required"`
	Result    models.Result  `json:"result"`
}

// AddPrediction creates a tip; the repository assigns the id.
func (ad *AdminController) AddPrediction(c *gin.Context) {
	var req predictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Please fill in all prediction fields.")
		return
	}
	if !req.Type.Valid() {
		fail(c, http.StatusBadRequest, "Unknown tip type.")
		return
	}
	result := req.Result
	if result == "" {
		result = models.ResultPending
	}
	if !result.Valid() {
		fail(c, http.StatusBadRequest, "Unknown result.")
		return
	}
	created := ad.Predictions.Add(models.Prediction{
		MatchName: req.MatchName,
		League:    req.League,
		Tip:       req.Tip,
		Odds:      req.Odds,
		Kickoff:   req.Kickoff,
		Type:      req.Type,
		Result:    result,
	})
	logger.Info.Printf("AddPrediction: #%d %s", created.ID, created.MatchName)
	websocket.BroadcastCatalogChanged("prediction-added")
	websocket.PublishCatalogSize(ad.Predictions.Count())
	c.JSON(http.StatusOK, gin.H{"success": true, "prediction": created})
}

type predictionPatchRequest struct {
	MatchName *string         `json:"match_name"`
	League    *string         `json:"league"`
	Tip       *string         `json:"tip"`
	Odds      *string         `json:"odds"`
	Kickoff   *string         `json:"kickoff"`
	Type      *models.TipType `json:"type"`
	Result    *models.Result  `json:"result"`
}

// UpdatePrediction merges a typed patch into a tip.
func (ad *AdminController) UpdatePrediction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid prediction id.")
		return
	}
	var req predictionPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		fail(c, http.StatusBadRequest, "Unknown tip type.")
		return
	}
	if req.Result != nil && !req.Result.Valid() {
		fail(c, http.StatusBadRequest, "Unknown result.")
		return
	}
	updated, err := ad.Predictions.Update(id, models.PredictionPatch{
		MatchName: req.MatchName,
		League:    req.League,
		Tip:       req.Tip,
		Odds:      req.Odds,
		Kickoff:   req.Kickoff,
		Type:      req.Type,
		Result:    req.Result,
	})
	if err != nil {
		failFromErr(c, err)
		return
	}
	websocket.BroadcastCatalogChanged("prediction-updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "prediction": updated})
}

// DeletePrediction removes a tip. Its id is never reused.
func (ad *AdminController) DeletePrediction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid prediction id.")
		return
	}
	if err := ad.Predictions.Remove(id); err != nil {
		failFromErr(c, err)
		return
	}
	websocket.BroadcastCatalogChanged("prediction-deleted")
	websocket.PublishCatalogSize(ad.Predictions.Count())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Prediction deleted."})
}

// ---------------- comment moderation ----------------

// ListComments returns every visitor comment, most recent first.
func (ad *AdminController) ListComments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "comments": ad.Comments.List()})
}

// DeleteComment removes a comment.
func (ad *AdminController) DeleteComment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid comment id.")
		return
	}
	if err := ad.Comments.Remove(id); err != nil {
		failFromErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted."})
}

// ---------------- site settings ----------------

// GetSettings returns the full settings record, admin key included, for the
// settings form.
func (ad *AdminController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": ad.Settings.Get()})
}

// UpdateSettings replaces the site configuration.
func (ad *AdminController) UpdateSettings(c *gin.Context) {
	var req models.SiteSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.SiteName == "" {
		fail(c, http.StatusBadRequest, "Site name is required.")
		return
	}
	updated := ad.Settings.Update(req)
	websocket.BroadcastCatalogChanged("settings-updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "settings": updated})
}

// ---------------- ingestion ----------------

// RetryIngestion re-runs a failed bootstrap. The catalog-empty guard inside
// Run keeps this from double-ingesting a populated catalog.
func (ad *AdminController) RetryIngestion(c *gin.Context) {
	if err := ad.Ingestion.Run(context.Background()); err != nil {
		fail(c, http.StatusBadGateway, "Failed to fetch predictions. Please try again later.")
		return
	}
	websocket.BroadcastCatalogChanged("ingestion-completed")
	websocket.PublishCatalogSize(ad.Predictions.Count())
	c.JSON(http.StatusOK, gin.H{"success": true, "count": ad.Predictions.Count()})
}
