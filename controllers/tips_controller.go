// Package controllers - controllers/tips_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bet-tips/services"
	"go-bet-tips/store"
)

// ---------------- Tips Controller ----------------

// TipsController serves the public prediction views. Every read path runs
// through the access engine; nothing here caches a visibility decision.
type TipsController struct {
	Predictions *store.PredictionRepo
	Auth        *AuthController
	Ingestion   *services.IngestionService
}

// NewTipsController initializes a new instance of TipsController.
func NewTipsController(predictions *store.PredictionRepo, auth *AuthController, ingestion *services.IngestionService) *TipsController {
	return &TipsController{Predictions: predictions, Auth: auth, Ingestion: ingestion}
}

// guardIngestion renders the page-level loading/error states while the
// bootstrap is unresolved. Returns false when the caller should stop.
func (tc *TipsController) guardIngestion(c *gin.Context) bool {
	state, err := tc.Ingestion.State()
	switch state {
	case services.IngestionNotStarted, services.IngestionInFlight:
		c.JSON(http.StatusOK, gin.H{"success": true, "loading": true})
		return false
	case services.IngestionCompleted:
		if err != nil {
			// a failed bootstrap blocks the whole predictions view
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Failed to fetch predictions. Please try again later.",
			})
			return false
		}
	}
	return true
}

// Home composes the landing page: match of the day, free/VIP slices and
// recent results. The VIP slice is withheld from non-VIP viewers.
func (tc *TipsController) Home(c *gin.Context) {
	if !tc.guardIngestion(c) {
		return
	}
	user := tc.Auth.currentUser(c)
	view := services.BuildHomeView(tc.Predictions.List(), user)
	c.JSON(http.StatusOK, gin.H{"success": true, "home": view})
}

// Free lists every FREE prediction.
func (tc *TipsController) Free(c *gin.Context) {
	if !tc.guardIngestion(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tips":    services.FreeTips(tc.Predictions.List()),
	})
}

// Vip lists VIP predictions for approved users. Anonymous or pending
// visitors get an access-required prompt, never the data.
func (tc *TipsController) Vip(c *gin.Context) {
	if !tc.guardIngestion(c) {
		return
	}
	user := tc.Auth.currentUser(c)
	tips, ok := services.VipTips(tc.Predictions.List(), user)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{
			"success":        false,
			"accessRequired": true,
			"message":        "VIP access required. Ask an admin to approve your account.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tips": tips})
}

// History lists every settled prediction.
func (tc *TipsController) History(c *gin.Context) {
	if !tc.guardIngestion(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tips":    services.HistoryView(tc.Predictions.List()),
	})
}
