// Package middleware description is Middleware that checks if the user is an admin.
// file: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
	"go-bet-tips/models"
	"go-bet-tips/store"
)

// AdminRequired is a middleware that checks if the user is an admin.
// The session cookie only proves who is asking; the role is resolved
// against the user directory on every request, so a demoted or deleted
// account loses admin access immediately. Role-based only; VIP approval
// status plays no part here.
func AdminRequired(users *store.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		email, ok := session.Get("email").(string)
		if ok {
			if user, found := users.FindByEmail(email); found && user.Role == models.RoleAdmin {
				c.Next()
				return
			}
		}

		logger.Warn.Printf("AdminRequired Middleware - Unauthorized attempt blocked (email=%q)", email)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		c.Abort()
	}
}
