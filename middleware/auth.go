// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-bet-tips/logger"
)

// -------------- authentication middleware --------------

// AuthRequired ensures the request carries an authenticated session.
// It checks the "email" session variable; without it the request is
// rejected with a JSON prompt rather than a redirect, because the
// surface is an API consumed by the page scripts.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	email := session.Get("email")

	if email == nil {
		logger.Warn.Println("AuthRequired: no authenticated session")
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Please log in to continue.",
		})
		c.Abort()
		return
	}

	c.Next()
}
