// Package models defines data structures used across the application.
// File: models/comment.go
package models

// Comment is visitor feedback left through the contact form. Timestamp is
// assigned when the comment is stored and never changes afterwards.
type Comment struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
