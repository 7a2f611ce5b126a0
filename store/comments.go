// Package store - store/comments.go
package store

import (
	"errors"
	"sync"
	"time"

	"go-bet-tips/models"
)

// ErrCommentNotFound is returned when no comment matches the given id.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepo owns visitor comments, keyed by integer id. The id namespace
// is independent of the prediction catalog.
type CommentRepo struct {
	mu        sync.Mutex
	persister Persister
	comments  []models.Comment
}

// NewCommentRepo loads the persisted comments, or starts empty.
func NewCommentRepo(p Persister) *CommentRepo {
	r := &CommentRepo{persister: p}
	p.Load(SlotComments, &r.comments)
	return r
}

// List returns a copy of the comments, most recent first.
func (r *CommentRepo) List() []models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Comment, len(r.comments))
	copy(out, r.comments)
	return out
}

// Add assigns the next id and the creation timestamp, prepends the comment
// and returns it. The timestamp is immutable from here on.
func (r *CommentRepo) Add(c models.Comment) models.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	maxID := 0
	for _, existing := range r.comments {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	c.ID = maxID + 1
	c.Timestamp = time.Now().UTC().Format(time.RFC3339)
	r.comments = append([]models.Comment{c}, r.comments...)
	r.persister.Save(SlotComments, r.comments)
	return c
}

// Remove deletes the comment with the given id. Admin-only at the surface.
func (r *CommentRepo) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			r.persister.Save(SlotComments, r.comments)
			return nil
		}
	}
	return ErrCommentNotFound
}
