// file: store/comments_test.go
package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-bet-tips/models"
	"go-bet-tips/store"
)

func TestCommentAdd_AssignsIDAndTimestamp(t *testing.T) {
	repo := store.NewCommentRepo(newTestStore(t))

	created := repo.Add(models.Comment{Name: "Visitor", Email: "v@example.com", Message: "Nice tips"})
	assert.Equal(t, 1, created.ID)

	parsed, err := time.Parse(time.RFC3339, created.Timestamp)
	assert.NoError(t, err, "timestamp must be RFC 3339")
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)

	second := repo.Add(models.Comment{Name: "Another", Email: "a@example.com", Message: "Hi"})
	assert.Equal(t, 2, second.ID, "comment ids follow the max+1 rule in their own namespace")

	list := repo.List()
	assert.Equal(t, "Another", list[0].Name, "newest comment comes first")
}

func TestCommentRemove(t *testing.T) {
	repo := store.NewCommentRepo(newTestStore(t))
	created := repo.Add(models.Comment{Name: "Visitor", Email: "v@example.com", Message: "Hello"})

	assert.NoError(t, repo.Remove(created.ID))
	assert.Empty(t, repo.List())
	assert.ErrorIs(t, repo.Remove(created.ID), store.ErrCommentNotFound)
}
