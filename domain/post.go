package domain

import (
	"context"
	"errors"
	"time"
)

// ErrPostNotFound is returned when a post id is missing, malformed or unknown.
var ErrPostNotFound = errors.New("post not found")

type Post struct {
	ID    string
	Title string
	Body  string
	Date  time.Time
}

// PostStore is the persistence contract every backend implements.
type PostStore interface {
	// Create inserts p and sets p.ID.
	Create(ctx context.Context, p *Post) error
	Get(ctx context.Context, id string) (Post, error)
	// Update overwrites title, body and date. Updating an unknown id is not an error.
	Update(ctx context.Context, p Post) error
	// Delete removes the post. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
	// List returns every post, newest first.
	List(ctx context.Context) ([]Post, error)
	Close(ctx context.Context) error
}
