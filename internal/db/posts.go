package db

import (
	"context"

	"github.com/socialdistribution/node/internal/domain"
)

type Posts interface {
	GetPost(ctx context.Context, id string) (domain.Post, error)
	CreatePost(ctx context.Context, post domain.Post) error
	// PublicPosts returns one page of listed public posts in reverse
	// publication order, plus the total count of such posts. Pages are
	// numbered from zero here; the HTTP surface translates from its own
	// one-based numbering. When withImages is false, image posts are left
	// out of both the page and the count.
	PublicPosts(ctx context.Context, page, size int, withImages bool) (posts []domain.Post, count int, err error)
	// PostsByAuthor returns all listed posts by one author, newest first.
	// Visibility filtering is the authorizer's job, not the store's.
	PostsByAuthor(ctx context.Context, authorUid string) ([]domain.Post, error)
}
