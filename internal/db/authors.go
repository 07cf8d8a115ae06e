package db

import (
	"context"

	"github.com/socialdistribution/node/internal/domain"
)

type Authors interface {
	GetAuthor(ctx context.Context, id string) (domain.Author, error)
	GetAuthorByUid(ctx context.Context, uid string) (domain.Author, error)
	CreateAuthor(ctx context.Context, author domain.Author, password string) error
	// AuthenticateAuthor verifies a local author's basic-auth credentials.
	// A credential mismatch is reported through ok, not err.
	AuthenticateAuthor(ctx context.Context, username, password string) (author domain.Author, ok bool, err error)
}
