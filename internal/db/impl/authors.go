package impl

import (
	"context"
	"database/sql"
	"errors"

	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = 10

const authorColumns = "id, uid, host, display_name, url, github, email, bio"

func (d *dbImpl) GetAuthor(ctx context.Context, id string) (domain.Author, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+authorColumns+" FROM authors WHERE id = ?", id)
	return d.scanAuthor(row)
}

func (d *dbImpl) GetAuthorByUid(ctx context.Context, uid string) (domain.Author, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+authorColumns+" FROM authors WHERE uid = ?", identity.Normalize(uid))
	return d.scanAuthor(row)
}

func (d *dbImpl) scanAuthor(row *sql.Row) (domain.Author, error) {
	var a domain.Author
	err := row.Scan(&a.ID, &a.Uid, &a.Host, &a.DisplayName, &a.URL, &a.GitHub, &a.Email, &a.Bio)
	return a, d.HandleError(err)
}

func (d *dbImpl) CreateAuthor(ctx context.Context, author domain.Author, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return err
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO authors (id, uid, host, display_name, url, github, email, bio, password)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		author.ID, identity.Normalize(author.Uid), author.Host, author.DisplayName,
		author.URL, author.GitHub, author.Email, author.Bio, string(hash))
	return d.HandleError(err)
}

func (d *dbImpl) AuthenticateAuthor(ctx context.Context, username, password string) (domain.Author, bool, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+authorColumns+", password FROM authors WHERE display_name = ? OR id = ?",
		username, username)
	var a domain.Author
	var hash string
	err := row.Scan(&a.ID, &a.Uid, &a.Host, &a.DisplayName, &a.URL, &a.GitHub, &a.Email, &a.Bio, &hash)
	if err != nil {
		err = d.HandleError(err)
		if errors.Is(err, db.ErrNotFound) {
			return domain.Author{}, false, nil
		}
		return domain.Author{}, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.Author{}, false, nil
	}
	return a, true, nil
}
