package impl

import (
	"context"
	"database/sql"
	"time"

	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
)

const postColumns = "id, title, source, origin, description, content_type, content, author_uid, published, visibility, unlisted"

func (d *dbImpl) GetPost(ctx context.Context, id string) (domain.Post, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = ?", id)
	post, err := scanPost(row)
	if err != nil {
		return domain.Post{}, d.HandleError(err)
	}

	post.VisibleTo, err = d.visibleTo(ctx, post.ID)
	return post, err
}

func (d *dbImpl) CreatePost(ctx context.Context, post domain.Post) error {
	return d.WithTx(func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO posts (id, title, source, origin, description, content_type, content,
				author_uid, published, visibility, unlisted)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			post.ID, post.Title, post.Source, post.Origin, post.Description, post.ContentType,
			post.Content, identity.Normalize(post.AuthorUid), post.Published.Unix(),
			post.Visibility, post.Unlisted)
		if err != nil {
			return err
		}

		for _, uid := range post.VisibleTo {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO post_visible_to (post_id, author_uid) VALUES (?, ?)",
				post.ID, identity.Normalize(uid))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *dbImpl) PublicPosts(ctx context.Context, page, size int, withImages bool) ([]domain.Post, int, error) {
	filter := "visibility = ? AND unlisted = FALSE"
	args := []any{domain.Public}
	if !withImages {
		filter += " AND content_type NOT IN (?, ?, ?)"
		args = append(args, domain.TypePNG, domain.TypeJPEG, domain.TypeBase64)
	}

	row := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts WHERE "+filter, args...)
	var count int
	if err := row.Scan(&count); err != nil {
		return nil, 0, d.HandleError(err)
	}

	rows, err := d.db.QueryContext(ctx,
		"SELECT "+postColumns+" FROM posts WHERE "+filter+
			" ORDER BY published DESC LIMIT ? OFFSET ?",
		append(args, size, page*size)...)
	if err != nil {
		return nil, 0, d.HandleError(err)
	}
	defer rows.Close()

	posts, err := d.collectPosts(ctx, rows)
	return posts, count, err
}

func (d *dbImpl) PostsByAuthor(ctx context.Context, authorUid string) ([]domain.Post, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT "+postColumns+` FROM posts WHERE author_uid = ? AND unlisted = FALSE
		 ORDER BY published DESC`,
		identity.Normalize(authorUid))
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()
	return d.collectPosts(ctx, rows)
}

func (d *dbImpl) collectPosts(ctx context.Context, rows *sql.Rows) ([]domain.Post, error) {
	posts := []domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, d.HandleError(err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, d.HandleError(err)
	}

	// The allow-list only matters for private posts; fetching it per post in
	// a listing would be wasted queries otherwise.
	for i := range posts {
		if posts[i].Visibility != domain.Private {
			continue
		}
		var err error
		posts[i].VisibleTo, err = d.visibleTo(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return posts, nil
}

func (d *dbImpl) visibleTo(ctx context.Context, postID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT author_uid FROM post_visible_to WHERE post_id = ?", postID)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	uids := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, d.HandleError(err)
		}
		uids = append(uids, uid)
	}
	return uids, d.HandleError(rows.Err())
}

type scannable interface {
	Scan(dest ...any) error
}

func scanPost(row scannable) (domain.Post, error) {
	var p domain.Post
	var published int64
	err := row.Scan(&p.ID, &p.Title, &p.Source, &p.Origin, &p.Description, &p.ContentType,
		&p.Content, &p.AuthorUid, &published, &p.Visibility, &p.Unlisted)
	if err != nil {
		return domain.Post{}, err
	}
	p.Published = time.Unix(published, 0).UTC()
	return p, nil
}
