package impl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
)

func (d *dbImpl) AreFriends(ctx context.Context, authorUid, friendUid string) (bool, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT TRUE FROM friends WHERE author_id = ? AND friend_id = ?)",
		identity.Normalize(authorUid), identity.Normalize(friendUid))
	var exists bool
	err := row.Scan(&exists)
	return exists, d.HandleError(err)
}

func (d *dbImpl) FriendsOf(ctx context.Context, authorUid string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT friend_id FROM friends WHERE author_id = ?", identity.Normalize(authorUid))
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	friends := []string{}
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, d.HandleError(err)
		}
		friends = append(friends, uid)
	}
	return friends, d.HandleError(rows.Err())
}

func (d *dbImpl) CreateFriendship(ctx context.Context, aUid, bUid string) error {
	a, b := identity.Normalize(aUid), identity.Normalize(bUid)
	return d.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO friends (author_id, friend_id) VALUES (?, ?)", a, b); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO friends (author_id, friend_id) VALUES (?, ?)", b, a)
		return err
	})
}

func (d *dbImpl) CreateFriendRequest(ctx context.Context, fromUid, toUid string) error {
	_, err := d.db.ExecContext(ctx,
		"INSERT INTO friend_requests (from_id, to_id) VALUES (?, ?)",
		identity.Normalize(fromUid), identity.Normalize(toUid))
	return d.HandleError(err)
}

func (d *dbImpl) FriendRequestExists(ctx context.Context, fromUid, toUid string) (bool, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT TRUE FROM friend_requests WHERE from_id = ? AND to_id = ?)",
		identity.Normalize(fromUid), identity.Normalize(toUid))
	var exists bool
	err := row.Scan(&exists)
	return exists, d.HandleError(err)
}

func (d *dbImpl) DeleteFriendRequest(ctx context.Context, fromUid, toUid string) error {
	res, err := d.db.ExecContext(ctx,
		"DELETE FROM friend_requests WHERE from_id = ? AND to_id = ?",
		identity.Normalize(fromUid), identity.Normalize(toUid))
	if err != nil {
		return d.HandleError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return d.HandleError(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: friend request %s -> %s", db.ErrNotFound, fromUid, toUid)
	}
	return nil
}

func (d *dbImpl) FriendRequestsTo(ctx context.Context, toUid string) ([]domain.FriendRequest, error) {
	return d.friendRequests(ctx,
		"SELECT from_id, to_id FROM friend_requests WHERE to_id = ?", identity.Normalize(toUid))
}

func (d *dbImpl) FriendRequestsFrom(ctx context.Context, fromUid string) ([]domain.FriendRequest, error) {
	return d.friendRequests(ctx,
		"SELECT from_id, to_id FROM friend_requests WHERE from_id = ?", identity.Normalize(fromUid))
}

func (d *dbImpl) friendRequests(ctx context.Context, query, uid string) ([]domain.FriendRequest, error) {
	rows, err := d.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	requests := []domain.FriendRequest{}
	for rows.Next() {
		var r domain.FriendRequest
		if err := rows.Scan(&r.FromUid, &r.ToUid); err != nil {
			return nil, d.HandleError(err)
		}
		requests = append(requests, r)
	}
	return requests, d.HandleError(rows.Err())
}
