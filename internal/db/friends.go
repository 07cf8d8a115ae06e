package db

import (
	"context"

	"github.com/socialdistribution/node/internal/domain"
)

type Friends interface {
	// AreFriends is a single local lookup of the directed edge (author, friend).
	// Confirmed friendship stores both directions, so one direction answers
	// "is friend a friend of author" without a join.
	AreFriends(ctx context.Context, authorUid, friendUid string) (bool, error)
	// FriendsOf lists the uids author considers friends.
	FriendsOf(ctx context.Context, authorUid string) ([]string, error)
	// CreateFriendship inserts both directed edges. The two inserts run in one
	// local transaction; when the far end of the edge lives on another node
	// that node stores its own half independently.
	CreateFriendship(ctx context.Context, aUid, bUid string) error
	// CreateFriendRequest records a pending request. ErrConflict if the same
	// directed request already exists.
	CreateFriendRequest(ctx context.Context, fromUid, toUid string) error
	FriendRequestExists(ctx context.Context, fromUid, toUid string) (bool, error)
	// DeleteFriendRequest removes the request, ErrNotFound if absent.
	DeleteFriendRequest(ctx context.Context, fromUid, toUid string) error
	// FriendRequestsTo lists pending requests addressed to the given author.
	FriendRequestsTo(ctx context.Context, toUid string) ([]domain.FriendRequest, error)
	// FriendRequestsFrom lists pending requests the given author has sent.
	FriendRequestsFrom(ctx context.Context, fromUid string) ([]domain.FriendRequest, error)
}
