package federation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
)

// ErrUnknownPeer is returned when an operation needs to call a host this node
// has no peer directory entry for.
var ErrUnknownPeer = errors.New("no registered peer for host")

// SendRequest runs the sending half of the friendship protocol for the
// directed pair (author -> friend). The refs carry the wire shapes so a
// remote proxy call can forward them untouched.
//
// When a reciprocal pending request already exists the two requests crossed
// in flight; the reciprocal record is consumed and both edges are created
// right away, no second round trip.
func (f *Federation) SendRequest(ctx context.Context, author, friend client.AuthorRef) error {
	from := identity.Normalize(author.ID)
	to := identity.Normalize(friend.ID)

	exists, err := f.DB.FriendRequestExists(ctx, from, to)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: friend request already exists", db.ErrConflict)
	}

	friends, err := f.DB.AreFriends(ctx, from, to)
	if err != nil {
		return err
	}
	if friends {
		return fmt.Errorf("%w: friendship already exists", db.ErrConflict)
	}

	reciprocal, err := f.DB.FriendRequestExists(ctx, to, from)
	if err != nil {
		return err
	}
	if reciprocal {
		if err := f.DB.DeleteFriendRequest(ctx, to, from); err != nil {
			return err
		}
		log.Info().Str("from", from).Str("to", to).Msg("crossing friend requests resolved into friendship")
		return f.DB.CreateFriendship(ctx, from, to)
	}

	// A request addressed to a remote author is proxied to that author's node
	// first; no local state is created unless the peer takes it.
	if identity.Host(to) != f.Config.Domain {
		peer, err := f.DB.GetPeer(ctx, identity.Host(to))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrUnknownPeer, identity.Host(to))
			}
			return err
		}
		if err := f.Client.SendFriendRequest(ctx, peer, author, friend); err != nil {
			return err
		}
	}

	return f.DB.CreateFriendRequest(ctx, from, to)
}

// Accept resolves the pending request (from -> to) into a confirmed
// friendship, creating both directed edges. Nothing is pushed back to the
// requester's node; friendship state re-derives itself from the edge set the
// next time that node asks.
func (f *Federation) Accept(ctx context.Context, fromUid, toUid string) error {
	if err := f.DB.DeleteFriendRequest(ctx, fromUid, toUid); err != nil {
		return err
	}

	friends, err := f.DB.AreFriends(ctx, fromUid, toUid)
	if err != nil {
		return err
	}
	if friends {
		return fmt.Errorf("%w: friendship already exists", db.ErrConflict)
	}
	return f.DB.CreateFriendship(ctx, fromUid, toUid)
}

// Reject deletes the pending request (from -> to) without creating any edge.
func (f *Federation) Reject(ctx context.Context, fromUid, toUid string) error {
	return f.DB.DeleteFriendRequest(ctx, fromUid, toUid)
}

// IsFriend is a pure local lookup of the directed edge (a, b).
func (f *Federation) IsFriend(ctx context.Context, aUid, bUid string) (bool, error) {
	return f.DB.AreFriends(ctx, aUid, bUid)
}

// PendingRequestsTo lists the pending requests addressed to an author.
func (f *Federation) PendingRequestsTo(ctx context.Context, toUid string) ([]domain.FriendRequest, error) {
	return f.DB.FriendRequestsTo(ctx, toUid)
}
