package federation

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/identity"
)

// ReconcileRequests resolves an author's outgoing pending requests to remote
// authors. Acceptance is never pushed between nodes, so a request accepted
// remotely only becomes visible here when we ask: for each pending request
// the remote node is asked whether the friendship now exists. Confirmed ones
// are turned into edge pairs, requests the peer reports as neither friends
// nor pending are stale and get dropped. Peer failures leave the request
// untouched for the next run.
func (f *Federation) ReconcileRequests(ctx context.Context, authorUid string) error {
	author := identity.Normalize(authorUid)
	pending, err := f.DB.FriendRequestsFrom(ctx, author)
	if err != nil {
		return err
	}

	for _, request := range pending {
		host := identity.Host(request.ToUid)
		if host == f.Config.Domain {
			continue
		}

		peer, err := f.DB.GetPeer(ctx, host)
		if err != nil {
			continue
		}

		status, err := f.Client.CheckFriendship(ctx, peer, request.ToUid, author)
		if err != nil {
			log.Debug().Err(err).Str("peer", peer.Hostname).
				Msg("friendship state unavailable, leaving request pending")
			continue
		}

		switch {
		case status.Friends:
			if err := f.DB.DeleteFriendRequest(ctx, author, request.ToUid); err != nil {
				return err
			}
			friends, err := f.DB.AreFriends(ctx, author, request.ToUid)
			if err != nil {
				return err
			}
			if !friends {
				if err := f.DB.CreateFriendship(ctx, author, request.ToUid); err != nil {
					return err
				}
			}
			log.Info().Str("author", author).Str("friend", request.ToUid).
				Msg("outgoing friend request confirmed by peer")
		case status.Pending != nil && !*status.Pending:
			if err := f.DB.DeleteFriendRequest(ctx, author, request.ToUid); err != nil {
				return err
			}
			log.Info().Str("author", author).Str("to", request.ToUid).
				Msg("dropped stale friend request")
		}
	}
	return nil
}
