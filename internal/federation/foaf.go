package federation

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/identity"
)

// Foaf reports whether candidate is reachable from viewer within two hops on
// the friend graph. Hop one is always local to the viewer's node; hop two may
// need a remote friend-list lookup. The walk stops at the first confirming
// branch and a failing branch (unknown or unreachable peer, unparsable
// response) contributes no match instead of aborting the check.
func (f *Federation) Foaf(ctx context.Context, viewerUid, candidateUid string) (bool, error) {
	viewer := identity.Normalize(viewerUid)
	candidate := identity.Normalize(candidateUid)

	if viewer == candidate {
		return true, nil
	}

	direct, err := f.DB.AreFriends(ctx, viewer, candidate)
	if err != nil {
		return false, err
	}
	if direct {
		return true, nil
	}

	friends, err := f.DB.FriendsOf(ctx, viewer)
	if err != nil {
		return false, err
	}

	for _, friend := range friends {
		if identity.Host(friend) == f.Config.Domain {
			viaLocal, err := f.DB.AreFriends(ctx, friend, candidate)
			if err != nil {
				return false, err
			}
			if viaLocal {
				return true, nil
			}
			continue
		}

		peer, err := f.DB.GetPeer(ctx, identity.Host(friend))
		if err != nil {
			log.Debug().Str("host", identity.Host(friend)).
				Msg("skipping FOAF branch through unregistered host")
			continue
		}

		remoteFriends, err := f.Client.ListFriends(ctx, peer, friend)
		if err != nil {
			log.Debug().Err(err).Str("peer", peer.Hostname).Str("friend", friend).
				Msg("skipping FOAF branch, friend list unavailable")
			continue
		}

		for _, uid := range remoteFriends {
			if identity.Equal(uid, candidate) {
				return true, nil
			}
		}
	}

	return false, nil
}
