package federation

import (
	"context"

	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
)

// Viewer is the identity a visibility decision is made for. Either a peer
// node acting on behalf of its own users, an authenticated author (local or
// remote), or neither when the request is anonymous.
type Viewer struct {
	// Uid of the authenticated author; empty for peer nodes and anonymous
	// callers.
	Uid string
	// Peer is set when the caller authenticated as a peer node rather than an
	// individual author.
	Peer *domain.PeerNode
}

// Authorize decides whether viewer may see post. Rows of the decision table
// are evaluated in order and the first match wins.
func (f *Federation) Authorize(ctx context.Context, post domain.Post, viewer Viewer) (bool, error) {
	if viewer.Peer != nil {
		if post.Visibility == domain.ServerOnly {
			return false, nil
		}
		if !viewer.Peer.PostShare {
			return false, nil
		}
		if post.IsImage() && !viewer.Peer.ImageShare {
			return false, nil
		}
		return true, nil
	}

	author := identity.Normalize(post.AuthorUid)
	if viewer.Uid != "" && identity.Equal(viewer.Uid, author) {
		return true, nil
	}

	switch post.Visibility {
	case domain.Public:
		return true, nil
	case domain.Foaf:
		if viewer.Uid == "" {
			return false, nil
		}
		return f.Foaf(ctx, viewer.Uid, author)
	case domain.ServerOnly:
		return viewer.Uid != "" && identity.SameHost(viewer.Uid, author), nil
	case domain.Private:
		if viewer.Uid == "" {
			return false, nil
		}
		for _, uid := range post.VisibleTo {
			if identity.Equal(uid, viewer.Uid) {
				return true, nil
			}
		}
		return false, nil
	case domain.Friends:
		if viewer.Uid == "" {
			return false, nil
		}
		return f.DB.AreFriends(ctx, author, viewer.Uid)
	}
	return false, nil
}
