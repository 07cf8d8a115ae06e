package db

import (
	"context"

	"github.com/socialdistribution/node/internal/domain"
)

type Peers interface {
	// GetPeer looks a peer up by hostname, ErrNotFound if this node has no
	// registry entry for it.
	GetPeer(ctx context.Context, hostname string) (domain.PeerNode, error)
	ListPeers(ctx context.Context) ([]domain.PeerNode, error)
	// CreatePeer registers a peer. The inbound password is bcrypt-hashed
	// before storage; peer rows are otherwise administrative data.
	CreatePeer(ctx context.Context, peer domain.PeerNode) error
	// AuthenticatePeer verifies inbound basic-auth credentials against the
	// registry. A mismatch is reported through ok, not err.
	AuthenticatePeer(ctx context.Context, username, password string) (peer domain.PeerNode, ok bool, err error)
}
