// Package federation implements the cross-node social-graph layer: the
// friendship negotiation protocol, the FOAF reachability check, the post
// visibility authorizer and the federated pagination aggregator. The friend
// graph is partitioned across nodes; everything remote happens through the
// PeerClient interface, never through a transparent object reference.
package federation

import (
	"context"

	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/config"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
)

// PeerFriendLister fetches the friend list a remote node stores for one of
// its authors.
type PeerFriendLister interface {
	ListFriends(ctx context.Context, peer domain.PeerNode, authorUid string) ([]string, error)
}

// PeerFriendChecker asks a remote node whether two authors are friends.
type PeerFriendChecker interface {
	CheckFriendship(ctx context.Context, peer domain.PeerNode, aUid, bUid string) (client.FriendshipStatus, error)
}

// PeerRequester proxies a friend request to a remote node.
type PeerRequester interface {
	SendFriendRequest(ctx context.Context, peer domain.PeerNode, author, friend client.AuthorRef) error
}

// PeerPostLister fetches one page of a remote node's public posts.
type PeerPostLister interface {
	PublicPosts(ctx context.Context, peer domain.PeerNode, page, size int) (client.PostsPage, error)
}

// PeerClient is the full outbound surface; *client.HttpClient implements it.
type PeerClient interface {
	PeerFriendLister
	PeerFriendChecker
	PeerRequester
	PeerPostLister
}

type Federation struct {
	Config config.Configuration
	DB     db.DB
	Client PeerClient
}

func New(cfg config.Configuration, d db.DB, c PeerClient) *Federation {
	return &Federation{
		Config: cfg,
		DB:     d,
		Client: c,
	}
}
