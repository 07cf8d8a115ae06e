// Package client is the single outbound HTTP client used for every
// peer-to-peer call. Peers are plain data records from the peer directory;
// the client authenticates with the stored basic-auth credentials and
// tolerates the trailing-slash quirk some of them have.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/identity"
)

var (
	// ErrUnreachable marks network failures and timeouts talking to a peer.
	ErrUnreachable = errors.New("peer unreachable")
	// ErrProtocol marks a 2xx response whose body could not be parsed as the
	// expected shape.
	ErrProtocol = errors.New("peer protocol violation")
)

// RemoteStatusError carries a non-2xx peer response so callers that proxy a
// request can surface the remote status unchanged.
type RemoteStatusError struct {
	Status int
	Body   string
}

func (e *RemoteStatusError) Error() string {
	return fmt.Sprintf("remote returned %d: %s", e.Status, e.Body)
}

type HttpClient struct {
	client *http.Client
}

// New builds a client for peer calls. The timeout bounds each whole call,
// body read included; a peer that exceeds it is reported as unreachable.
func New(timeout time.Duration) *HttpClient {
	return &HttpClient{client: &http.Client{Timeout: timeout}}
}

// AuthorRef is the author shape exchanged inside friend request bodies.
type AuthorRef struct {
	ID          string `json:"id"`
	Host        string `json:"host"`
	DisplayName string `json:"displayName,omitempty"`
	URL         string `json:"url,omitempty"`
}

type friendRequestBody struct {
	Query  string    `json:"query"`
	Author AuthorRef `json:"author"`
	Friend AuthorRef `json:"friend"`
}

type friendsResponse struct {
	Query   string   `json:"query"`
	Authors []string `json:"authors"`
}

// FriendshipStatus is a peer's answer to "are these two authors friends".
// Pending is only reported by some peers.
type FriendshipStatus struct {
	Friends bool  `json:"friends"`
	Pending *bool `json:"pending"`
}

// SendFriendRequest proxies a friend request to the peer's inbound endpoint.
// A non-2xx remote response is returned as a RemoteStatusError so the caller
// can pass status and body through unchanged.
func (c *HttpClient) SendFriendRequest(ctx context.Context, peer domain.PeerNode, author, friend AuthorRef) error {
	body, err := json.Marshal(friendRequestBody{
		Query:  "friendrequest",
		Author: author,
		Friend: friend,
	})
	if err != nil {
		return err
	}

	res, err := c.do(ctx, peer, http.MethodPost, c.peerURL(peer, "friendrequest"), body)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		content, _ := io.ReadAll(res.Body)
		log.Debug().Int("status", res.StatusCode).Str("peer", peer.Hostname).
			Msg("friend request rejected by peer")
		return &RemoteStatusError{Status: res.StatusCode, Body: string(content)}
	}
	return nil
}

// ListFriends asks a peer for the friends of one of its authors. Legacy peers
// expose the same data keyed by the author's local id only, so a failing
// first request is retried at the older path before giving up.
func (c *HttpClient) ListFriends(ctx context.Context, peer domain.PeerNode, authorUid string) ([]string, error) {
	uid := identity.Normalize(authorUid)
	res, err := c.do(ctx, peer, http.MethodGet, c.peerURL(peer, "author", uid, "friends"), nil)
	if err == nil && res.StatusCode >= 300 {
		res.Body.Close()
		err = &RemoteStatusError{Status: res.StatusCode}
	}
	if err != nil {
		if i := strings.LastIndex(uid, "/"); i >= 0 {
			res, err = c.do(ctx, peer, http.MethodGet, c.peerURL(peer, "author", uid[i+1:], "friends"), nil)
		}
		if err != nil {
			return nil, err
		}
		if res.StatusCode >= 300 {
			res.Body.Close()
			return nil, &RemoteStatusError{Status: res.StatusCode}
		}
	}
	defer res.Body.Close()

	var parsed friendsResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProtocol, err)
	}

	friends := make([]string, len(parsed.Authors))
	for i, f := range parsed.Authors {
		friends[i] = identity.Normalize(f)
	}
	return friends, nil
}

// CheckFriendship asks a peer whether two authors are friends.
func (c *HttpClient) CheckFriendship(ctx context.Context, peer domain.PeerNode, aUid, bUid string) (FriendshipStatus, error) {
	u := c.peerURL(peer, "author", identity.Normalize(aUid), "friends", identity.Normalize(bUid))
	res, err := c.do(ctx, peer, http.MethodGet, u, nil)
	if err != nil {
		return FriendshipStatus{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		content, _ := io.ReadAll(res.Body)
		return FriendshipStatus{}, &RemoteStatusError{Status: res.StatusCode, Body: string(content)}
	}

	var status FriendshipStatus
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		return FriendshipStatus{}, fmt.Errorf("%w: %s", ErrProtocol, err)
	}
	return status, nil
}

// WirePost is a post as it appears on the wire. The payload is opaque to this
// node apart from the few fields the authorizer and aggregator read.
type WirePost map[string]any

// ContentType reads the post's content type, accepting the field-name
// variants peers use.
func (p WirePost) ContentType() string {
	for _, key := range []string{"contentType", "content_type"} {
		if v, ok := p[key].(string); ok {
			return v
		}
	}
	return ""
}

// Normalize rewrites known field-name variants to their canonical spelling so
// pages merged from different peers look alike.
func (p WirePost) Normalize() {
	if _, ok := p["contentType"]; !ok {
		if v, ok := p["content_type"]; ok {
			p["contentType"] = v
			delete(p, "content_type")
		}
	}
}

// PostsPage is one page of a peer's public post listing.
type PostsPage struct {
	Query string     `json:"query"`
	Count int        `json:"count"`
	Size  int        `json:"size"`
	Posts []WirePost `json:"posts"`
	Next  string     `json:"next,omitempty"`
	Prev  string     `json:"prev,omitempty"`
}

// PublicPosts fetches one page of a peer's public posts.
func (c *HttpClient) PublicPosts(ctx context.Context, peer domain.PeerNode, page, size int) (PostsPage, error) {
	u := fmt.Sprintf("%s?page=%d&size=%d", c.peerURL(peer, "posts"), page, size)
	res, err := c.do(ctx, peer, http.MethodGet, u, nil)
	if err != nil {
		return PostsPage{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return PostsPage{}, &RemoteStatusError{Status: res.StatusCode}
	}

	var parsed PostsPage
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return PostsPage{}, fmt.Errorf("%w: %s", ErrProtocol, err)
	}
	for _, post := range parsed.Posts {
		post.Normalize()
	}
	return parsed, nil
}

func (c *HttpClient) do(ctx context.Context, peer domain.PeerNode, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(peer.OutboundUsername, peer.OutboundPassword)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("peer", peer.Hostname).Str("url", url).Msg("peer call failed")
		return nil, fmt.Errorf("%w: %s", ErrUnreachable, err)
	}
	return res, nil
}

// peerURL joins path segments onto the peer's API location, honoring the
// peer's trailing-slash preference.
func (c *HttpClient) peerURL(peer domain.PeerNode, segments ...string) string {
	base := strings.TrimRight(peer.ApiLocation, "/")
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	u := base + "/" + strings.Join(segments, "/")
	if peer.AppendSlash {
		u += "/"
	}
	return u
}
