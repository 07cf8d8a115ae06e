package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/socialdistribution/node/internal/domain"
)

var ctx = context.Background()

func testPeer(apiLocation string) domain.PeerNode {
	return domain.PeerNode{
		Hostname:         "peer.node",
		ApiLocation:      apiLocation,
		OutboundUsername: "outbound-user",
		OutboundPassword: "outbound-pass",
	}
}

func newClient() *HttpClient {
	return New(2 * time.Second)
}

func TestSendFriendRequest(t *testing.T) {
	var received friendRequestBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "outbound-user" || pass != "outbound-pass" {
			t.Error("outbound credentials not sent")
		}
		if r.URL.Path != "/friendrequest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("unreadable body: %s", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	author := AuthorRef{ID: "h1/author/a", Host: "h1"}
	friend := AuthorRef{ID: "peer.node/author/b", Host: "peer.node"}
	err := newClient().SendFriendRequest(ctx, testPeer(srv.URL), author, friend)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := friendRequestBody{Query: "friendrequest", Author: author, Friend: friend}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Errorf("unexpected request body (-want +got):\n%s", diff)
	}
}

func TestSendFriendRequestRemoteStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "already friends", http.StatusConflict)
	}))
	defer srv.Close()

	err := newClient().SendFriendRequest(ctx, testPeer(srv.URL), AuthorRef{}, AuthorRef{})
	var rse *RemoteStatusError
	if !errors.As(err, &rse) {
		t.Fatalf("expected RemoteStatusError, got %v", err)
	}
	if rse.Status != http.StatusConflict {
		t.Errorf("expected status 409, got %d", rse.Status)
	}
}

func TestListFriends(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/author/peer.node/author/bob/friends" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(friendsResponse{
			Query:   "friends",
			Authors: []string{"https://h1/author/d7a387df-2b46-43ed-90f1-51c7e02c51d6/"},
		})
	}))
	defer srv.Close()

	friends, err := newClient().ListFriends(ctx, testPeer(srv.URL), "peer.node/author/bob")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{"h1/author/d7a387df2b4643ed90f151c7e02c51d6"}
	if diff := cmp.Diff(want, friends); diff != "" {
		t.Errorf("friend uids not normalized (-want +got):\n%s", diff)
	}
}

func TestListFriendsLegacyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A legacy peer only understands the bare local id.
		if r.URL.Path != "/author/bob/friends" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(friendsResponse{Query: "friends", Authors: []string{"h1/author/alice"}})
	}))
	defer srv.Close()

	friends, err := newClient().ListFriends(ctx, testPeer(srv.URL), "peer.node/author/bob")
	if err != nil {
		t.Fatalf("expected the legacy path to be tried, got error: %s", err)
	}
	if len(friends) != 1 || friends[0] != "h1/author/alice" {
		t.Errorf("unexpected friends %v", friends)
	}
}

func TestCheckFriendship(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"query":   "friends",
			"authors": []string{"peer.node/author/a", "h1/author/b"},
			"friends": true,
			"pending": false,
		})
	}))
	defer srv.Close()

	status, err := newClient().CheckFriendship(ctx, testPeer(srv.URL), "peer.node/author/a", "h1/author/b")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !status.Friends {
		t.Error("expected friends to be reported")
	}
	if status.Pending == nil || *status.Pending {
		t.Error("expected pending=false to be reported")
	}
}

func TestPublicPostsNormalizesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		if got := r.URL.Query().Get("size"); got != "10" {
			t.Errorf("expected size=10, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"query": "posts",
			"count": 1,
			"size":  10,
			"posts": []map[string]any{{
				"id":           "p1",
				"title":        "hello",
				"content_type": "text/markdown",
				"content":      "hi",
			}},
		})
	}))
	defer srv.Close()

	page, err := newClient().PublicPosts(ctx, testPeer(srv.URL), 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("expected one post, got %d", len(page.Posts))
	}
	post := page.Posts[0]
	if post.ContentType() != "text/markdown" {
		t.Errorf("content type not readable, got %q", post.ContentType())
	}
	if _, stale := post["content_type"]; stale {
		t.Error("legacy field spelling should be rewritten")
	}
	if _, ok := post["contentType"]; !ok {
		t.Error("canonical field spelling missing after normalization")
	}
}

func TestAppendSlashQuirk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/" {
			t.Errorf("expected trailing slash, got %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(PostsPage{Query: "posts"})
	}))
	defer srv.Close()

	peer := testPeer(srv.URL)
	peer.AppendSlash = true
	_, err := newClient().PublicPosts(ctx, peer, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestUnreachablePeer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newClient().PublicPosts(ctx, testPeer(srv.URL), 1, 5)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable, got %v", err)
	}
}

func TestSlowPeerTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(20 * time.Millisecond)
	_, err := c.PublicPosts(ctx, testPeer(srv.URL), 1, 5)
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("expected ErrUnreachable on timeout, got %v", err)
	}
}

func TestGarbageResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := newClient().ListFriends(ctx, testPeer(srv.URL), "peer.node/author/bob")
	if !errors.Is(err, ErrProtocol) {
		t.Errorf("expected ErrProtocol, got %v", err)
	}
}
