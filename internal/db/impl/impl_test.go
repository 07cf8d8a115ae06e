package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/socialdistribution/node/internal/config"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/initialization"
)

var DB db.DB
var ctx = context.Background()

func TestMain(m *testing.M) {
	cfg := config.Configuration{
		Domain: "test.node",
	}
	d, err := initialization.OpenDB("file:impltest?mode=memory&cache=shared")
	if err != nil {
		return
	}

	err = initialization.SetupDB(&cfg, d, "../../../migrations", "impltest")
	if err != nil {
		return
	}
	DB = New(cfg, d)
	m.Run()
}

func TestFriendRequestLifecycle(t *testing.T) {
	from := "test.node/author/req1"
	to := "test.node/author/req2"

	exists, err := DB.FriendRequestExists(ctx, from, to)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if exists {
		t.Fatal("request reported before creation")
	}

	if err := DB.CreateFriendRequest(ctx, from, to); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	err = DB.CreateFriendRequest(ctx, from, to)
	if !errors.Is(err, db.ErrConflict) {
		t.Errorf("duplicate request: expected ErrConflict, got %v", err)
	}

	exists, err = DB.FriendRequestExists(ctx, from, to)
	if err != nil || !exists {
		t.Errorf("expected request to exist, got exists=%v err=%v", exists, err)
	}

	requests, err := DB.FriendRequestsTo(ctx, to)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []domain.FriendRequest{{FromUid: from, ToUid: to}}
	if diff := cmp.Diff(want, requests); diff != "" {
		t.Errorf("unexpected pending requests (-want +got):\n%s", diff)
	}

	if err := DB.DeleteFriendRequest(ctx, from, to); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	err = DB.DeleteFriendRequest(ctx, from, to)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestCreateFriendshipIsSymmetric(t *testing.T) {
	a := "test.node/author/syma"
	b := "other.node/author/symb"

	if err := DB.CreateFriendship(ctx, a, b); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	for _, pair := range [][2]string{{a, b}, {b, a}} {
		friends, err := DB.AreFriends(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if !friends {
			t.Errorf("expected %s and %s to be friends", pair[0], pair[1])
		}
	}

	err := DB.CreateFriendship(ctx, a, b)
	if !errors.Is(err, db.ErrConflict) {
		t.Errorf("duplicate friendship: expected ErrConflict, got %v", err)
	}
}

func TestFriendLookupNormalizesIds(t *testing.T) {
	a := "test.node/author/d7a387df2b4643ed90f151c7e02c51d6"
	b := "other.node/author/019fcd6892244d1d8dd3e6e865451a31"

	if err := DB.CreateFriendship(ctx, a, b); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	friends, err := DB.AreFriends(ctx,
		"http://test.node/author/d7a387df-2b46-43ed-90f1-51c7e02c51d6/",
		"https://other.node/author/019fcd68-9224-4d1d-8dd3-e6e865451a31")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !friends {
		t.Error("differently formatted ids of the same authors were not matched")
	}
}

func TestAuthorAuthentication(t *testing.T) {
	author := domain.Author{
		ID:          "11111111222233334444555555555555",
		Uid:         "test.node/author/11111111222233334444555555555555",
		Host:        "test.node",
		DisplayName: "sarah",
	}
	if err := DB.CreateAuthor(ctx, author, "correct horse battery"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got, ok, err := DB.AuthenticateAuthor(ctx, "sarah", "correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !ok {
		t.Fatal("valid credentials rejected")
	}
	if got.Uid != author.Uid {
		t.Errorf("expected uid %s, got %s", author.Uid, got.Uid)
	}

	_, ok, err = DB.AuthenticateAuthor(ctx, "sarah", "wrong")
	if err != nil || ok {
		t.Errorf("invalid password: expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}

	_, ok, err = DB.AuthenticateAuthor(ctx, "nobody", "whatever")
	if err != nil || ok {
		t.Errorf("unknown user: expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestPeerAuthentication(t *testing.T) {
	peer := domain.PeerNode{
		Hostname:         "peer.example.org",
		InboundUsername:  "peernode",
		InboundPassword:  "sekrit",
		ApiLocation:      "peer.example.org/api",
		OutboundUsername: "us",
		OutboundPassword: "outbound",
		PostShare:        true,
	}
	if err := DB.CreatePeer(ctx, peer); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got, ok, err := DB.AuthenticatePeer(ctx, "peernode", "sekrit")
	if err != nil || !ok {
		t.Fatalf("valid peer credentials rejected: ok=%v err=%v", ok, err)
	}
	if got.Hostname != peer.Hostname {
		t.Errorf("expected hostname %s, got %s", peer.Hostname, got.Hostname)
	}

	_, ok, _ = DB.AuthenticatePeer(ctx, "peernode", "nope")
	if ok {
		t.Error("invalid peer password accepted")
	}

	fetched, err := DB.GetPeer(ctx, "peer.example.org")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if fetched.OutboundPassword != "outbound" {
		t.Error("outbound password must be stored recoverable")
	}

	_, err = DB.GetPeer(ctx, "stranger.example.org")
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPublicPostsPagination(t *testing.T) {
	author := "test.node/author/poster"
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		post := domain.Post{
			ID:          "post-page-" + string(rune('a'+i)),
			Title:       "post",
			ContentType: domain.TypeMarkdown,
			Content:     "hello",
			AuthorUid:   author,
			Published:   base.Add(time.Duration(i) * time.Hour),
			Visibility:  domain.Public,
		}
		if err := DB.CreatePost(ctx, post); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}
	// Neither of these should show up in a public listing.
	hidden := domain.Post{
		ID: "post-page-hidden", Title: "post", Content: "x",
		AuthorUid: author, Published: base, Visibility: domain.Friends,
	}
	unlisted := domain.Post{
		ID: "post-page-unlisted", Title: "post", Content: "x",
		AuthorUid: author, Published: base, Visibility: domain.Public, Unlisted: true,
	}
	for _, p := range []domain.Post{hidden, unlisted} {
		if err := DB.CreatePost(ctx, p); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	posts, count, err := DB.PublicPosts(ctx, 0, 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if count != 5 {
		t.Errorf("expected 5 public posts, counted %d", count)
	}
	if len(posts) != 2 {
		t.Fatalf("expected a page of 2, got %d", len(posts))
	}
	if !posts[0].Published.After(posts[1].Published) {
		t.Error("expected newest-first ordering")
	}

	second, _, err := DB.PublicPosts(ctx, 1, 2, true)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(second) != 2 || second[0].ID == posts[0].ID {
		t.Error("second page should continue past the first")
	}
}

func TestCreatePostConflict(t *testing.T) {
	post := domain.Post{
		ID:         "post-twice",
		Title:      "once",
		Content:    "x",
		AuthorUid:  "test.node/author/twice",
		Published:  time.Now(),
		Visibility: domain.Public,
		Unlisted:   true,
	}
	if err := DB.CreatePost(ctx, post); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	err := DB.CreatePost(ctx, post)
	if !errors.Is(err, db.ErrConflict) {
		t.Errorf("duplicate post id: expected ErrConflict, got %v", err)
	}
}

func TestPublicPostsWithoutImages(t *testing.T) {
	author := "test.node/author/image-poster"
	text := domain.Post{
		ID: "post-img-text", Title: "words", ContentType: domain.TypeMarkdown,
		Content: "hello", AuthorUid: author, Published: time.Now(),
		Visibility: domain.Public,
	}
	image := domain.Post{
		ID: "post-img-png", Title: "picture", ContentType: domain.TypePNG,
		Content: "aGk=", AuthorUid: author, Published: time.Now(),
		Visibility: domain.Public,
	}
	for _, p := range []domain.Post{text, image} {
		if err := DB.CreatePost(ctx, p); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
	}

	_, withCount, err := DB.PublicPosts(ctx, 0, 50, true)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	posts, withoutCount, err := DB.PublicPosts(ctx, 0, 50, false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if withoutCount != withCount-1 {
		t.Errorf("count should drop by the one image post: %d vs %d", withoutCount, withCount)
	}
	for _, p := range posts {
		if p.IsImage() {
			t.Errorf("image post %s leaked into the filtered listing", p.ID)
		}
	}
}

func TestPrivatePostAllowList(t *testing.T) {
	post := domain.Post{
		ID:         "post-private",
		Title:      "secret",
		Content:    "for your eyes only",
		AuthorUid:  "test.node/author/private-author",
		Published:  time.Now(),
		Visibility: domain.Private,
		VisibleTo:  []string{"other.node/author/friend1", "other.node/author/friend2"},
	}
	if err := DB.CreatePost(ctx, post); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	got, err := DB.GetPost(ctx, "post-private")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if diff := cmp.Diff(post.VisibleTo, got.VisibleTo); diff != "" {
		t.Errorf("allow-list not round-tripped (-want +got):\n%s", diff)
	}

	_, err = DB.GetPost(ctx, "no-such-post")
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
