package federation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/domain"
)

// postSource yields pages of wire posts. Pages are numbered from zero and a
// source signals exhaustion by returning an empty page.
type postSource struct {
	name  string
	fetch func(ctx context.Context, page int) ([]client.WirePost, error)
	next  int
	done  bool
}

// PublicStream assembles one page of the merged public-post stream: every
// registered peer's public listing plus, when includeLocal is set, this
// node's own public posts. Pages are numbered from one, like the inbound
// posts surface.
//
// Peers are not required to support stable random access into their pages, so
// each call walks every source from its first page until the buffer covers
// the requested slice. Deep pages re-fetch the shallow pages of every peer;
// that cost is accepted in exchange for not demanding more of peers. A source
// that errors, returns garbage or runs out of items is dropped for the rest
// of this call only.
func (f *Federation) PublicStream(ctx context.Context, page, size int, includeLocal bool) ([]client.WirePost, error) {
	if page < 1 {
		page = 1
	}
	sources := []*postSource{}

	if includeLocal {
		sources = append(sources, &postSource{
			name: "local",
			fetch: func(ctx context.Context, p int) ([]client.WirePost, error) {
				posts, _, err := f.DB.PublicPosts(ctx, p, size, true)
				if err != nil {
					return nil, err
				}
				return localToWire(posts), nil
			},
		})
	}

	peers, err := f.DB.ListPeers(ctx)
	if err != nil {
		return nil, err
	}
	for _, peer := range peers {
		if !peer.PostShare {
			continue
		}
		sources = append(sources, &postSource{
			name: peer.Hostname,
			fetch: func(ctx context.Context, p int) ([]client.WirePost, error) {
				// Peers number their pages from one.
				result, err := f.Client.PublicPosts(ctx, peer, p+1, size)
				if err != nil {
					return nil, err
				}
				return result.Posts, nil
			},
		})
	}

	buffer := []client.WirePost{}
	want := page * size

	for len(buffer) < want {
		progressed := false
		for _, src := range sources {
			if src.done {
				continue
			}
			items, err := src.fetch(ctx, src.next)
			if err != nil {
				log.Debug().Err(err).Str("source", src.name).Msg("dropping post source for this page")
				src.done = true
				continue
			}
			if len(items) == 0 {
				src.done = true
				continue
			}
			src.next++
			buffer = append(buffer, items...)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	start := (page - 1) * size
	if start >= len(buffer) {
		return []client.WirePost{}, nil
	}
	end := start + size
	if end > len(buffer) {
		end = len(buffer)
	}
	return buffer[start:end], nil
}

// localToWire renders local posts in the same shape remote posts arrive in,
// so merged pages are uniform.
func localToWire(posts []domain.Post) []client.WirePost {
	out := make([]client.WirePost, 0, len(posts))
	for _, p := range posts {
		encoded, err := json.Marshal(struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Source      string `json:"source"`
			Origin      string `json:"origin"`
			Description string `json:"description"`
			ContentType string `json:"contentType"`
			Content     string `json:"content"`
			Author      string `json:"author"`
			Published   string `json:"published"`
			Visibility  string `json:"visibility"`
		}{
			ID:          p.ID,
			Title:       p.Title,
			Source:      p.Source,
			Origin:      p.Origin,
			Description: p.Description,
			ContentType: p.ContentType,
			Content:     p.Content,
			Author:      p.AuthorUid,
			Published:   p.Published.Format(time.RFC3339),
			Visibility:  p.Visibility,
		})
		if err != nil {
			continue
		}
		var wire client.WirePost
		if err := json.Unmarshal(encoded, &wire); err != nil {
			continue
		}
		out = append(out, wire)
	}
	return out
}
