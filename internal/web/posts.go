package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
)

// pageParams reads the page and size query parameters. Pages on the HTTP
// surface are numbered from one, which is what peers fetching each other's
// listings expect.
func (h *Handler) pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = h.Config.PageSize
	}
	if size > h.Config.SizeLimit {
		size = h.Config.SizeLimit
	}
	return page, size
}

// PublicPosts handles GET /posts: this node's public posts, paginated. Peer
// callers are additionally gated by their share flags.
func PublicPosts(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := GetPrincipal(r.Context())
		if principal.Peer != nil && !principal.Peer.PostShare {
			respondText(w, http.StatusForbidden, "post sharing is not enabled for your node")
			return
		}

		page, size := h.pageParams(r)
		// Filtering images out at the query keeps pages full and the count
		// honest for peers that are not entitled to them.
		withImages := principal.Peer == nil || principal.Peer.ImageShare
		posts, count, err := h.DB.PublicPosts(r.Context(), page-1, size, withImages)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		h.writePostsPage(w, r, posts, count, page, size)
	}
}

// Stream handles GET /posts/stream: the federated stream, merging every
// peer's public posts with the local ones into stable pages.
func Stream(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := h.pageParams(r)
		posts, err := h.Fed.PublicStream(r.Context(), page, size, true)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		response := map[string]any{
			"query": "posts",
			"count": len(posts),
			"size":  size,
			"posts": posts,
		}
		addPageLinks(response, r, page, size, len(posts) == size)
		respondJSON(w, http.StatusOK, response)
	}
}

// GetPost handles GET /posts/{postId}; the visibility authorizer decides
// whether the caller may see it.
func GetPost(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.DB.GetPost(r.Context(), chi.URLParam(r, "postId"))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				respondText(w, http.StatusNotFound, "no such post")
				return
			}
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		principal, _ := GetPrincipal(r.Context())
		allowed, err := h.Fed.Authorize(r.Context(), post, principal.Viewer())
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}
		if !allowed {
			respondText(w, http.StatusForbidden, "you are not allowed to see this post")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"query": "post",
			"post":  postToWire(post),
		})
	}
}

// AuthorPosts handles GET /author/{authorId}/posts: the author's posts that
// are visible to the caller.
func AuthorPosts(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := h.Config.AuthorUid(chi.URLParam(r, "authorId"))
		posts, err := h.DB.PostsByAuthor(r.Context(), uid)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		principal, _ := GetPrincipal(r.Context())
		visible := []domain.Post{}
		for _, post := range posts {
			allowed, err := h.Fed.Authorize(r.Context(), post, principal.Viewer())
			if err != nil {
				respondText(w, http.StatusInternalServerError, "")
				return
			}
			if allowed {
				visible = append(visible, post)
			}
		}

		page, size := h.pageParams(r)
		count := len(visible)
		start := (page - 1) * size
		if start > count {
			start = count
		}
		end := start + size
		if end > count {
			end = count
		}
		h.writePostsPage(w, r, visible[start:end], count, page, size)
	}
}

type createPostBody struct {
	Query string `json:"query"`
	Post  struct {
		Title       string   `json:"title"`
		Source      string   `json:"source"`
		Origin      string   `json:"origin"`
		Description string   `json:"description"`
		ContentType string   `json:"contentType"`
		Content     string   `json:"content"`
		Visibility  string   `json:"visibility"`
		VisibleTo   []string `json:"visibleTo"`
		Unlisted    bool     `json:"unlisted"`
	} `json:"post"`
}

// CreatePost handles POST /author/posts for the authenticated local author.
func CreatePost(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, _ := GetPrincipal(r.Context())
		if principal.Author == nil {
			respondText(w, http.StatusForbidden, "only authors can create posts")
			return
		}

		var body createPostBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Post.Title == "" {
			respondText(w, http.StatusUnprocessableEntity, "post request body missing fields")
			return
		}

		post := domain.Post{
			ID:          uuid.NewString(),
			Title:       body.Post.Title,
			Source:      body.Post.Source,
			Origin:      body.Post.Origin,
			Description: body.Post.Description,
			ContentType: body.Post.ContentType,
			Content:     body.Post.Content,
			AuthorUid:   principal.Author.Uid,
			Published:   time.Now().UTC(),
			Visibility:  body.Post.Visibility,
			VisibleTo:   body.Post.VisibleTo,
			Unlisted:    body.Post.Unlisted,
		}
		if post.ContentType == "" {
			post.ContentType = domain.TypeMarkdown
		}
		if post.Visibility == "" {
			post.Visibility = domain.Friends
		}

		if err := h.DB.CreatePost(r.Context(), post); err != nil {
			if errors.Is(err, db.ErrConflict) {
				respondText(w, http.StatusConflict, "post already exists")
				return
			}
			respondText(w, http.StatusInternalServerError, "")
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{
			"query": "createPost",
			"id":    post.ID,
		})
	}
}

func (h *Handler) writePostsPage(w http.ResponseWriter, r *http.Request, posts []domain.Post, count, page, size int) {
	wire := make([]client.WirePost, 0, len(posts))
	for _, post := range posts {
		wire = append(wire, postToWire(post))
	}

	response := map[string]any{
		"query": "posts",
		"count": count,
		"size":  len(posts),
		"posts": wire,
	}
	addPageLinks(response, r, page, size, page*size < count)
	respondJSON(w, http.StatusOK, response)
}

// addPageLinks sets the next and prev uris on a listing response, preserving
// the rest of the query string.
func addPageLinks(response map[string]any, r *http.Request, page, size int, hasNext bool) {
	build := func(page int) string {
		u := *r.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("size", strconv.Itoa(size))
		u.RawQuery = q.Encode()
		return u.String()
	}
	if page > 1 {
		response["prev"] = build(page - 1)
	}
	if hasNext {
		response["next"] = build(page + 1)
	}
}

func postToWire(post domain.Post) client.WirePost {
	wire := client.WirePost{
		"id":          post.ID,
		"title":       post.Title,
		"source":      post.Source,
		"origin":      post.Origin,
		"description": post.Description,
		"contentType": post.ContentType,
		"content":     post.Content,
		"author":      post.AuthorUid,
		"published":   post.Published.Format(time.RFC3339),
		"visibility":  post.Visibility,
		"unlisted":    post.Unlisted,
	}
	if post.Visibility == domain.Private {
		wire["visibleTo"] = post.VisibleTo
	}
	return wire
}
