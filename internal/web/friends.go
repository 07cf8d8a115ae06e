package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/identity"
)

// ListFriends handles GET /author/{authorId}/friends/, the friend list the
// FOAF verifier on other nodes consumes.
func ListFriends(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := h.Config.AuthorUid(chi.URLParam(r, "authorId"))

		friends, err := h.DB.FriendsOf(r.Context(), uid)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"query":   "friends",
			"authors": friends,
		})
	}
}

// FilterFriends handles POST /author/{authorId}/friends/: given a candidate
// list, answer with the subset that are confirmed friends.
func FilterFriends(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := h.Config.AuthorUid(chi.URLParam(r, "authorId"))

		var body struct {
			Query   string   `json:"query"`
			Authors []string `json:"authors"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondText(w, http.StatusUnprocessableEntity, "post request body missing fields")
			return
		}

		confirmed := []string{}
		for _, candidate := range body.Authors {
			friends, err := h.DB.AreFriends(r.Context(), uid, candidate)
			if err != nil {
				respondText(w, http.StatusInternalServerError, "")
				return
			}
			if friends {
				confirmed = append(confirmed, candidate)
			}
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"query":   "friends",
			"author":  uid,
			"authors": confirmed,
		})
	}
}

// CheckFriendship handles GET /author/{authorId}/friends/{otherId}, where
// otherId may be a full identifier of an author on another node. Besides the
// friends flag the answer reports whether a request between the two is still
// pending, which remote reconciliation relies on.
func CheckFriendship(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := h.Config.AuthorUid(chi.URLParam(r, "authorId"))

		other := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		if other == "" {
			respondText(w, http.StatusNotFound, "")
			return
		}
		if !strings.Contains(other, "/") {
			// A bare id refers to an author on this node.
			other = h.Config.AuthorUid(other)
		}
		other = identity.Normalize(other)

		friends, err := h.DB.AreFriends(r.Context(), uid, other)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		pending := false
		for _, pair := range [][2]string{{uid, other}, {other, uid}} {
			exists, err := h.DB.FriendRequestExists(r.Context(), pair[0], pair[1])
			if err != nil {
				respondText(w, http.StatusInternalServerError, "")
				return
			}
			pending = pending || exists
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"query":   "friends",
			"authors": []string{uid, other},
			"friends": friends,
			"pending": pending,
		})
	}
}

// AuthorProfile handles GET /author/{authorId}: the author record plus the
// locally known part of their friend list.
func AuthorProfile(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		author, err := h.DB.GetAuthor(r.Context(), chi.URLParam(r, "authorId"))
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				respondText(w, http.StatusNotFound, "no such author")
				return
			}
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		uids, err := h.DB.FriendsOf(r.Context(), author.Uid)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		friends := []map[string]any{}
		for _, uid := range uids {
			entry := map[string]any{"id": uid, "host": identity.Host(uid)}
			// Full records exist only for local friends; remote ones are
			// known by uid alone.
			if full, err := h.DB.GetAuthorByUid(r.Context(), uid); err == nil {
				entry["displayName"] = full.DisplayName
				entry["url"] = full.URL
			}
			friends = append(friends, entry)
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"id":          author.Uid,
			"host":        author.Host,
			"displayName": author.DisplayName,
			"url":         author.URL,
			"github":      author.GitHub,
			"email":       author.Email,
			"bio":         author.Bio,
			"friends":     friends,
		})
	}
}
