package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/federation"
	"github.com/socialdistribution/node/internal/validate"
)

type friendRequestBody struct {
	Query  string           `json:"query"`
	Author client.AuthorRef `json:"author"`
	Friend client.AuthorRef `json:"friend"`
}

func decodeFriendRequest(r *http.Request) (friendRequestBody, error) {
	var body friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return body, err
	}
	return body, validate.FriendRequest(body.Author.ID, body.Author.Host, body.Friend.ID, body.Friend.Host)
}

// SendFriendRequest handles POST /friendrequest for local senders, remote
// proxying and incoming requests from peers alike; the negotiator sorts out
// which case it is.
func SendFriendRequest(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeFriendRequest(r)
		if err != nil {
			respondText(w, http.StatusUnprocessableEntity, "post request body missing fields")
			return
		}

		err = h.Fed.SendRequest(r.Context(), body.Author, body.Friend)
		if err != nil {
			writeNegotiationError(w, err)
			return
		}
		respondText(w, http.StatusCreated, "Friend Request Successfully sent")
	}
}

// HandleFriendRequest accepts (POST) or rejects (DELETE) a pending request.
func HandleFriendRequest(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := decodeFriendRequest(r)
		if err != nil {
			respondText(w, http.StatusUnprocessableEntity, "post request body missing fields")
			return
		}

		switch r.Method {
		case http.MethodPost:
			err = h.Fed.Accept(r.Context(), body.Author.ID, body.Friend.ID)
			if err != nil {
				writeNegotiationError(w, err)
				return
			}
			respondText(w, http.StatusCreated, "Friend successfully added")
		case http.MethodDelete:
			err = h.Fed.Reject(r.Context(), body.Author.ID, body.Friend.ID)
			if err != nil {
				writeNegotiationError(w, err)
				return
			}
			respondText(w, http.StatusOK, "Friend request successfully rejected")
		}
	}
}

// RetrieveFriendRequests handles GET /friendrequest/{authorId}, the pending
// requests addressed to a local author. Viewing them is also the moment the
// author's own outgoing requests get reconciled against remote nodes.
func RetrieveFriendRequests(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := h.Config.AuthorUid(chi.URLParam(r, "authorId"))

		requests, err := h.Fed.PendingRequestsTo(r.Context(), uid)
		if err != nil {
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		// Reconciliation is best effort; the listing is still good without it.
		if err := h.Queue.Reconcile(uid); err != nil {
			log.Error().Err(err).Str("author", uid).Msg("failed to enqueue reconciliation")
		}
		respondJSONRequests(w, uid, requests)
	}
}

func respondJSONRequests(w http.ResponseWriter, uid string, requests []domain.FriendRequest) {
	from := make([]string, len(requests))
	for i, request := range requests {
		from[i] = request.FromUid
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"query":   "retrieve_friend_requests",
		"author":  uid,
		"request": from,
	})
}

func writeNegotiationError(w http.ResponseWriter, err error) {
	var remote *client.RemoteStatusError
	switch {
	case errors.As(err, &remote):
		// The remote peer refused; its answer goes back unchanged.
		respondText(w, remote.Status, remote.Body)
	case errors.Is(err, db.ErrConflict):
		respondText(w, http.StatusConflict, err.Error())
	case errors.Is(err, db.ErrNotFound):
		respondText(w, http.StatusNotFound, "No such friend request")
	case errors.Is(err, federation.ErrUnknownPeer):
		respondText(w, http.StatusUnauthorized, "Not Authenticated with Remote Server")
	case errors.Is(err, client.ErrUnreachable):
		respondText(w, http.StatusBadGateway, "remote peer unreachable")
	default:
		respondText(w, http.StatusInternalServerError, "")
	}
}
