package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/validate"
)

type createAuthorBody struct {
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
	GitHub      string `json:"github"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
}

// CreateAuthor handles POST /author, local account registration. The new
// author's uid is minted from a fresh uuid under this node's domain.
func CreateAuthor(h *Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAuthorBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			respondText(w, http.StatusUnprocessableEntity, "post request body missing fields")
			return
		}
		if err := errors.Join(validate.Username(body.DisplayName), validate.Password(body.Password)); err != nil {
			respondText(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		id := strings.ReplaceAll(uuid.NewString(), "-", "")
		author := domain.Author{
			ID:          id,
			Uid:         h.Config.AuthorUid(id),
			Host:        h.Config.Domain,
			DisplayName: body.DisplayName,
			URL:         h.Config.Scheme() + "://" + h.Config.AuthorUid(id),
			GitHub:      body.GitHub,
			Email:       body.Email,
			Bio:         body.Bio,
		}
		if err := h.DB.CreateAuthor(r.Context(), author, body.Password); err != nil {
			if errors.Is(err, db.ErrConflict) {
				respondText(w, http.StatusConflict, "author already exists")
				return
			}
			respondText(w, http.StatusInternalServerError, "")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"id":          author.Uid,
			"host":        author.Host,
			"displayName": author.DisplayName,
			"url":         author.URL,
		})
	}
}
