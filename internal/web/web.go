package web

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/config"
	"github.com/socialdistribution/node/internal/db"
	"github.com/socialdistribution/node/internal/federation"
	"github.com/socialdistribution/node/internal/queue"
)

type Handler struct {
	Config *config.Configuration
	DB     db.DB
	Fed    *federation.Federation
	Queue  queue.Queue
}

func New(config *config.Configuration, d db.DB, fed *federation.Federation, q queue.Queue) Handler {
	return Handler{
		Config: config,
		DB:     d,
		Fed:    fed,
		Queue:  q,
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondText(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
