package web

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/domain"
	"github.com/socialdistribution/node/internal/federation"
)

// Principal is who a request authenticated as: a local author, or a peer
// node from the registry. Both nil means the request is anonymous.
type Principal struct {
	Author *domain.Author
	Peer   *domain.PeerNode
}

// Viewer converts the principal into the identity the authorizer evaluates.
func (p Principal) Viewer() federation.Viewer {
	v := federation.Viewer{Peer: p.Peer}
	if p.Author != nil {
		v.Uid = p.Author.Uid
	}
	return v
}

type key struct{}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(key{}).(Principal)
	return p, ok
}

// BasicAuthMiddleware resolves Authorization headers. Credentials are checked
// first against the peer registry, then against local authors; only basic
// auth is supported. Requests with no or unrecognized credentials pass
// through anonymous, the handlers decide what anonymity may see.
func BasicAuthMiddleware(handler *Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			peer, ok, err := handler.DB.AuthenticatePeer(ctx, username, password)
			if err != nil {
				log.Error().Err(err).Msg("peer authentication failed")
				http.Error(w, "", http.StatusInternalServerError)
				return
			}
			if ok {
				ctx = context.WithValue(ctx, key{}, Principal{Peer: &peer})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			author, ok, err := handler.DB.AuthenticateAuthor(ctx, username, password)
			if err != nil {
				log.Error().Err(err).Msg("author authentication failed")
				http.Error(w, "", http.StatusInternalServerError)
				return
			}
			if ok {
				ctx = context.WithValue(ctx, key{}, Principal{Author: &author})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthenticatedMiddleware rejects requests that did not authenticate as
// either an author or a registered peer.
func AuthenticatedMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetPrincipal(r.Context()); !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm=""`)
				respondText(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
