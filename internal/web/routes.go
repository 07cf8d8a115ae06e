package web

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) Mount(r chi.Router) {
	authenticated := AuthenticatedMiddleware()
	r.Use(BasicAuthMiddleware(h))

	r.Route("/friendrequest", func(r chi.Router) {
		r.With(authenticated).Post("/", SendFriendRequest(h))
		r.With(authenticated).Post("/handle", HandleFriendRequest(h))
		r.With(authenticated).Delete("/handle", HandleFriendRequest(h))
		r.Get("/{authorId}", RetrieveFriendRequests(h))
	})

	r.Route("/author", func(r chi.Router) {
		r.Post("/", CreateAuthor(h))
		r.With(authenticated).Post("/posts", CreatePost(h))
		r.Route("/{authorId}", func(r chi.Router) {
			r.Get("/", AuthorProfile(h))
			r.Get("/posts", AuthorPosts(h))
			r.Get("/friends", ListFriends(h))
			r.Get("/friends/", ListFriends(h))
			r.Post("/friends", FilterFriends(h))
			r.Post("/friends/", FilterFriends(h))
			r.Get("/friends/*", CheckFriendship(h))
		})
	})

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", PublicPosts(h))
		r.With(authenticated).Get("/stream", Stream(h))
		r.Get("/{postId}", GetPost(h))
	})
}
