package domain

import "time"

// Visibility levels a post can carry. The zero value is not valid; posts
// default to Friends on creation.
const (
	Public     = "PUBLIC"
	Friends    = "FRIENDS"
	Foaf       = "FOAF"
	Private    = "PRIVATE"
	ServerOnly = "SERVERONLY"
)

// Content types understood on the wire. Image types matter to the authorizer:
// peers can be entitled to posts but not images.
const (
	TypePlain    = "text/plain"
	TypeMarkdown = "text/markdown"
	TypePNG      = "image/png;base64"
	TypeJPEG     = "image/jpeg;base64"
	TypeBase64   = "application/base64"
)

type Post struct {
	ID          string
	Title       string
	Source      string
	Origin      string
	Description string
	ContentType string
	Content     string
	AuthorUid   string
	Published   time.Time
	Visibility  string
	// VisibleTo is the explicit allow-list consulted for Private posts.
	VisibleTo []string
	Unlisted  bool
}

// IsImage reports whether the post's content is image data, which some peers
// are not entitled to receive.
func (p Post) IsImage() bool {
	switch p.ContentType {
	case TypePNG, TypeJPEG, TypeBase64:
		return true
	}
	return false
}
