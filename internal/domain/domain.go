package domain

// Author is a locally stored author. Uid is the canonical identifier
// "host/author/localid"; remote authors are known only by their uid.
type Author struct {
	ID          string
	Uid         string
	Host        string
	DisplayName string
	URL         string
	GitHub      string
	Email       string
	Bio         string
}

// FriendRequest is a pending one-directional request. It is created when a
// request is sent and destroyed when accepted, rejected or superseded by a
// reciprocal request; it is never updated in place.
type FriendRequest struct {
	FromUid string
	ToUid   string
}
