package db

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// DB is the storage surface the federation core reads and writes. The friend
// graph held here is only this node's partition of the global graph; edges
// whose far end lives on another node are stored by uid string alone.
type DB interface {
	Friends
	Authors
	Posts
	Peers
}
