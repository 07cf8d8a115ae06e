package validate

import (
	"errors"
	"fmt"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 72
	MaxUsernameLen = 64
)

// FriendRequest checks that a friend request body carries the fields the
// protocol requires. Missing fields are reported together.
func FriendRequest(authorID, authorHost, friendID, friendHost string) error {
	var errs = []error{}

	errs = append(errs, required("author.id", authorID))
	errs = append(errs, required("author.host", authorHost))
	errs = append(errs, required("friend.id", friendID))
	errs = append(errs, required("friend.host", friendHost))

	return errors.Join(errs...)
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("missing %s", field)
	}
	return nil
}

func Password(password string) error {
	l := len(password)
	switch {
	case l == 0:
		return errors.New("empty password")
	case l < MinPasswordLen:
		return fmt.Errorf("password too short; min %d characters", MinPasswordLen)
	case l > MaxPasswordLen:
		return fmt.Errorf("password too long; max %d characters", MaxPasswordLen)
	}
	return nil
}

func Username(username string) error {
	if l := len(username); l == 0 {
		return errors.New("empty username")
	} else if l > MaxUsernameLen {
		return fmt.Errorf("username too long; max %d characters", MaxUsernameLen)
	}
	return nil
}
