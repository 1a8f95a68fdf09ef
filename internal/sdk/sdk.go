// Package sdk holds the survey SDK client surface consumed by the demo view,
// plus a local sandbox implementation and a logging decorator.
package sdk

import (
	"context"

	"github.com/pkg/errors"
)

// Client is the capability set the demo view dispatches to.
type Client interface {
	Logout(ctx context.Context) error
	Track(ctx context.Context, action string) error
	SetAttribute(ctx context.Context, key, value string) error
	SetEmail(ctx context.Context, email string) error
	SetUserID(ctx context.Context, userID string) error
}

// Call names as they appear in logs and the journal.
const (
	CallLogout       = "logout"
	CallTrack        = "track"
	CallSetAttribute = "setAttribute"
	CallSetEmail     = "setEmail"
	CallSetUserID    = "setUserId"
)

// EmailAttribute is the attribute key SetEmail writes.
const EmailAttribute = "email"

var (
	ErrEmptyAction       = errors.New("action name must not be empty")
	ErrEmptyAttributeKey = errors.New("attribute key must not be empty")
	ErrUserIDAlreadySet  = errors.New("a different user id is already set, logout first")
)
