// Package session models the authenticated identity as an explicit value
// handed to every consumer, together with the operation that ends it.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated session")

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}

// Session is the identity of one caller. The zero value is anonymous.
type Session struct {
	User *User

	signOut func(ctx context.Context) error
}

func Anonymous() Session {
	return Session{}
}

// New returns an authenticated session whose SignOut runs signOut.
func New(u User, signOut func(ctx context.Context) error) Session {
	return Session{User: &u, signOut: signOut}
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.User.ID != uuid.Nil
}

// UserID is uuid.Nil for anonymous sessions.
func (s Session) UserID() uuid.UUID {
	if s.User == nil {
		return uuid.Nil
	}
	return s.User.ID
}

func (s Session) SignOut(ctx context.Context) error {
	if !s.Authenticated() || s.signOut == nil {
		return ErrNoSession
	}
	return s.signOut(ctx)
}
