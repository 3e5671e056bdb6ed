// Package service implements the application operations on top of the
// repository layer. Every operation validates its input first, resolves the
// calling identity where one is needed, and issues at most the remote calls
// the operation requires.
package service

import (
	"context"

	"vaadbayit/domain"
	"vaadbayit/supabase"
)

// Identity resolves the currently signed-in user. *supabase.Auth satisfies
// it; tests plug in a static stub.
type Identity interface {
	// GetUser returns the signed-in user, or (nil, nil) when signed out.
	GetUser(ctx context.Context) (*supabase.User, error)
}

// requireUser resolves the caller or fails with domain.ErrUnauthenticated.
// Called before any write so an unauthenticated caller never reaches the
// network.
func requireUser(ctx context.Context, id Identity) (*supabase.User, error) {
	user, err := id.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// StaticIdentity Identity returning a fixed user; nil means signed out.
type StaticIdentity struct {
	User *supabase.User
}

func (s StaticIdentity) GetUser(ctx context.Context) (*supabase.User, error) {
	return s.User, nil
}
