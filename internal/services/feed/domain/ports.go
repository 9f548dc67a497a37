package domain

import "context"

// SessionsPort is the interface implemented by the feed session registry
type SessionsPort interface {
	Open(ctx context.Context, q Query) (State, error)
	State(id string) (State, error)
	LoadMore(ctx context.Context, id string) (State, error)
	Close(id string) error
}

// ConfigPort exposes the immutable widget configuration
type ConfigPort interface {
	Defaults() Query
	Presentation() Presentation
}
