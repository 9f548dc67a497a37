package domain

import "context"

// NamePort resolves one address to its display label
type NamePort interface {
	Resolve(ctx context.Context, address string) (string, error)
}
