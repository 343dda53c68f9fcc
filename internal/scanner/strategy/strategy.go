package strategy

import "context"

// Strategy defines the interface for a runnable scanner strategy.
type Strategy interface {
	Name() string
	Execute(ctx context.Context) error
}
