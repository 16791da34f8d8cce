package domain

import "context"

// RecipeService is the remote catalog. The HTTP client in package api is
// the production implementation; tests use in-memory fakes.
type RecipeService interface {
	List(ctx context.Context) ([]Recipe, error)
	Create(ctx context.Context, draft Draft) error
}

// CommandParser converts raw prompt input into structured intents.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user outside the interactive screen,
// e.g. when running a one-shot command.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
