package reconcile

import (
	"context"
)

// Sweeper is a long-running background task that performs periodic reconciliation
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start begins the sweeper's main loop
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the sweeper and waits for in-progress work
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and identification
	Name() string
}
