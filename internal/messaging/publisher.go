package messaging

import (
	"context"

	"github.com/feral-file/ff-minter/internal/domain"
)

// Publisher defines the interface for publishing mint events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishMint publishes a mint event to the message broker
	PublishMint(ctx context.Context, event *domain.MintEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event, used when no broker is configured
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishMint(context.Context, *domain.MintEvent) error {
	return nil
}

func (noopPublisher) Close() {}
