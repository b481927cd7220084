package sections

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/subway/pkg/network"
)

type BatchConsumer struct {
	store network.Store
}

func NewBatchConsumer(store network.Store) *BatchConsumer {
	return &BatchConsumer{store: store}
}

func (consumer *BatchConsumer) Consume(batch rmq.Deliveries) {
	var changes []Change
	var accepted rmq.Deliveries

	for _, delivery := range batch {
		var change Change
		if err := json.Unmarshal([]byte(delivery.Payload()), &change); err != nil {
			log.Error().Err(err).Str("payload", delivery.Payload()).Msg("Failed to decode section change")
			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Msg("Failed to reject section change")
			}
			continue
		}

		changes = append(changes, change)
		accepted = append(accepted, delivery)
	}

	// Rejected changes are logged by ApplyChanges and are never retried
	ApplyChanges(context.Background(), consumer.store, changes)

	if ackErrors := accepted.Ack(); len(ackErrors) > 0 {
		for _, err := range ackErrors {
			log.Error().Err(err).Msg("Failed to ack section change")
		}
	}
}

// Publish puts a change on the queue after checking it is well formed.
func Publish(queue rmq.Queue, change Change) error {
	if err := change.Validate(); err != nil {
		return err
	}

	changeBytes, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return queue.PublishBytes(changeBytes)
}
