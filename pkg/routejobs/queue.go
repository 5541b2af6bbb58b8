package routejobs

import (
	"context"
	"fmt"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/routing"
)

const QueueName = "route-jobs"

// Queue creates jobs in the store and hands their identifiers to the workers
type Queue struct {
	Store *Store

	queue rmq.Queue
}

func OpenQueue(connection rmq.Connection, jobStore *Store) (*Queue, error) {
	queue, err := connection.OpenQueue(QueueName)
	if err != nil {
		return nil, err
	}

	return &Queue{
		Store: jobStore,
		queue: queue,
	}, nil
}

func (q *Queue) Submit(ctx context.Context, params routing.Parameters) (*Job, error) {
	job, err := q.Store.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create route job: %w", err)
	}

	if err := q.queue.Publish(job.ID); err != nil {
		return nil, fmt.Errorf("publish route job: %w", err)
	}

	log.Info().Str("id", job.ID).Str("start", params.Start).Str("destination", params.Destination).Msg("Queued route job")

	return job, nil
}
