package routejobs

import (
	"context"
	"errors"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitrouter/pkg/routing"
)

type Router interface {
	Route(ctx context.Context, params routing.Parameters, onProgress routing.ProgressFunc) (*routing.Route, error)
}

// Worker consumes route job identifiers from the queue, runs the router and
// records progress and the outcome in the store
type Worker struct {
	Router Router
	Store  *Store
}

func (w *Worker) Consume(batch rmq.Deliveries) {
	for _, delivery := range batch {
		w.process(delivery)
	}
}

func (w *Worker) process(delivery rmq.Delivery) {
	id := delivery.Payload()

	if err := w.Run(context.Background(), id); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to process route job")

		if errors.Is(err, ErrJobNotFound) {
			if err := delivery.Reject(); err != nil {
				log.Error().Err(err).Str("id", id).Msg("Failed to reject route job")
			}
			return
		}
	}

	if err := delivery.Ack(); err != nil {
		log.Error().Err(err).Str("id", id).Msg("Failed to ack route job")
	}
}

// Run executes a single job. Routing failures are recorded on the job, only
// store failures are returned.
func (w *Worker) Run(ctx context.Context, id string) error {
	job, err := w.Store.Get(ctx, id)
	if err != nil {
		return err
	}

	if job.Cancelled || job.Status.Finished() {
		log.Debug().Str("id", id).Str("status", string(job.Status)).Msg("Skipping route job")

		if job.Cancelled && !job.Status.Finished() {
			_, err = w.Store.Update(ctx, id, func(job *Job) {
				job.Status = StatusCancelled
			})
		}
		return err
	}

	if _, err := w.Store.Update(ctx, id, func(job *Job) {
		job.Status = StatusRunning
	}); err != nil {
		return err
	}

	routeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	route, routeErr := w.Router.Route(routeCtx, job.Parameters, func(progress routing.Progress) {
		if _, err := w.Store.Update(ctx, id, func(job *Job) {
			job.Progress = progressFrom(progress)
		}); err != nil {
			log.Error().Err(err).Str("id", id).Msg("Failed to record route job progress")
		}

		cancelled, err := w.Store.Cancelled(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("Failed to check route job cancellation")
			return
		}
		if cancelled {
			log.Info().Str("id", id).Msg("Cancelling running route job")
			cancel()
		}
	})

	_, err = w.Store.Update(ctx, id, func(job *Job) {
		switch {
		case job.Cancelled:
			job.Status = StatusCancelled
		case routeErr != nil:
			job.Status = StatusFailed
			job.Error = routeErr.Error()
		default:
			job.Status = StatusCompleted
			job.Route = route
		}
	})

	log.Info().Str("id", id).Bool("failed", routeErr != nil).Msg("Finished route job")

	return err
}
