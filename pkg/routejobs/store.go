package routejobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/travigo/transitrouter/pkg/routing"
)

const jobKeyPrefix = "route_job:"
const cancelKeySuffix = ":cancel"

var ErrJobNotFound = errors.New("route job not found")

type Store struct {
	cache *cache.Cache[string]
	now   func() time.Time
}

func NewStore(client *redis.Client, expiration time.Duration) *Store {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Store{
		cache: cache.New[string](redisStore),
		now:   time.Now,
	}
}

func (s *Store) Create(ctx context.Context, params routing.Parameters) (*Job, error) {
	now := s.now()

	job := &Job{
		ID:         uuid.NewString(),
		Parameters: params,
		Status:     StatusQueued,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.save(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	value, err := s.cache.Get(ctx, jobKeyPrefix+id)
	if errors.Is(err, store.NotFound{}) {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var job *Job
	if err := json.Unmarshal([]byte(value), &job); err != nil {
		return nil, fmt.Errorf("decode route job %s: %w", id, err)
	}

	cancelled, err := s.Cancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Cancelled = job.Cancelled || cancelled

	return job, nil
}

// Cancelled reports whether Cancel was called for the job. The flag has its
// own key so a concurrent Update writing an older copy of the job cannot
// clear it.
func (s *Store) Cancelled(ctx context.Context, id string) (bool, error) {
	_, err := s.cache.Get(ctx, cancelKey(id))
	if errors.Is(err, store.NotFound{}) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Update applies modify to the stored job and writes it back
func (s *Store) Update(ctx context.Context, id string, modify func(job *Job)) (*Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	modify(job)
	job.ModifiedAt = s.now()

	if job.Status.Finished() && job.FinishedAt == nil {
		finishedAt := job.ModifiedAt
		job.FinishedAt = &finishedAt
	}

	if err := s.save(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// Cancel flags a job as cancelled. Queued jobs are finished straight away,
// running jobs stop at their next progress update, finished jobs are left
// untouched.
func (s *Store) Cancel(ctx context.Context, id string) (*Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status.Finished() {
		return job, nil
	}

	if err := s.cache.Set(ctx, cancelKey(id), s.now().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("flag route job %s as cancelled: %w", id, err)
	}

	return s.Update(ctx, id, func(job *Job) {
		if job.Status.Finished() {
			return
		}

		job.Cancelled = true
		if job.Status == StatusQueued {
			job.Status = StatusCancelled
		}
	})
}

func (s *Store) save(ctx context.Context, job *Job) error {
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, jobKeyPrefix+job.ID, string(jobJSON))
}

func cancelKey(id string) string {
	return jobKeyPrefix + id + cancelKeySuffix
}
