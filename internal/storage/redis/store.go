// Package redis implements the job store and queue over Redis. Job records
// are Hashes, the pending queue is a List, and lease expiries live in a
// Sorted Set. Every state transition runs as a Lua script so the
// compare-and-swap on state is atomic across the gateway and worker
// processes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mvelickovic/renderq/internal/core"
)

// Transition script results.
const (
	casMissing  = 0
	casConflict = -1
	casApplied  = 1
)

// markRunningScript: PENDING -> RUNNING, stamping started_at and the lease.
// KEYS[1] job hash, KEYS[2] leases zset.
// ARGV: started_at, lease_expires_at, lease score, job id.
var markRunningScript = goredis.NewScript(`
local state = redis.call('HGET', KEYS[1], 'state')
if not state then return 0 end
if state ~= 'PENDING' then return -1 end
redis.call('HSET', KEYS[1], 'state', 'RUNNING', 'started_at', ARGV[1], 'lease_expires_at', ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[4])
return 1
`)

// terminalScript: generic CAS into a terminal state, releasing the lease.
// KEYS[1] job hash, KEYS[2] leases zset.
// ARGV[1] expected state, ARGV[2] job id, ARGV[3..] field/value pairs.
var terminalScript = goredis.NewScript(`
local state = redis.call('HGET', KEYS[1], 'state')
if not state then return 0 end
if state ~= ARGV[1] then return -1 end
redis.call('ZREM', KEYS[2], ARGV[2])
redis.call('HDEL', KEYS[1], 'lease_expires_at')
for i = 3, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i+1])
end
return 1
`)

// requeueScript: RUNNING -> PENDING for crash recovery, attempt+1.
// KEYS[1] job hash, KEYS[2] leases zset. ARGV[1] job id.
var requeueScript = goredis.NewScript(`
local state = redis.call('HGET', KEYS[1], 'state')
if not state then return 0 end
if state ~= 'RUNNING' then return -1 end
redis.call('HSET', KEYS[1], 'state', 'PENDING')
redis.call('HDEL', KEYS[1], 'started_at', 'lease_expires_at')
redis.call('HINCRBY', KEYS[1], 'attempt', 1)
redis.call('ZREM', KEYS[2], ARGV[1])
return 1
`)

// JobStore implements core.JobStore backed by Redis.
type JobStore struct {
	client goredis.Cmdable
}

// NewJobStore creates a Redis-backed job store. The caller owns the Redis
// client lifecycle.
func NewJobStore(client goredis.Cmdable) *JobStore {
	return &JobStore{client: client}
}

func (s *JobStore) Create(ctx context.Context, job *core.Job) error {
	id := job.ID.String()

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, jobKey(id), jobToMap(job))
	pipe.SAdd(ctx, jobIDsKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: create job: %w", err)
	}
	return nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*core.Job, error) {
	return s.getByKey(ctx, jobKey(id.String()))
}

func (s *JobStore) List(ctx context.Context, filter core.JobFilter) ([]*core.Job, int, error) {
	ids, err := s.client.SMembers(ctx, jobIDsKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("redis: list jobs: %w", err)
	}

	jobs := make([]*core.Job, 0, len(ids))
	for _, id := range ids {
		job, getErr := s.getByKey(ctx, jobKey(id))
		if getErr != nil {
			continue // record expired or missing, skip
		}
		if filter.State != nil && job.State != *filter.State {
			continue
		}
		if filter.Owner != "" && job.Owner != filter.Owner {
			continue
		}
		jobs = append(jobs, job)
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].SubmittedAt.After(jobs[j].SubmittedAt)
	})

	total := len(jobs)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return jobs[start:end], total, nil
}

func (s *JobStore) MarkRunning(ctx context.Context, id uuid.UUID, leaseExpiry time.Time) error {
	now := time.Now().UTC()
	jID := id.String()
	res, err := markRunningScript.Run(ctx, s.client,
		[]string{jobKey(jID), leasesKey},
		now.Format(time.RFC3339Nano),
		leaseExpiry.UTC().Format(time.RFC3339Nano),
		strconv.FormatInt(leaseExpiry.UTC().UnixNano(), 10),
		jID,
	).Int()
	if err != nil {
		return fmt.Errorf("redis: mark running: %w", err)
	}
	return casResult(res)
}

func (s *JobStore) MarkSucceeded(ctx context.Context, id uuid.UUID, resultRef string) error {
	return s.terminal(ctx, id, core.JobStateRunning,
		"state", string(core.JobStateSucceeded),
		"result_ref", resultRef,
		"finished_at", time.Now().UTC().Format(time.RFC3339Nano),
	)
}

func (s *JobStore) MarkFailed(ctx context.Context, id uuid.UUID, jobErr core.JobError) error {
	return s.terminal(ctx, id, core.JobStateRunning,
		"state", string(core.JobStateFailed),
		"error_kind", string(jobErr.Kind),
		"error_message", jobErr.Message,
		"finished_at", time.Now().UTC().Format(time.RFC3339Nano),
	)
}

func (s *JobStore) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	return s.terminal(ctx, id, core.JobStatePending,
		"state", string(core.JobStateCancelled),
		"finished_at", time.Now().UTC().Format(time.RFC3339Nano),
	)
}

func (s *JobStore) MarkRequeued(ctx context.Context, id uuid.UUID) error {
	jID := id.String()
	res, err := requeueScript.Run(ctx, s.client, []string{jobKey(jID), leasesKey}, jID).Int()
	if err != nil {
		return fmt.Errorf("redis: mark requeued: %w", err)
	}
	return casResult(res)
}

func (s *JobStore) ExpiredRunning(ctx context.Context, cutoff time.Time) ([]*core.Job, error) {
	ids, err := s.client.ZRangeByScore(ctx, leasesKey, &goredis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff.UTC().UnixNano(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: expired leases: %w", err)
	}

	var expired []*core.Job
	for _, id := range ids {
		job, getErr := s.getByKey(ctx, jobKey(id))
		if getErr != nil {
			continue
		}
		if job.State != core.JobStateRunning {
			continue
		}
		expired = append(expired, job)
	}
	return expired, nil
}

func (s *JobStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *JobStore) terminal(ctx context.Context, id uuid.UUID, from core.JobState, fields ...string) error {
	jID := id.String()
	args := make([]any, 0, len(fields)+2)
	args = append(args, string(from), jID)
	for _, f := range fields {
		args = append(args, f)
	}

	res, err := terminalScript.Run(ctx, s.client, []string{jobKey(jID), leasesKey}, args...).Int()
	if err != nil {
		return fmt.Errorf("redis: mark %s: %w", fields[1], err)
	}
	return casResult(res)
}

func (s *JobStore) getByKey(ctx context.Context, key string) (*core.Job, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get job: %w", err)
	}
	if len(fields) == 0 {
		return nil, core.ErrNotFound
	}
	return jobFromMap(fields)
}

func casResult(res int) error {
	switch res {
	case casMissing:
		return core.ErrNotFound
	case casConflict:
		return core.ErrConflict
	}
	return nil
}
