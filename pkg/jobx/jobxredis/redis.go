// Package jobxredis implements jobx.Queue on Redis: a list per queue for
// ready jobs, a sorted set per queue for delayed ones and a JSON record per
// job.
package jobxredis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Abraxas-365/resumeforge/pkg/jobx"
	"github.com/Abraxas-365/resumeforge/pkg/kernel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisQueue struct {
	rdb    *redis.Client
	prefix string

	// resultTTL expires records of finished jobs. Zero keeps them forever.
	resultTTL time.Duration
}

var _ jobx.Queue = (*RedisQueue)(nil)

type Option func(*RedisQueue)

// WithPrefix namespaces every key, so several services can share a database.
func WithPrefix(prefix string) Option {
	return func(q *RedisQueue) { q.prefix = prefix }
}

func WithResultTTL(ttl time.Duration) Option {
	return func(q *RedisQueue) { q.resultTTL = ttl }
}

func NewRedisQueue(rdb *redis.Client, opts ...Option) *RedisQueue {
	q := &RedisQueue{rdb: rdb, prefix: "jobx"}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RedisQueue) queueKey(name string) string { return fmt.Sprintf("%s:queue:%s", q.prefix, name) }
func (q *RedisQueue) scheduledKey(name string) string {
	return fmt.Sprintf("%s:scheduled:%s", q.prefix, name)
}
func (q *RedisQueue) jobKey(id kernel.JobID) string { return fmt.Sprintf("%s:job:%s", q.prefix, id) }

func (q *RedisQueue) Enqueue(ctx context.Context, job jobx.Job) (kernel.JobID, error) {
	info := jobx.NewJobInfo(kernel.JobID(uuid.NewString()), job, time.Now().UTC())
	data, err := q.marshal(&info)
	if err != nil {
		return "", err
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(info.ID), data, 0)
	pipe.LPush(ctx, q.queueKey(job.Queue), info.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return "", redisErrors.NewWithCause(ErrEnqueue, err).WithDetail("queue", job.Queue)
	}
	return info.ID, nil
}

func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job jobx.Job, delay time.Duration) (kernel.JobID, error) {
	now := time.Now().UTC()
	info := jobx.NewJobInfo(kernel.JobID(uuid.NewString()), job, now)
	data, err := q.marshal(&info)
	if err != nil {
		return "", err
	}

	pipe := q.rdb.TxPipeline()
	pipe.Set(ctx, q.jobKey(info.ID), data, 0)
	pipe.ZAdd(ctx, q.scheduledKey(job.Queue), redis.Z{Score: float64(now.Add(delay).Unix()), Member: info.ID.String()})
	if _, err := pipe.Exec(ctx); err != nil {
		return "", redisErrors.NewWithCause(ErrEnqueue, err).
			WithDetail("queue", job.Queue).
			WithDetail("delay", delay.String())
	}
	return info.ID, nil
}

func (q *RedisQueue) GetJob(ctx context.Context, jobID kernel.JobID) (*jobx.JobInfo, error) {
	data, err := q.rdb.Get(ctx, q.jobKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, jobx.NotFound(jobID.String())
		}
		return nil, redisErrors.NewWithCause(ErrGetJob, err).WithDetail("job_id", jobID.String())
	}

	var info jobx.JobInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, redisErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", jobID.String())
	}
	return &info, nil
}

// Dequeue blocks up to timeout for a job. It returns nil, nil when nothing
// arrived or ctx ended.
func (q *RedisQueue) Dequeue(ctx context.Context, queues []string, timeout time.Duration) (*jobx.JobInfo, error) {
	keys := make([]string, len(queues))
	for i, name := range queues {
		keys[i] = q.queueKey(name)
	}

	result, err := q.rdb.BRPop(ctx, timeout, keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() != nil {
			return nil, nil
		}
		return nil, redisErrors.NewWithCause(ErrDequeue, err)
	}

	// result is [key, id]
	info, err := q.GetJob(ctx, kernel.JobID(result[1]))
	if err != nil {
		return nil, err
	}

	info.Status = jobx.JobStatusActive
	info.Attempts++
	if err := q.save(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (q *RedisQueue) Complete(ctx context.Context, jobID kernel.JobID, result []byte) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	info.Status = jobx.JobStatusCompleted
	info.Result = result
	info.Error = ""
	return q.save(ctx, info)
}

// Fail records the error and reports whether attempts remain.
func (q *RedisQueue) Fail(ctx context.Context, jobID kernel.JobID, errMsg string, retryable bool) (bool, error) {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return false, err
	}

	retry := retryable && info.Attempts < info.MaxRetries
	info.Status = jobx.JobStatusFailed
	if retry {
		info.Status = jobx.JobStatusRetrying
	}
	info.Error = errMsg

	if err := q.save(ctx, info); err != nil {
		return false, err
	}
	return retry, nil
}

func (q *RedisQueue) Retry(ctx context.Context, jobID kernel.JobID, delay time.Duration) error {
	info, err := q.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	score := float64(time.Now().UTC().Add(delay).Unix())
	if err := q.rdb.ZAdd(ctx, q.scheduledKey(info.Queue), redis.Z{Score: score, Member: jobID.String()}).Err(); err != nil {
		return redisErrors.NewWithCause(ErrRetry, err).WithDetail("job_id", jobID.String())
	}
	return nil
}

// promoteScript atomically moves due ids from the schedule to the ready list.
var promoteScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(ids) do
    redis.call('LPUSH', KEYS[2], id)
end
if #ids > 0 then
    redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
end
return #ids
`)

func (q *RedisQueue) PromoteScheduled(ctx context.Context, queues []string) error {
	now := strconv.FormatInt(time.Now().UTC().Unix(), 10)

	for _, name := range queues {
		err := promoteScript.Run(ctx, q.rdb, []string{q.scheduledKey(name), q.queueKey(name)}, now).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return redisErrors.NewWithCause(ErrPromote, err).WithDetail("queue", name)
		}
	}
	return nil
}

// Ping checks the connection for the health endpoint.
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}

// save stamps and writes info. Finished jobs get the result TTL.
func (q *RedisQueue) save(ctx context.Context, info *jobx.JobInfo) error {
	info.UpdatedAt = time.Now().UTC()
	data, err := q.marshal(info)
	if err != nil {
		return err
	}

	var ttl time.Duration
	if info.Status.Finished() {
		ttl = q.resultTTL
	}
	if err := q.rdb.Set(ctx, q.jobKey(info.ID), data, ttl).Err(); err != nil {
		return redisErrors.NewWithCause(ErrSave, err).WithDetail("job_id", info.ID.String())
	}
	return nil
}

func (q *RedisQueue) marshal(info *jobx.JobInfo) ([]byte, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return nil, redisErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", info.ID.String())
	}
	return data, nil
}
