package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

const (
	keyPrefix      = "jobboard:apply:"
	pendingMarker  = "__pending__"
	insertedPrefix = "__inserted__:"
)

// Options holds connection settings for the guard.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SubmissionGuard records idempotency keys so retried submissions map to one application.
// A key holds the pending marker, an inserted-but-uncounted application id, or the final id.
type SubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func New(opts Options) *SubmissionGuard {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.TTL)
}

func NewWithClient(client *redis.Client, ttl time.Duration) *SubmissionGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SubmissionGuard{client: client, ttl: ttl}
}

// reserveScript は未使用キーと「挿入済み・未加算」キーを pending に切り替えて呼び出し元に渡す。
var reserveScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
  return {'reserved', ''}
end
local prefix = ARGV[3]
if string.sub(v, 1, string.len(prefix)) == prefix then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
  return {'resume', string.sub(v, string.len(prefix) + 1)}
end
if v == ARGV[1] then
  return {'pending', ''}
end
return {'done', v}
`)

func (g *SubmissionGuard) Reserve(ctx context.Context, key string) (application.Reservation, error) {
	reply, err := reserveScript.Run(ctx, g.client, []string{keyPrefix + key},
		pendingMarker, g.ttl.Milliseconds(), insertedPrefix).StringSlice()
	if err != nil {
		return application.Reservation{}, domain.StoreUnavailable("failed to reserve idempotency key", err)
	}
	return reservationFromReply(reply)
}

func reservationFromReply(reply []string) (application.Reservation, error) {
	if len(reply) != 2 {
		return application.Reservation{}, domain.StoreUnavailable("unexpected idempotency reply", fmt.Errorf("reply %v", reply))
	}
	switch reply[0] {
	case "reserved":
		return application.Reservation{Reserved: true}, nil
	case "resume":
		return application.Reservation{Reserved: true, ApplicationID: reply[1]}, nil
	case "pending":
		return application.Reservation{}, nil
	case "done":
		return application.Reservation{ApplicationID: reply[1]}, nil
	}
	return application.Reservation{}, domain.StoreUnavailable("unexpected idempotency reply", fmt.Errorf("status %q", reply[0]))
}

func (g *SubmissionGuard) MarkInserted(ctx context.Context, key, applicationID string) error {
	if err := g.client.Set(ctx, keyPrefix+key, insertedPrefix+applicationID, g.ttl).Err(); err != nil {
		return domain.StoreUnavailable("failed to record inserted application", err)
	}
	return nil
}

func (g *SubmissionGuard) Complete(ctx context.Context, key, applicationID string) error {
	if err := g.client.Set(ctx, keyPrefix+key, applicationID, g.ttl).Err(); err != nil {
		return domain.StoreUnavailable("failed to record idempotency key", err)
	}
	return nil
}

func (g *SubmissionGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return domain.StoreUnavailable("failed to release idempotency key", err)
	}
	return nil
}

// Ping checks connectivity for health probes.
func (g *SubmissionGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

func (g *SubmissionGuard) Close() error {
	return g.client.Close()
}
