package bonuses

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/babonus/internal/redis"
)

const (
	flagsKeyPrefix   = "babonus:flags:"
	updatedKeyPrefix = "babonus:updated:"
	scanBatch        = 100
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis bonus repository.
type RedisConfig struct {
	Client redisclient.Client
	// Clock stamps writes. Defaults to the system clock.
	Clock clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed bonus repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &redisRepository{client: cfg.Client, clock: c}, nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil || input.ParentUUID == "" {
		return nil, errors.InvalidArgument(errParentUUIDEmpty)
	}

	fields, err := r.client.HGetAll(ctx, flagsKeyPrefix+input.ParentUUID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get bonuses for %s", input.ParentUUID)
	}
	if len(fields) == 0 {
		return nil, errors.NotFoundf("no bonuses stored on %s", input.ParentUUID)
	}

	out := &GetOutput{
		ParentUUID: input.ParentUUID,
		Bonuses:    make(map[string]json.RawMessage, len(fields)),
	}
	for id, data := range fields {
		out.Bonuses[id] = json.RawMessage(data)
	}

	stamp, err := r.client.Get(ctx, updatedKeyPrefix+input.ParentUUID).Result()
	switch {
	case err == redis.Nil:
	case err != nil:
		return nil, errors.Wrapf(err, "failed to get update time for %s", input.ParentUUID)
	default:
		if nanos, err := strconv.ParseInt(stamp, 10, 64); err == nil {
			out.UpdatedAt = time.Unix(0, nanos).UTC()
		}
	}
	return out, nil
}

func (r *redisRepository) Replace(ctx context.Context, input *ReplaceInput) (*ReplaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateReplace(input); err != nil {
		return nil, err
	}
	if !json.Valid(input.Data) {
		return nil, errors.InvalidArgumentf("bonus %s is not valid json", input.ID)
	}

	now := r.clock.Now().UTC()
	key := flagsKeyPrefix + input.ParentUUID

	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, key, input.ID)
	pipe.HSet(ctx, key, input.ID, string(input.Data))
	pipe.Set(ctx, updatedKeyPrefix+input.ParentUUID, strconv.FormatInt(now.UnixNano(), 10), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store bonus %s on %s", input.ID, input.ParentUUID)
	}

	return &ReplaceOutput{UpdatedAt: now}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateKey(input.ParentUUID, input.ID); err != nil {
		return nil, err
	}

	key := flagsKeyPrefix + input.ParentUUID
	removed, err := r.client.HDel(ctx, key, input.ID).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete bonus %s on %s", input.ID, input.ParentUUID)
	}
	if removed == 0 {
		return nil, errors.NotFoundf("bonus %s not found on %s", input.ID, input.ParentUUID)
	}

	remaining, err := r.client.HLen(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count bonuses on %s", input.ParentUUID)
	}
	if err := r.client.Set(ctx, updatedKeyPrefix+input.ParentUUID,
		strconv.FormatInt(r.clock.Now().UTC().UnixNano(), 10), 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to stamp %s", input.ParentUUID)
	}

	return &DeleteOutput{Remaining: int(remaining)}, nil
}

func (r *redisRepository) ListParents(ctx context.Context, _ *ListParentsInput) (*ListParentsOutput, error) {
	var (
		cursor  uint64
		parents []string
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, flagsKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan bonus parents")
		}
		for _, key := range keys {
			parents = append(parents, strings.TrimPrefix(key, flagsKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(parents)
	return &ListParentsOutput{ParentUUIDs: parents}, nil
}

func validateKey(parentUUID, id string) error {
	if parentUUID == "" {
		return errors.InvalidArgument(errParentUUIDEmpty)
	}
	if id == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	return nil
}
