package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// RedisHoldStore keeps seat holds in Redis.  Each screening owns a sorted
// set "holds:screening:<id>" whose members are seat ids scored by expiry
// in Unix milliseconds; ZADD on an existing member replaces its score,
// which gives the last-writer-wins upsert.  Screenings with holds are
// tracked in the set "holds:screenings" so the sweep can find them.
type RedisHoldStore struct {
	rdb *redis.Client
}

const redisHoldIndexKey = "holds:screenings"

// NewRedisHoldStore returns a hold store backed by rdb.
func NewRedisHoldStore(rdb *redis.Client) *RedisHoldStore {
	return &RedisHoldStore{rdb: rdb}
}

func redisHoldKey(screeningID uint64) string {
	return "holds:screening:" + strconv.FormatUint(screeningID, 10)
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Upsert sets the expiry of the hold.  Redis has no referential checks,
// so the result is always true unless the server fails.
func (s *RedisHoldStore) Upsert(ctx context.Context, screeningID, seatID uint64, expiresAt time.Time) (bool, error) {
	key := redisHoldKey(screeningID)
	member := strconv.FormatUint(seatID, 10)
	if err := s.rdb.ZAdd(ctx, key, redis.Z{Score: float64(expiresAt.UnixMilli()), Member: member}).Err(); err != nil {
		return false, errs.Wrapf(err, "zadd %s", key)
	}
	if err := s.rdb.SAdd(ctx, redisHoldIndexKey, strconv.FormatUint(screeningID, 10)).Err(); err != nil {
		return false, errs.Wrap(err, "index hold screening")
	}
	return true, nil
}

// trimHoldsScript removes the expired members of one screening's set and
// drops the screening from the index when nothing is left.  Running it as
// one script keeps a concurrent Upsert from being unindexed.
//
// KEYS[1] screening set, KEYS[2] index set
// ARGV[1] cutoff in ms, ARGV[2] screening id
var trimHoldsScript = redis.NewScript(`
local removed = redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", ARGV[1])
if redis.call("ZCARD", KEYS[1]) == 0 then
  redis.call("SREM", KEYS[2], ARGV[2])
end
return removed
`)

// DeleteExpired trims every tracked screening's set of members scored at
// or before now.  Screenings left without holds drop out of the index.
func (s *RedisHoldStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	screenings, err := s.rdb.SMembers(ctx, redisHoldIndexKey).Result()
	if err != nil {
		return 0, errs.Wrap(err, "list hold screenings")
	}
	var removed int64
	for _, sid := range screenings {
		id, err := strconv.ParseUint(sid, 10, 64)
		if err != nil {
			continue
		}
		key := redisHoldKey(id)
		n, err := trimHoldsScript.Run(ctx, s.rdb, []string{key, redisHoldIndexKey}, millis(now), sid).Int64()
		if err != nil {
			return removed, errs.Wrapf(err, "trim %s", key)
		}
		removed += n
	}
	return removed, nil
}

// ActiveSeatIDs returns the seats whose hold expires strictly after now.
func (s *RedisHoldStore) ActiveSeatIDs(ctx context.Context, screeningID uint64, now time.Time) ([]uint64, error) {
	key := redisHoldKey(screeningID)
	members, err := s.rdb.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: "(" + millis(now), Max: "+inf"}).Result()
	if err != nil {
		return nil, errs.Wrapf(err, "zrangebyscore %s", key)
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
